// Package pages serves the site's fixed marketing pages and the newsletter
// thank-you page. None of these touch the database or mail.
package pages

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/middleware"
	tpl "github.com/p-karmelita/KARLAB-SOFTWARE/internal/templates/pages"
)

// Status query values understood by the thank-you page.
const (
	statusSubscribed = "subscribed"
	statusExists     = "exists"
	statusDuplicate  = "duplicate"
	statusInvalid    = "invalid"
)

// Handler renders static pages.
type Handler struct{}

// NewHandler creates a new pages handler.
func NewHandler() *Handler {
	return &Handler{}
}

// static returns a handler that renders a fixed component with 200.
func static(component func() templ.Component) echo.HandlerFunc {
	return func(c echo.Context) error {
		return middleware.Render(c, http.StatusOK, component())
	}
}

// NewsletterThanks renders the thank-you page (GET /newsletter/thank-you).
func (h *Handler) NewsletterThanks(c echo.Context) error {
	return middleware.Render(c, http.StatusOK, tpl.SubscribeThanks(ThanksView(c.QueryParam("status"))))
}

// ThanksView maps the status query value to the page state. The status is
// case-insensitive and defaults to subscribed; "exists" and "duplicate"
// mean the address was already on the list.
func ThanksView(status string) tpl.SubscribeThanksView {
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" {
		status = statusSubscribed
	}
	return tpl.SubscribeThanksView{
		Duplicate: status == statusExists || status == statusDuplicate,
		Invalid:   status == statusInvalid,
	}
}

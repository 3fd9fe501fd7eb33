package newsletter

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

// Handler handles newsletter sign-up posts.
type Handler struct {
	service NewsletterService
}

// NewHandler creates a new newsletter handler.
func NewHandler(service NewsletterService) *Handler {
	return &Handler{service: service}
}

// Subscribe records a sign-up and redirects to the thank-you page
// (POST /newsletter/subscribe).
func (h *Handler) Subscribe(c echo.Context) error {
	req := c.Request()
	status := h.service.Subscribe(req.Context(), SubscribeInput{
		Email:      c.FormValue("email"),
		SourcePage: c.FormValue("source_page"),
		ClientIP:   c.RealIP(),
		UserAgent:  req.UserAgent(),
	})

	return c.Redirect(http.StatusSeeOther, "/newsletter/thank-you?status="+url.QueryEscape(status))
}

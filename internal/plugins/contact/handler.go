package contact

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/middleware"
	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/templates/pages"
)

// Handler serves the contact page.
type Handler struct {
	service ContactService
}

// NewHandler creates a new contact handler.
func NewHandler(service ContactService) *Handler {
	return &Handler{service: service}
}

// Form renders the empty contact form (GET /contact.html).
func (h *Handler) Form(c echo.Context) error {
	return middleware.Render(c, http.StatusOK, pages.Contact(pages.ContactView{}))
}

// Submit sends the contact mails and renders the confirmation
// (POST /contact.html). Mail failures never change the page.
func (h *Handler) Submit(c echo.Context) error {
	h.service.Submit(c.Request().Context(), Submission{
		Name:    c.FormValue("name"),
		Email:   c.FormValue("email"),
		Message: c.FormValue("message"),
	})
	return middleware.Render(c, http.StatusOK, pages.Contact(pages.ContactView{Submitted: true}))
}

package inquiry

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/middleware"
	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/templates/pages"
)

// Handler serves the inquiry page.
type Handler struct {
	service InquiryService
}

// NewHandler creates a new inquiry handler.
func NewHandler(service InquiryService) *Handler {
	return &Handler{service: service}
}

// Form renders the empty inquiry form (GET /inquiry.html).
func (h *Handler) Form(c echo.Context) error {
	return middleware.Render(c, http.StatusOK, pages.Inquiry(pages.InquiryView{}))
}

// Submit processes the form (POST /inquiry.html). Invalid input re-renders
// the form with the validation messages and the posted values.
func (h *Handler) Submit(c echo.Context) error {
	req := c.Request()
	in := Input{
		Name:               c.FormValue("name"),
		Email:              c.FormValue("email"),
		Company:            c.FormValue("company"),
		BusinessNeeds:      c.FormValue("business_needs"),
		ServiceType:        c.FormValue("service_type"),
		BudgetRange:        c.FormValue("budget_range"),
		Timeline:           c.FormValue("timeline"),
		ProjectDescription: c.FormValue("project_description"),
		AdditionalInfo:     c.FormValue("additional_info"),
		ClientIP:           c.RealIP(),
		UserAgent:          req.UserAgent(),
	}

	out := h.service.Submit(req.Context(), in)

	view := pages.InquiryView{Submitted: out.Submitted, Errors: out.Errors}
	if !out.Submitted {
		view.Values = Normalize(in).Values()
	}
	return middleware.Render(c, http.StatusOK, pages.Inquiry(view))
}

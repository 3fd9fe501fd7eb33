package pages

import (
	"github.com/labstack/echo/v4"

	tpl "github.com/p-karmelita/KARLAB-SOFTWARE/internal/templates/pages"
)

// RegisterRoutes mounts the marketing pages and the newsletter thank-you page.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/", static(tpl.Home))
	e.GET("/base.html", static(tpl.Home))
	e.GET("/about.html", static(tpl.About))
	e.GET("/references.html", static(tpl.References))
	e.GET("/certs.html", static(tpl.Certs))
	e.GET("/projects.html", static(tpl.Projects))

	e.GET("/newsletter/thank-you", h.NewsletterThanks)
}

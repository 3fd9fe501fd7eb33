package contact

import "github.com/labstack/echo/v4"

// RegisterRoutes mounts the contact page. mw is applied to the POST.
func RegisterRoutes(e *echo.Echo, h *Handler, mw ...echo.MiddlewareFunc) {
	e.GET("/contact.html", h.Form)
	e.POST("/contact.html", h.Submit, mw...)
}

package inquiry

import "github.com/labstack/echo/v4"

// RegisterRoutes mounts the inquiry page. mw is applied to the POST.
func RegisterRoutes(e *echo.Echo, h *Handler, mw ...echo.MiddlewareFunc) {
	e.GET("/inquiry.html", h.Form)
	e.POST("/inquiry.html", h.Submit, mw...)
}

package newsletter

import "github.com/labstack/echo/v4"

// RegisterRoutes mounts the sign-up endpoint. mw is applied to the POST
// (rate limiting).
func RegisterRoutes(e *echo.Echo, h *Handler, mw ...echo.MiddlewareFunc) {
	e.POST("/newsletter/subscribe", h.Subscribe, mw...)
}

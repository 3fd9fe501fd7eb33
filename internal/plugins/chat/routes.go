package chat

import "github.com/labstack/echo/v4"

// RegisterRoutes mounts the chat endpoint on the API group.
func RegisterRoutes(api *echo.Group, h *Handler) {
	api.POST("/chat", h.Chat)
}

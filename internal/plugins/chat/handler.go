package chat

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// maxBodyBytes bounds the request body read from the widget.
const maxBodyBytes = 256 << 10

// Handler serves the chat API.
type Handler struct {
	service ChatService
}

// NewHandler creates a new chat handler.
func NewHandler(service ChatService) *Handler {
	return &Handler{service: service}
}

// Chat answers one widget message (POST /api/chat). Unreadable or malformed
// bodies are treated as an empty message.
func (h *Handler) Chat(c echo.Context) error {
	req := c.Request()
	body, err := io.ReadAll(io.LimitReader(req.Body, maxBodyBytes))
	if err != nil {
		slog.Warn("reading chat request failed", slog.Any("error", err))
		body = nil
	}

	resp := h.service.Reply(req.Context(), ParseRequest(body))
	if !resp.OK {
		return c.JSON(http.StatusBadRequest, resp)
	}
	return c.JSON(http.StatusOK, resp)
}

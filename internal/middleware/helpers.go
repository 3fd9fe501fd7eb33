package middleware

import (
	"bytes"
	"context"
	"fmt"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/apperror"
	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/templates/layouts"
)

// LayoutInjector copies layout-relevant data from the Echo context into Go's
// context.Context so templates can read it. Defaults to the CSRF token and
// the active path.
var LayoutInjector = func(c echo.Context, ctx context.Context) context.Context {
	ctx = layouts.SetCSRFToken(ctx, GetCSRFToken(c))
	return layouts.SetActivePath(ctx, c.Request().URL.Path)
}

// Render writes a templ component to the response with the given status
// code. The component is rendered into a buffer first, so a template error
// still leaves the response uncommitted for the error handler.
func Render(c echo.Context, statusCode int, component templ.Component) error {
	ctx := c.Request().Context()

	if LayoutInjector != nil {
		ctx = LayoutInjector(c, ctx)
	}

	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		return apperror.NewInternal(fmt.Errorf("rendering %s: %w", c.Request().URL.Path, err))
	}

	return c.HTMLBlob(statusCode, buf.Bytes())
}

// Package layouts provides typed context helpers for passing request data
// from handlers/middleware to page templates without the templates importing
// echo.
//
// Data flow: Middleware -> Echo Context -> LayoutInjector -> Go Context -> template
package layouts

import "context"

// ctxKey is a private type for context keys to prevent collisions.
type ctxKey string

const (
	keyCSRFToken  ctxKey = "layout_csrf_token"
	keyActivePath ctxKey = "layout_active_path"
)

// SetCSRFToken stores the CSRF token for forms.
func SetCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, keyCSRFToken, token)
}

// GetCSRFToken returns the CSRF token, or "" outside a request.
func GetCSRFToken(ctx context.Context) string {
	if v, ok := ctx.Value(keyCSRFToken).(string); ok {
		return v
	}
	return ""
}

// SetActivePath stores the request path for navigation highlighting.
func SetActivePath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, keyActivePath, path)
}

// GetActivePath returns the request path, or "".
func GetActivePath(ctx context.Context) string {
	if v, ok := ctx.Value(keyActivePath).(string); ok {
		return v
	}
	return ""
}

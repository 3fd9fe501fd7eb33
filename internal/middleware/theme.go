package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// DarkStylesheetHref is the stylesheet linked into every HTML page.
const DarkStylesheetHref = "/static/dark.css"

// darkLinkTag is inserted right before </head>.
var darkLinkTag = "\n<link rel=\"stylesheet\" href=\"" + DarkStylesheetHref + "\">\n"

// bufferedWriter captures the status and body so the HTML can be rewritten
// before anything reaches the client.
type bufferedWriter struct {
	http.ResponseWriter
	buf    bytes.Buffer
	status int
}

func (w *bufferedWriter) WriteHeader(code int) {
	w.status = code
}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	return w.buf.Write(b)
}

// DarkMode returns middleware that links the dark-mode stylesheet into every
// HTML response that has a </head> and does not reference it yet. Static
// assets are passed through untouched.
func DarkMode() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if strings.HasPrefix(c.Request().URL.Path, "/static/") {
				return next(c)
			}

			res := c.Response()
			original := res.Writer
			bw := &bufferedWriter{ResponseWriter: original, status: http.StatusOK}
			res.Writer = bw
			defer func() { res.Writer = original }()

			// Render errors now so error pages get the stylesheet too.
			if err := next(c); err != nil {
				c.Error(err)
			}

			body := bw.buf.Bytes()
			if strings.Contains(res.Header().Get(echo.HeaderContentType), echo.MIMETextHTML) {
				body = injectDarkStylesheet(body)
				res.Header().Set(echo.HeaderContentLength, strconv.Itoa(len(body)))
			}

			original.WriteHeader(bw.status)
			if _, err := original.Write(body); err != nil {
				slog.Debug("writing response failed", slog.Any("error", err))
			}
			return nil
		}
	}
}

// injectDarkStylesheet inserts the stylesheet link before the first </head>.
// Documents without a head or already linking the stylesheet are unchanged.
func injectDarkStylesheet(html []byte) []byte {
	if bytes.Contains(html, []byte(`href="`+DarkStylesheetHref+`"`)) {
		return html
	}
	idx := bytes.Index(html, []byte("</head>"))
	if idx < 0 {
		return html
	}

	out := make([]byte, 0, len(html)+len(darkLinkTag))
	out = append(out, html[:idx]...)
	out = append(out, darkLinkTag...)
	out = append(out, html[idx:]...)
	return out
}

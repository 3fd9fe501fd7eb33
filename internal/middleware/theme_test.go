package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestInjectDarkStylesheet(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "inserted before head close",
			input: "<html><head><title>x</title></head><body></body></html>",
			want:  "<html><head><title>x</title>" + darkLinkTag + "</head><body></body></html>",
		},
		{
			name:  "already linked",
			input: `<html><head><link rel="stylesheet" href="/static/dark.css"></head></html>`,
			want:  `<html><head><link rel="stylesheet" href="/static/dark.css"></head></html>`,
		},
		{
			name:  "no head",
			input: "<p>fragment</p>",
			want:  "<p>fragment</p>",
		},
		{
			name:  "only first head",
			input: "<head></head><head></head>",
			want:  "<head>" + darkLinkTag + "</head><head></head>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(injectDarkStylesheet([]byte(tt.input)))
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDarkMode_HTMLResponse(t *testing.T) {
	e := echo.New()
	e.Use(DarkMode())
	e.GET("/", func(c echo.Context) error {
		return c.HTML(http.StatusOK, "<html><head></head><body>hi</body></html>")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Count(body, DarkStylesheetHref) != 1 {
		t.Errorf("expected stylesheet link once, got %q", body)
	}
	if !strings.Contains(body, "<body>hi</body>") {
		t.Errorf("body lost: %q", body)
	}
}

func TestDarkMode_NonHTMLUntouched(t *testing.T) {
	e := echo.New()
	e.Use(DarkMode())
	e.GET("/api/x", func(c echo.Context) error {
		return c.JSON(http.StatusCreated, map[string]string{"s": "</head>"})
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/x", nil))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), DarkStylesheetHref) {
		t.Errorf("JSON must not be rewritten: %q", rec.Body.String())
	}
}

func TestDarkMode_ErrorPagesInjected(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		_ = c.HTML(http.StatusTeapot, "<html><head></head></html>")
	}
	e.Use(DarkMode())
	e.GET("/", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected 418, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), DarkStylesheetHref) {
		t.Errorf("expected error page to be injected: %q", rec.Body.String())
	}
}

// Package app is the application bootstrap and dependency injection root.
// It holds the shared infrastructure (connection factory, optional Redis
// client, mailer, rate limiter, Echo instance) and wires the plugins.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/apperror"
	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/config"
	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/database"
	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/mail"
	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/metrics"
	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/middleware"
	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/templates/pages"
)

// App holds all shared dependencies and the Echo HTTP server instance.
// Created once at startup in main.go and used to register all routes.
type App struct {
	// Config holds the loaded application configuration.
	Config *config.Config

	// DB opens short-lived SQL connections on demand.
	DB *database.Factory

	// Redis is the optional Redis client; nil when not configured.
	Redis *redis.Client

	// Mailer sends the contact and inquiry mail.
	Mailer mail.Sender

	// Limiter bounds POST requests per client IP.
	Limiter middleware.Limiter

	// Echo is the HTTP server instance.
	Echo *echo.Echo
}

// New creates a new App instance with the given dependencies and configures
// the Echo server with global middleware and error handling.
func New(cfg *config.Config, db *database.Factory, rdb *redis.Client, limiter middleware.Limiter) *App {
	e := echo.New()

	// Disable Echo's default banner and startup message -- we log our own.
	e.HideBanner = true
	e.HidePort = true

	// Configure trusted reverse proxy IPs so c.RealIP() returns the actual
	// client IP instead of the proxy's IP. The IP is stored with inquiries and
	// keys the rate limiter.
	middleware.TrustedProxies(e, []string{
		"127.0.0.0/8",    // Localhost
		"10.0.0.0/8",     // Docker default bridge
		"172.16.0.0/12",  // Docker bridge (alternate range)
		"192.168.0.0/16", // Common LAN
		"fd00::/8",       // IPv6 private
	})

	app := &App{
		Config:  cfg,
		DB:      db,
		Redis:   rdb,
		Mailer:  mail.NewSMTPSender(cfg.Mail),
		Limiter: limiter,
		Echo:    e,
	}

	// Register global middleware in order of execution.
	app.setupMiddleware()

	// Register the custom error handler that maps AppErrors to HTTP responses.
	e.HTTPErrorHandler = app.errorHandler

	// Serve static files (CSS, JS, images).
	e.Static("/static", "static")

	return app
}

// setupMiddleware registers global middleware on the Echo instance.
// Order matters: outermost (recovery) runs first, innermost (CSRF) runs last.
func (a *App) setupMiddleware() {
	// Panic recovery -- must be outermost to catch panics from all other middleware.
	a.Echo.Use(middleware.Recovery())

	// Correlation id for logs and the X-Request-ID header.
	a.Echo.Use(middleware.RequestID())

	// Request logging -- log every request with method, path, status, latency.
	a.Echo.Use(middleware.RequestLogger())

	// Prometheus request counters and latency histogram.
	a.Echo.Use(metrics.Middleware())

	// Security headers -- CSP, X-Frame-Options, X-Content-Type-Options, etc.
	a.Echo.Use(middleware.SecurityHeaders())

	// Dark-mode stylesheet link in every HTML page, error pages included.
	a.Echo.Use(middleware.DarkMode())

	// CORS -- the chat widget may call the API from the apex or www host.
	a.Echo.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: []string{a.Config.BaseURL},
	}))

	// CSRF -- double-submit cookie pattern on the HTML forms.
	a.Echo.Use(middleware.CSRF())
}

// errorHandler is the custom Echo error handler. It maps domain errors
// (AppError) and Echo HTTP errors to a status and a client-safe message,
// then answers with JSON for the API and an error page otherwise.
func (a *App) errorHandler(err error, c echo.Context) {
	// Don't double-write if response is already committed.
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := defaultErrorMessage(code)

	// Check if it's our domain error type.
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		code = appErr.Code
		message = appErr.Message

		// Log internal errors with the underlying cause.
		if appErr.Internal != nil {
			slog.Error("internal error",
				slog.String("type", appErr.Type),
				slog.String("message", appErr.Message),
				slog.Any("internal", appErr.Internal),
				slog.String("path", c.Request().URL.Path),
				slog.String("request_id", middleware.GetRequestID(c)),
			)
		}
	} else {
		// Check for Echo's built-in HTTP errors (e.g., 404 from router).
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			code = echoErr.Code
			message = defaultErrorMessage(code)
		} else {
			// Truly unexpected error -- log it.
			slog.Error("unhandled error",
				slog.Any("error", err),
				slog.String("path", c.Request().URL.Path),
				slog.String("request_id", middleware.GetRequestID(c)),
			)
		}
	}

	// API requests always get JSON in the chat widget's shape.
	if isAPIRequest(c) {
		if err := c.JSON(code, map[string]any{
			"ok":    false,
			"error": http.StatusText(code),
			"reply": message,
		}); err != nil {
			slog.Debug("writing error response failed", slog.Any("error", err))
		}
		return
	}

	if err := middleware.Render(c, code, pages.ErrorPage(code, message)); err != nil {
		slog.Error("rendering error page failed", slog.Any("error", err))
	}
}

// defaultErrorMessage returns a visitor-facing message for common HTTP
// status codes.
func defaultErrorMessage(code int) string {
	switch code {
	case http.StatusBadRequest:
		return "Nieprawidłowe żądanie."
	case http.StatusForbidden:
		return "Sesja formularza wygasła. Odśwież stronę i spróbuj ponownie."
	case http.StatusNotFound:
		return "Strona, której szukasz, nie istnieje lub została przeniesiona."
	case http.StatusMethodNotAllowed:
		return "Ta operacja nie jest dozwolona."
	case http.StatusRequestEntityTooLarge:
		return "Przesłane dane są zbyt duże."
	case http.StatusTooManyRequests:
		return "Zbyt wiele żądań. Spróbuj ponownie za chwilę."
	case http.StatusServiceUnavailable:
		return "Usługa jest chwilowo niedostępna. Spróbuj ponownie później."
	default:
		return "Wystąpił nieoczekiwany błąd. Spróbuj ponownie."
	}
}

// isAPIRequest returns true if the request is targeting the API (JSON response expected).
func isAPIRequest(c echo.Context) bool {
	return strings.HasPrefix(c.Request().URL.Path, "/api/")
}

// Start begins listening for HTTP requests on the configured port and blocks
// until the server stops. A graceful shutdown returns nil; any other failure,
// such as the port being taken, is returned.
func (a *App) Start() error {
	addr := fmt.Sprintf(":%d", a.Config.Port)
	slog.Info("starting KARLAB Software site",
		slog.String("addr", addr),
		slog.String("env", a.Config.Env),
	)
	if err := a.Echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return nil
}

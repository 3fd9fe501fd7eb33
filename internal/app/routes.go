package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/database"
	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/metrics"
	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/middleware"
	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/plugins/chat"
	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/plugins/contact"
	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/plugins/inquiry"
	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/plugins/newsletter"
	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/plugins/pages"
)

// RegisterRoutes sets up all application routes. It registers the
// operational endpoints directly and delegates to each plugin's route
// registration function.
func (a *App) RegisterRoutes() {
	e := a.Echo

	// POSTs that send mail or write rows are rate limited per client IP.
	var limited []echo.MiddlewareFunc
	if a.Limiter != nil {
		limited = append(limited, middleware.RateLimit(a.Limiter))
	}

	// Health check endpoint for container monitoring. The site keeps serving
	// without a database, so degraded dependencies are reported, not failed.
	e.GET("/healthz", a.healthz)

	// Prometheus scrape endpoint.
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	// --- Plugin Routes ---

	pages.RegisterRoutes(e, pages.NewHandler())

	operator := a.Config.Mail.OperatorAddress()

	contactService := contact.NewContactService(a.Mailer, operator)
	contact.RegisterRoutes(e, contact.NewHandler(contactService), limited...)

	inquiryRepo := inquiry.NewInquiryRepository(a.DB)
	inquiryService := inquiry.NewInquiryService(inquiryRepo, a.Mailer, operator)
	inquiry.RegisterRoutes(e, inquiry.NewHandler(inquiryService), limited...)

	newsletterRepo := newsletter.NewSubscriptionRepository(a.DB)
	newsletterService := newsletter.NewNewsletterService(newsletterRepo)
	newsletter.RegisterRoutes(e, newsletter.NewHandler(newsletterService), limited...)

	// --- API Routes ---
	api := e.Group("/api", limited...)
	chatService := chat.NewChatService(chat.Providers(a.Config.AI)...)
	chat.RegisterRoutes(api, chat.NewHandler(chatService))
}

// healthz reports the state of the optional dependencies.
func (a *App) healthz(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	status := map[string]string{"status": "ok"}

	switch db, err := a.DB.Open(ctx); {
	case err == nil:
		db.Close()
		status["database"] = "ok"
	case errors.Is(err, database.ErrNotConfigured):
		status["database"] = "not_configured"
	default:
		status["database"] = "unavailable"
	}

	switch {
	case a.Redis == nil:
		status["redis"] = "not_configured"
	case a.Redis.Ping(ctx).Err() != nil:
		status["redis"] = "unavailable"
	default:
		status["redis"] = "ok"
	}

	return c.JSON(http.StatusOK, status)
}

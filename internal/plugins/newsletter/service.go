package newsletter

import (
	"context"
	"log/slog"
	"strings"

	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/metrics"
	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/sanitize"
)

// NewsletterService handles sign-ups.
type NewsletterService interface {
	// Subscribe validates and stores the address and returns the status
	// shown on the thank-you page: subscribed, exists or invalid.
	Subscribe(ctx context.Context, input SubscribeInput) string
}

type newsletterService struct {
	repo SubscriptionRepository
}

// NewNewsletterService creates a new newsletter service.
func NewNewsletterService(repo SubscriptionRepository) NewsletterService {
	return &newsletterService{repo: repo}
}

// Subscribe implements NewsletterService. Storage is best-effort: when the
// database is unavailable the visitor still sees the thank-you page and the
// failure is only logged.
func (s *newsletterService) Subscribe(ctx context.Context, input SubscribeInput) string {
	email := strings.ToLower(sanitize.Header(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		metrics.RecordNewsletter(StatusInvalid)
		return StatusInvalid
	}

	created, err := s.repo.Subscribe(ctx, &Subscription{
		Email:      email,
		SourcePage: sanitize.Header(input.SourcePage),
		ClientIP:   input.ClientIP,
		UserAgent:  input.UserAgent,
	})
	metrics.RecordStep("newsletter_store", err)

	status := StatusSubscribed
	switch {
	case err != nil:
		slog.Error("storing newsletter subscription failed",
			slog.String("email", email),
			slog.Any("error", err),
		)
	case !created:
		status = StatusExists
	default:
		slog.Info("newsletter subscription", slog.String("email", email))
	}

	metrics.RecordNewsletter(status)
	return status
}

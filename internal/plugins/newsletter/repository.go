package newsletter

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/database"
)

// SubscriptionRepository defines the data access contract for sign-ups.
type SubscriptionRepository interface {
	// Subscribe inserts the subscription unless the email is already
	// present. created is false for an existing address.
	Subscribe(ctx context.Context, sub *Subscription) (created bool, err error)
}

// subscriptionRepository opens a fresh connection per call.
type subscriptionRepository struct {
	factory *database.Factory
}

// NewSubscriptionRepository creates a repository backed by the factory.
func NewSubscriptionRepository(factory *database.Factory) SubscriptionRepository {
	return &subscriptionRepository{factory: factory}
}

var subscriptionColumns = []string{"email", "source_page", "client_ip", "user_agent"}

// Subscribe implements SubscriptionRepository.
func (r *subscriptionRepository) Subscribe(ctx context.Context, sub *Subscription) (bool, error) {
	query := r.factory.Dialect().InsertIgnoring("newsletter_subscriptions", subscriptionColumns, "email")

	var created bool
	err := r.factory.WithConnection(ctx, func(db *sql.DB) error {
		res, err := db.ExecContext(ctx, query,
			sub.Email,
			nullString(sub.SourcePage),
			sub.ClientIP,
			sub.UserAgent,
		)
		if err != nil {
			return fmt.Errorf("inserting subscription: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("reading affected rows: %w", err)
		}
		created = n > 0
		return nil
	})
	return created, err
}

// nullString stores empty optional text as NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

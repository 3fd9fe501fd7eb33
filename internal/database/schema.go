package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// InitSchema creates the inquiries and newsletter_subscriptions tables if
// they do not exist. Safe to call on every startup. Returns false on any
// failure; the error is logged, never returned, so a missing database cannot
// keep the web process from serving pages.
func InitSchema(ctx context.Context, f *Factory) bool {
	err := f.WithConnection(ctx, func(db *sql.DB) error {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("beginning schema transaction: %w", err)
		}
		defer tx.Rollback()

		for _, stmt := range f.dialect.schemaStatements() {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("creating table: %w", err)
			}
		}
		return tx.Commit()
	})
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			slog.Warn("database not configured, skipping schema init")
		} else {
			slog.Error("schema init failed", slog.Any("error", err))
		}
		return false
	}

	slog.Info("schema ready", slog.String("dialect", string(f.dialect)))
	return true
}

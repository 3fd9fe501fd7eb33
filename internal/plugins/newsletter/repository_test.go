package newsletter

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/config"
	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/database"
)

func sqliteFactory(t *testing.T) *database.Factory {
	t.Helper()
	f := database.NewFactory(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Name:   filepath.Join(t.TempDir(), "newsletter.db"),
	})
	if !database.InitSchema(context.Background(), f) {
		t.Fatal("schema init failed")
	}
	return f
}

func TestSubscriptionRepository_Subscribe(t *testing.T) {
	repo := NewSubscriptionRepository(sqliteFactory(t))
	ctx := context.Background()
	sub := &Subscription{Email: "jan@example.com", ClientIP: "10.0.0.1", UserAgent: "test"}

	created, err := repo.Subscribe(ctx, sub)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Fatal("first subscribe should create a row")
	}

	created, err = repo.Subscribe(ctx, sub)
	if err != nil {
		t.Fatalf("duplicate subscribe should not error: %v", err)
	}
	if created {
		t.Fatal("second subscribe should report an existing address")
	}
}

func TestSubscriptionRepository_NotConfigured(t *testing.T) {
	repo := NewSubscriptionRepository(database.NewFactory(config.DatabaseConfig{}))

	_, err := repo.Subscribe(context.Background(), &Subscription{Email: "a@b.c"})
	if !errors.Is(err, database.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

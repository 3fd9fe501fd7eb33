package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/config"
)

// sqliteFactory returns a factory backed by a fresh SQLite file.
func sqliteFactory(t *testing.T) *Factory {
	t.Helper()
	return NewFactory(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Name:   filepath.Join(t.TempDir(), "site.db"),
	})
}

func countTables(t *testing.T, f *Factory, name string) int {
	t.Helper()
	var n int
	err := f.WithConnection(context.Background(), func(db *sql.DB) error {
		return db.QueryRow(
			`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name,
		).Scan(&n)
	})
	if err != nil {
		t.Fatalf("counting tables: %v", err)
	}
	return n
}

func TestInitSchema_Idempotent(t *testing.T) {
	f := sqliteFactory(t)
	ctx := context.Background()

	if !InitSchema(ctx, f) {
		t.Fatal("expected first InitSchema to succeed")
	}
	if !InitSchema(ctx, f) {
		t.Fatal("expected second InitSchema to succeed")
	}

	for _, table := range []string{"inquiries", "newsletter_subscriptions"} {
		if got := countTables(t, f, table); got != 1 {
			t.Errorf("expected exactly one %s table, got %d", table, got)
		}
	}
}

func TestInitSchema_NotConfigured(t *testing.T) {
	f := NewFactory(config.DatabaseConfig{Driver: config.DriverPostgres})
	if InitSchema(context.Background(), f) {
		t.Fatal("expected InitSchema to report failure without a database")
	}
}

func TestInitSchema_Unreachable(t *testing.T) {
	f := NewFactory(config.DatabaseConfig{
		Driver:         config.DriverPostgres,
		Name:           "karlab",
		Host:           "127.0.0.1",
		Port:           1,
		SSLMode:        "disable",
		ConnectTimeout: time.Second,
	})
	if InitSchema(context.Background(), f) {
		t.Fatal("expected InitSchema to report failure for unreachable database")
	}
}

func TestOpen_NotConfigured(t *testing.T) {
	f := NewFactory(config.DatabaseConfig{})
	_, err := f.Open(context.Background())
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestOpen_Unreachable(t *testing.T) {
	f := NewFactory(config.DatabaseConfig{
		Driver:         config.DriverPostgres,
		Name:           "karlab",
		Host:           "127.0.0.1",
		Port:           1,
		SSLMode:        "disable",
		ConnectTimeout: time.Second,
	})
	_, err := f.Open(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestOpen_NilFactory(t *testing.T) {
	var f *Factory
	if _, err := f.Open(context.Background()); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestRebind(t *testing.T) {
	q := "INSERT INTO t (a, b, c) VALUES (?, ?, ?)"
	if got := Postgres.Rebind(q); got != "INSERT INTO t (a, b, c) VALUES ($1, $2, $3)" {
		t.Errorf("unexpected postgres rebind: %s", got)
	}
	if got := MySQL.Rebind(q); got != q {
		t.Errorf("mysql should keep ? placeholders, got %s", got)
	}
	if got := SQLite.Rebind(q); got != q {
		t.Errorf("sqlite should keep ? placeholders, got %s", got)
	}
}

func TestInsertIgnoring(t *testing.T) {
	cols := []string{"email", "source_page"}

	tests := []struct {
		dialect Dialect
		want    string
	}{
		{Postgres, "INSERT INTO subs (email, source_page) VALUES ($1, $2) ON CONFLICT (email) DO NOTHING"},
		{SQLite, "INSERT INTO subs (email, source_page) VALUES (?, ?) ON CONFLICT (email) DO NOTHING"},
		{MySQL, "INSERT IGNORE INTO subs (email, source_page) VALUES (?, ?)"},
	}
	for _, tt := range tests {
		if got := tt.dialect.InsertIgnoring("subs", cols, "email"); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.dialect, got, tt.want)
		}
	}
}

func TestDialectFor(t *testing.T) {
	if DialectFor("mysql").DriverName() != "mysql" {
		t.Error("expected mysql driver")
	}
	if DialectFor("sqlite").DriverName() != "sqlite" {
		t.Error("expected sqlite driver")
	}
	if DialectFor("").DriverName() != "pgx" {
		t.Error("expected pgx driver by default")
	}
}

func TestNewRedis_EmptyURL(t *testing.T) {
	client, err := NewRedis(context.Background(), config.RedisConfig{})
	if err != nil || client != nil {
		t.Fatalf("expected (nil, nil) for empty URL, got (%v, %v)", client, err)
	}
}

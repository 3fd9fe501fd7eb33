package database

import (
	"strconv"
	"strings"

	"github.com/p-karmelita/KARLAB-SOFTWARE/internal/config"
)

// Dialect captures the few places where the supported SQL engines differ:
// driver name, placeholder style, DDL, and conflict-ignoring inserts.
// Queries are written with "?" placeholders and passed through Rebind.
type Dialect string

const (
	Postgres Dialect = config.DriverPostgres
	MySQL    Dialect = config.DriverMySQL
	SQLite   Dialect = config.DriverSQLite
)

// DialectFor maps a config driver name to a Dialect, defaulting to Postgres.
func DialectFor(driver string) Dialect {
	switch driver {
	case config.DriverMySQL:
		return MySQL
	case config.DriverSQLite:
		return SQLite
	default:
		return Postgres
	}
}

// DriverName is the database/sql driver registered for the dialect.
func (d Dialect) DriverName() string {
	switch d {
	case MySQL:
		return "mysql"
	case SQLite:
		return "sqlite"
	default:
		return "pgx"
	}
}

// Rebind rewrites "?" placeholders into the dialect's native form.
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// InsertIgnoring builds an INSERT that silently skips rows violating the
// unique constraint on conflictColumn. RowsAffected is 0 for skipped rows.
func (d Dialect) InsertIgnoring(table string, columns []string, conflictColumn string) string {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	cols := strings.Join(columns, ", ")

	var q string
	switch d {
	case MySQL:
		q = "INSERT IGNORE INTO " + table + " (" + cols + ") VALUES (" + placeholders + ")"
	default:
		q = "INSERT INTO " + table + " (" + cols + ") VALUES (" + placeholders + ")" +
			" ON CONFLICT (" + conflictColumn + ") DO NOTHING"
	}
	return d.Rebind(q)
}

// schemaStatements returns the idempotent DDL for both site tables.
func (d Dialect) schemaStatements() []string {
	switch d {
	case MySQL:
		return []string{
			`CREATE TABLE IF NOT EXISTS inquiries (
				id BIGINT AUTO_INCREMENT PRIMARY KEY,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				name TEXT NOT NULL,
				email TEXT NOT NULL,
				company TEXT,
				business_needs TEXT NOT NULL,
				service_type TEXT NOT NULL,
				budget_range TEXT NOT NULL,
				timeline TEXT,
				project_description TEXT NOT NULL,
				additional_info TEXT,
				client_ip TEXT,
				user_agent TEXT
			) CHARACTER SET utf8mb4`,
			`CREATE TABLE IF NOT EXISTS newsletter_subscriptions (
				id BIGINT AUTO_INCREMENT PRIMARY KEY,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				email VARCHAR(320) NOT NULL UNIQUE,
				source_page TEXT,
				client_ip TEXT,
				user_agent TEXT
			) CHARACTER SET utf8mb4`,
		}

	case SQLite:
		return []string{
			`CREATE TABLE IF NOT EXISTS inquiries (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				name TEXT NOT NULL,
				email TEXT NOT NULL,
				company TEXT,
				business_needs TEXT NOT NULL,
				service_type TEXT NOT NULL,
				budget_range TEXT NOT NULL,
				timeline TEXT,
				project_description TEXT NOT NULL,
				additional_info TEXT,
				client_ip TEXT,
				user_agent TEXT
			)`,
			`CREATE TABLE IF NOT EXISTS newsletter_subscriptions (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
				email TEXT UNIQUE NOT NULL,
				source_page TEXT,
				client_ip TEXT,
				user_agent TEXT
			)`,
		}

	default:
		return []string{
			`CREATE TABLE IF NOT EXISTS inquiries (
				id SERIAL PRIMARY KEY,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				name TEXT NOT NULL,
				email TEXT NOT NULL,
				company TEXT,
				business_needs TEXT NOT NULL,
				service_type TEXT NOT NULL,
				budget_range TEXT NOT NULL,
				timeline TEXT,
				project_description TEXT NOT NULL,
				additional_info TEXT,
				client_ip TEXT,
				user_agent TEXT
			)`,
			`CREATE TABLE IF NOT EXISTS newsletter_subscriptions (
				id SERIAL PRIMARY KEY,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				email TEXT UNIQUE NOT NULL,
				source_page TEXT,
				client_ip TEXT,
				user_agent TEXT
			)`,
		}
	}
}

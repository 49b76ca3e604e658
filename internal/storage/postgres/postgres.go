// Package postgres owns the database handle lifecycle and the idempotent
// schema. The handle is constructed once in main and passed to the stores;
// nothing here is lazily initialized.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open connects to PostgreSQL via the pgx stdlib driver.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(15 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return db, nil
}

// Ping verifies connectivity with a bounded deadline, for health checks.
func Ping(ctx context.Context, db *sql.DB) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return db.PingContext(ctx)
}

// schema is applied with CREATE IF NOT EXISTS so repeated application is
// safe. The unique constraints on organizations.name, users.email and
// users.national_id are the only concurrency-correctness mechanism for
// racing signups.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS organizations (
		id UUID PRIMARY KEY,
		name TEXT UNIQUE NOT NULL,
		type TEXT NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		national_id TEXT UNIQUE,
		password_hash TEXT NOT NULL,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		role TEXT NOT NULL,
		organization_id UUID REFERENCES organizations(id),
		is_active BOOLEAN DEFAULT TRUE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS audit_events (
		id UUID PRIMARY KEY,
		action TEXT NOT NULL,
		email TEXT,
		user_id UUID,
		request_id TEXT,
		detail TEXT,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL
	)`,
}

// EnsureSchema idempotently creates the required tables.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// IsUniqueViolation reports whether err is a unique-constraint violation
// (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

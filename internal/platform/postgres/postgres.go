// Package postgres owns the database/sql connection lifecycle: connect at
// process start, pooled acquisition per operation, explicit shutdown. The
// client is constructed once and injected into stores; nothing reaches for an
// ambient singleton.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Client wraps *sql.DB with lifecycle helpers.
type Client struct {
	*sql.DB
}

// Open connects to PostgreSQL and verifies the connection.
func Open(ctx context.Context, databaseURL string) (*Client, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Client{DB: db}, nil
}

// Health checks if the database connection is healthy.
func (c *Client) Health(ctx context.Context) error {
	return c.PingContext(ctx)
}

// Close closes the connection pool.
func (c *Client) Close() error {
	return c.DB.Close()
}

// Migrate applies the schema. Idempotent; runs at startup.
func (c *Client) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS contacts (
			id UUID PRIMARY KEY,
			owner_id UUID NOT NULL REFERENCES users(id),
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS contacts_owner_id_idx ON contacts (owner_id)`,
		`CREATE TABLE IF NOT EXISTS token_revocations (
			jti TEXT PRIMARY KEY,
			expires_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS audit_events (
			id UUID PRIMARY KEY,
			occurred_at TIMESTAMPTZ NOT NULL,
			user_id UUID,
			action TEXT NOT NULL,
			subject TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := c.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"contacthub/internal/audit"
)

// PostgresStore persists audit events in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed audit store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, event audit.Event) error {
	query := `
		INSERT INTO audit_events (id, occurred_at, user_id, action, subject)
		VALUES ($1, $2, $3, $4, $5)
	`
	var userID any
	if event.UserID != uuid.Nil {
		userID = event.UserID
	}
	if _, err := s.db.ExecContext(ctx, query, event.ID, event.OccurredAt, userID, string(event.Action), event.Subject); err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]audit.Event, error) {
	query := `
		SELECT id, occurred_at, user_id, action, subject
		FROM audit_events
		WHERE user_id = $1
		ORDER BY occurred_at
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var events []audit.Event
	for rows.Next() {
		var event audit.Event
		var uid uuid.NullUUID
		var action string
		if err := rows.Scan(&event.ID, &event.OccurredAt, &uid, &action, &event.Subject); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.UserID = uid.UUID
		event.Action = audit.Action(action)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	return events, nil
}

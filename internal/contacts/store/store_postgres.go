package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"contacthub/internal/contacts/models"
	"contacthub/pkg/platform/sentinel"
)

// PostgresStore persists contacts in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed contact store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, contact *models.Contact) error {
	query := `
		INSERT INTO contacts (id, owner_id, name, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		contact.ID, contact.OwnerID, contact.Name, contact.Email, contact.Phone,
		contact.CreatedAt, contact.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create contact: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
	query := `
		SELECT id, owner_id, name, email, phone, created_at, updated_at
		FROM contacts
		WHERE id = $1
	`
	row := s.db.QueryRowContext(ctx, query, id)
	contact, err := scanContact(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("contact not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find contact: %w", err)
	}
	return contact, nil
}

func (s *PostgresStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Contact, error) {
	query := `
		SELECT id, owner_id, name, email, phone, created_at, updated_at
		FROM contacts
		WHERE owner_id = $1
		ORDER BY created_at
	`
	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	contacts := make([]*models.Contact, 0)
	for rows.Next() {
		contact, err := scanContact(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}

func (s *PostgresStore) Update(ctx context.Context, contact *models.Contact) error {
	query := `
		UPDATE contacts
		SET name = $2, email = $3, phone = $4, updated_at = $5
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		contact.ID, contact.Name, contact.Email, contact.Phone, contact.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("contact not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("contact not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

func scanContact(scan func(dest ...any) error) (*models.Contact, error) {
	var contact models.Contact
	err := scan(&contact.ID, &contact.OwnerID, &contact.Name, &contact.Email, &contact.Phone,
		&contact.CreatedAt, &contact.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

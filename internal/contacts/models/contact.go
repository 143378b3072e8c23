package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	dErrors "contacthub/pkg/domain-errors"
)

// Contact is an owned record.
//
// Invariants:
//   - Name, Email and Phone are non-empty
//   - OwnerID is set once at creation and never reassigned; it is the sole
//     authority for write/delete permission checks
type Contact struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewContact constructs a Contact, validating invariants.
func NewContact(id, ownerID uuid.UUID, name, email, phone string, now time.Time) (*Contact, error) {
	if ownerID == uuid.Nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "contact owner cannot be empty")
	}
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "contact name cannot be empty")
	}
	if email == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "contact email cannot be empty")
	}
	if phone == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "contact phone cannot be empty")
	}
	return &Contact{
		ID:        id,
		OwnerID:   ownerID,
		Name:      name,
		Email:     email,
		Phone:     phone,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsOwnedBy compares the owner reference against a caller id. Both sides are
// uuid.UUID values; callers normalize string ids before reaching this point.
func (c *Contact) IsOwnedBy(userID uuid.UUID) bool {
	return c.OwnerID == userID
}

// CreateContactRequest is the creation input.
type CreateContactRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Normalize trims surrounding whitespace.
func (r *CreateContactRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
}

// Validate enforces presence of all fields.
func (r *CreateContactRequest) Validate() error {
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if r.Email == "" {
		return dErrors.New(dErrors.CodeValidation, "email is required")
	}
	if r.Phone == "" {
		return dErrors.New(dErrors.CodeValidation, "phone is required")
	}
	return nil
}

// UpdateContactRequest carries a partial field merge. Nil means "leave
// unchanged"; a provided field must be non-empty.
type UpdateContactRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// Normalize trims surrounding whitespace from provided fields.
func (r *UpdateContactRequest) Normalize() {
	trim := func(p *string) {
		if p != nil {
			*p = strings.TrimSpace(*p)
		}
	}
	trim(r.Name)
	trim(r.Email)
	trim(r.Phone)
}

// Validate rejects explicit empty values; absent fields are fine.
func (r *UpdateContactRequest) Validate() error {
	if r.Name != nil && *r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name cannot be empty")
	}
	if r.Email != nil && *r.Email == "" {
		return dErrors.New(dErrors.CodeValidation, "email cannot be empty")
	}
	if r.Phone != nil && *r.Phone == "" {
		return dErrors.New(dErrors.CodeValidation, "phone cannot be empty")
	}
	return nil
}

// Apply merges the provided fields into the contact and bumps UpdatedAt.
func (r *UpdateContactRequest) Apply(c *Contact, now time.Time) {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Email != nil {
		c.Email = *r.Email
	}
	if r.Phone != nil {
		c.Phone = *r.Phone
	}
	c.UpdatedAt = now
}

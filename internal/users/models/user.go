package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	dErrors "contacthub/pkg/domain-errors"
)

// User is the identity record.
//
// Invariants:
//   - Email is unique (case-sensitive, exact match) and immutable
//   - PasswordHash holds only the bcrypt hash, never the plaintext
//   - CreatedAt is immutable after construction
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUser constructs a User, validating invariants. The password must already
// be hashed; constructors never see plaintext.
func NewUser(id uuid.UUID, username, email, passwordHash string, now time.Time) (*User, error) {
	if username == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "username cannot be empty")
	}
	if email == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "email cannot be empty")
	}
	if passwordHash == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "password hash cannot be empty")
	}
	return &User{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
	}, nil
}

// RegisterRequest is the registration input.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Normalize trims surrounding whitespace from identity fields. The password
// is left untouched.
func (r *RegisterRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
}

// Validate enforces presence of all fields.
func (r *RegisterRequest) Validate() error {
	if r.Username == "" {
		return dErrors.New(dErrors.CodeValidation, "username is required")
	}
	if r.Email == "" {
		return dErrors.New(dErrors.CodeValidation, "email is required")
	}
	if r.Password == "" {
		return dErrors.New(dErrors.CodeValidation, "password is required")
	}
	return nil
}

// LoginRequest is the login input.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate enforces presence of both fields.
func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return dErrors.New(dErrors.CodeValidation, "email is required")
	}
	if r.Password == "" {
		return dErrors.New(dErrors.CodeValidation, "password is required")
	}
	return nil
}

package audit

import (
	"time"

	"github.com/google/uuid"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID         uuid.UUID
	OccurredAt time.Time
	UserID     uuid.UUID
	Action     Action
	Subject    string
}

// Action names an auditable operation.
type Action string

const (
	ActionUserRegistered Action = "user.registered"
	ActionUserLogin      Action = "user.login"
	ActionUserLogout     Action = "user.logout"
	ActionContactCreated Action = "contact.created"
	ActionContactUpdated Action = "contact.updated"
	ActionContactDeleted Action = "contact.deleted"
)

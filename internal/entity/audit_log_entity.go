package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog is one recorded lifecycle event, written by the notifier from
// the event bus.
type AuditLog struct {
	Id             uuid.UUID
	EventType      string
	SessionId      *uint
	ExternalUserId *string
	Details        map[string]interface{}
	CreatedAt      time.Time
}

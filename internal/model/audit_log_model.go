package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuditLog struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EventType      string         `gorm:"type:varchar(50);not null;index"`
	SessionId      *uint          `gorm:"index"`
	ExternalUserId *string        `gorm:"type:varchar(100)"`
	Details        datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt      time.Time      `gorm:"default:now();not null;index"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

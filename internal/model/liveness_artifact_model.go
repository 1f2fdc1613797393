package model

import (
	"time"
)

type LivenessArtifact struct {
	Id         uint      `gorm:"primaryKey;autoIncrement"`
	SessionId  uint      `gorm:"not null;uniqueIndex:uq_liveness_session_id"`
	VideoKey   string    `gorm:"type:varchar(500);not null"`
	UploadedAt time.Time `gorm:"autoCreateTime"`
}

func (LivenessArtifact) TableName() string {
	return "liveness_artifacts"
}

package model

import (
	"time"
)

type KycResult struct {
	Id               uint       `gorm:"primaryKey;autoIncrement"`
	SessionId        uint       `gorm:"not null;uniqueIndex:uq_kyc_results_session_id"`
	MatchScore       *float64   `gorm:"type:double precision"`
	MatchPercent     *int       `gorm:"type:integer"`
	ModelVersion     *string    `gorm:"type:varchar(100)"`
	OperatorDecision *string    `gorm:"type:varchar(20)"`
	OperatorNote     *string    `gorm:"type:text"`
	DecidedAt        *time.Time `gorm:"type:timestamptz"`
	CreatedAt        time.Time  `gorm:"autoCreateTime"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime"`
}

func (KycResult) TableName() string {
	return "kyc_results"
}

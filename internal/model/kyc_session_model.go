package model

import (
	"time"
)

type KycSession struct {
	Id             uint      `gorm:"primaryKey;autoIncrement"`
	ExternalUserId string    `gorm:"type:varchar(100);not null;index"`
	Status         string    `gorm:"type:varchar(20);not null;default:'NEW';index"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (KycSession) TableName() string {
	return "kyc_sessions"
}

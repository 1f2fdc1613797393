package model

import (
	"time"
)

type Document struct {
	Id         uint      `gorm:"primaryKey;autoIncrement"`
	SessionId  uint      `gorm:"not null;index"`
	Type       string    `gorm:"type:varchar(20);not null"`
	FileKey    string    `gorm:"type:varchar(500);not null"`
	UploadedAt time.Time `gorm:"autoCreateTime"`
}

func (Document) TableName() string {
	return "documents"
}

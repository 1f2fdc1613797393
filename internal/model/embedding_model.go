package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

// Embedding rows are append-only. The vector column is dimension-less on
// purpose: FACE and DOCUMENT encoders may emit different lengths, and the
// Dim column caches the length for fast listing.
type Embedding struct {
	Id        uint            `gorm:"primaryKey;autoIncrement"`
	SessionId uint            `gorm:"not null;index:idx_embeddings_session_kind"`
	Kind      string          `gorm:"type:varchar(10);not null;index:idx_embeddings_session_kind"`
	Vector    pgvector.Vector `gorm:"type:vector"`
	Dim       int             `gorm:"not null"`
	FileKey   string          `gorm:"type:varchar(500);not null"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
}

func (Embedding) TableName() string {
	return "embeddings"
}

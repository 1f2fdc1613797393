package specification

import (
	"gorm.io/gorm"
)

// BySessionID filters child rows by their owning session
type BySessionID struct {
	SessionID uint
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

// ByExternalUserID filters sessions by the caller-supplied subject id
type ByExternalUserID struct {
	ExternalUserID string
}

func (s ByExternalUserID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("external_user_id = ?", s.ExternalUserID)
}

// ByKind filters embeddings by kind (FACE / DOCUMENT)
type ByKind struct {
	Kind string
}

func (s ByKind) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("kind = ?", s.Kind)
}

package entity

import "time"

type DocumentType string

const (
	DocumentTypePassport DocumentType = "PASSPORT"
	DocumentTypeNric     DocumentType = "NRIC"
	DocumentTypeOther    DocumentType = "OTHER"
)

func (t DocumentType) Valid() bool {
	switch t {
	case DocumentTypePassport, DocumentTypeNric, DocumentTypeOther:
		return true
	}
	return false
}

// Document is an uploaded identity-document record. Immutable once created.
type Document struct {
	Id         uint
	SessionId  uint
	Type       DocumentType
	FileKey    string
	UploadedAt time.Time
}

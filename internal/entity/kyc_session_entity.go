package entity

import (
	"time"
)

// KycStatus is the lifecycle state of a verification session.
// Transitions are applied explicitly by the triggering operation,
// never recomputed from child rows.
type KycStatus string

const (
	StatusNew            KycStatus = "NEW"
	StatusDocUploaded    KycStatus = "DOC_UPLOADED"
	StatusLiveUploaded   KycStatus = "LIVE_UPLOADED"
	StatusReadyForReview KycStatus = "READY_FOR_REVIEW"
	StatusApproved       KycStatus = "APPROVED"
	StatusRejected       KycStatus = "REJECTED"
	StatusNeedsRetry     KycStatus = "NEEDS_RETRY"
)

func (s KycStatus) Valid() bool {
	switch s {
	case StatusNew, StatusDocUploaded, StatusLiveUploaded, StatusReadyForReview,
		StatusApproved, StatusRejected, StatusNeedsRetry:
		return true
	}
	return false
}

// AfterDocumentAdded bumps NEW to DOC_UPLOADED. Documents added in any
// later state never regress the status.
func (s KycStatus) AfterDocumentAdded() KycStatus {
	if s == StatusNew {
		return StatusDocUploaded
	}
	return s
}

// AfterLivenessSet bumps NEW or DOC_UPLOADED to LIVE_UPLOADED.
// Re-uploading liveness in a later state leaves the status unchanged.
func (s KycStatus) AfterLivenessSet() KycStatus {
	if s == StatusNew || s == StatusDocUploaded {
		return StatusLiveUploaded
	}
	return s
}

// AfterMatchUpserted always moves to READY_FOR_REVIEW. A score implies
// both artifacts exist, so this supersedes upload-driven states.
func (s KycStatus) AfterMatchUpserted() KycStatus {
	return StatusReadyForReview
}

type KycSession struct {
	Id             uint
	ExternalUserId string
	Status         KycStatus
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

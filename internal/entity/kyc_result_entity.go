package entity

import "time"

type Decision string

const (
	DecisionApproved   Decision = "APPROVED"
	DecisionRejected   Decision = "REJECTED"
	DecisionNeedsRetry Decision = "NEEDS_RETRY"
)

func (d Decision) Valid() bool {
	switch d {
	case DecisionApproved, DecisionRejected, DecisionNeedsRetry:
		return true
	}
	return false
}

// StatusForDecision maps an operator decision onto the terminal session
// status. Compared by enum value only.
func StatusForDecision(d Decision) KycStatus {
	switch d {
	case DecisionApproved:
		return StatusApproved
	case DecisionRejected:
		return StatusRejected
	default:
		return StatusNeedsRetry
	}
}

// KycResult is the 1:1 verification outcome of a session. Created lazily
// on the first match computation or operator decision, upserted in place
// afterwards.
type KycResult struct {
	Id               uint
	SessionId        uint
	MatchScore       *float64
	MatchPercent     *int
	ModelVersion     *string
	OperatorDecision *Decision
	OperatorNote     *string
	DecidedAt        *time.Time
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}

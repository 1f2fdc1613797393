package contract

import (
	"context"
	"time"

	"kyc-verification-be/internal/entity"
)

type KycResultRepository interface {
	// UpsertMatch writes score/percent/model version, creating the result
	// row if the session has none. Operator fields are left untouched.
	UpsertMatch(ctx context.Context, sessionId uint, score float64, percent int, modelVersion string) (*entity.KycResult, error)
	// UpsertDecision writes the operator decision fields, creating the
	// result row (with null score/percent) if the session has none.
	UpsertDecision(ctx context.Context, sessionId uint, decision entity.Decision, note *string, decidedAt time.Time) (*entity.KycResult, error)
	FindBySessionId(ctx context.Context, sessionId uint) (*entity.KycResult, error)
	// LatestPercentForSubject returns the match percent of the subject's
	// most recently updated result, or nil when no result carries one.
	LatestPercentForSubject(ctx context.Context, externalUserId string) (*int, error)
}

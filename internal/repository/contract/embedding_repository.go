package contract

import (
	"context"

	"kyc-verification-be/internal/entity"
	"kyc-verification-be/internal/repository/specification"
)

// EmbeddingRepository is the append-only embedding ledger. Rows are never
// mutated or deleted; "latest" is the row with the greatest id.
type EmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.Embedding) error
	// Latest returns the newest embedding of a kind for one session, or
	// nil when none exists.
	Latest(ctx context.Context, sessionId uint, kind entity.EmbeddingKind) (*entity.Embedding, error)
	// LatestForSubject returns the newest embedding of a kind across all
	// sessions of a subject, ordered by embedding id (not session id).
	LatestForSubject(ctx context.Context, externalUserId string, kind entity.EmbeddingKind) (*entity.Embedding, error)
	// HasKindForSubject reports whether any embedding of the kind exists in
	// any of the subject's sessions.
	HasKindForSubject(ctx context.Context, externalUserId string, kind entity.EmbeddingKind) (bool, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Embedding, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

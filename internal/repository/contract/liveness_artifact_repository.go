package contract

import (
	"context"

	"kyc-verification-be/internal/entity"
)

type LivenessArtifactRepository interface {
	// Upsert inserts the artifact or, when one already exists for the
	// session, replaces its video key and upload timestamp in place.
	// Atomicity is provided by the store (ON CONFLICT on session_id), so
	// concurrent calls serialize at the row level.
	Upsert(ctx context.Context, artifact *entity.LivenessArtifact) error
	FindBySessionId(ctx context.Context, sessionId uint) (*entity.LivenessArtifact, error)
}

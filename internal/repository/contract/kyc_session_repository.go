package contract

import (
	"context"

	"kyc-verification-be/internal/entity"
	"kyc-verification-be/internal/repository/specification"
)

type KycSessionRepository interface {
	Create(ctx context.Context, session *entity.KycSession) error
	// AdvanceStatus moves the session to the target status in a single
	// conditional UPDATE. When onlyFrom is non-empty the transition only
	// fires if the current status is in that set, which makes re-invoked
	// operations idempotent without application-level locking.
	AdvanceStatus(ctx context.Context, id uint, to entity.KycStatus, onlyFrom ...entity.KycStatus) error
	FindById(ctx context.Context, id uint) (*entity.KycSession, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KycSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KycSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// LatestByExternalUserId returns the most recently created session of a
	// subject (greatest session id), or nil if the subject has none.
	LatestByExternalUserId(ctx context.Context, externalUserId string) (*entity.KycSession, error)
	// DistinctExternalUserIds lists every known subject id, for the summary view.
	DistinctExternalUserIds(ctx context.Context) ([]string, error)
}

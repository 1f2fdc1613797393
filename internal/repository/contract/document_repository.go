package contract

import (
	"context"

	"kyc-verification-be/internal/entity"
	"kyc-verification-be/internal/repository/specification"
)

// Documents are immutable once created; no update or delete is defined.
type DocumentRepository interface {
	Create(ctx context.Context, document *entity.Document) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

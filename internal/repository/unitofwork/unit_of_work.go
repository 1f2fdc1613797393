package unitofwork

import (
	"context"

	"kyc-verification-be/internal/repository/contract"
)

// UnitOfWork scopes repository access to one logical operation. Begin
// switches the repositories onto a shared transaction; each session
// mutation and its status advance commit together.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	KycSessionRepository() contract.KycSessionRepository
	DocumentRepository() contract.DocumentRepository
	LivenessArtifactRepository() contract.LivenessArtifactRepository
	EmbeddingRepository() contract.EmbeddingRepository
	KycResultRepository() contract.KycResultRepository
	AuditLogRepository() contract.AuditLogRepository
}

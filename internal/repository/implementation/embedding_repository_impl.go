package implementation

import (
	"context"
	"errors"

	"kyc-verification-be/internal/entity"
	"kyc-verification-be/internal/mapper"
	"kyc-verification-be/internal/model"
	"kyc-verification-be/internal/repository/contract"
	"kyc-verification-be/internal/repository/specification"

	"gorm.io/gorm"
)

type EmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.EmbeddingMapper
}

func NewEmbeddingRepository(db *gorm.DB) contract.EmbeddingRepository {
	return &EmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewEmbeddingMapper(),
	}
}

func (r *EmbeddingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *EmbeddingRepositoryImpl) Create(ctx context.Context, embedding *entity.Embedding) error {
	m := r.mapper.ToModel(embedding)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*embedding = *r.mapper.ToEntity(m)
	return nil
}

func (r *EmbeddingRepositoryImpl) Latest(ctx context.Context, sessionId uint, kind entity.EmbeddingKind) (*entity.Embedding, error) {
	var m model.Embedding
	err := r.applySpecifications(r.db.WithContext(ctx),
		specification.BySessionID{SessionID: sessionId},
		specification.ByKind{Kind: string(kind)},
		specification.OrderBy{Field: "id", Desc: true},
	).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

// LatestForSubject orders by embedding id across every session of the
// subject: a later embedding in an older session outranks an earlier
// embedding in a newer session.
func (r *EmbeddingRepositoryImpl) LatestForSubject(ctx context.Context, externalUserId string, kind entity.EmbeddingKind) (*entity.Embedding, error) {
	var m model.Embedding
	err := r.db.WithContext(ctx).
		Joins("JOIN kyc_sessions ON kyc_sessions.id = embeddings.session_id").
		Where("kyc_sessions.external_user_id = ?", externalUserId).
		Where("embeddings.kind = ?", string(kind)).
		Order("embeddings.id DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *EmbeddingRepositoryImpl) HasKindForSubject(ctx context.Context, externalUserId string, kind entity.EmbeddingKind) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Embedding{}).
		Joins("JOIN kyc_sessions ON kyc_sessions.id = embeddings.session_id").
		Where("kyc_sessions.external_user_id = ?", externalUserId).
		Where("embeddings.kind = ?", string(kind)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *EmbeddingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Embedding, error) {
	var models []*model.Embedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *EmbeddingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.Embedding{}).Count(&count).Error
	return count, err
}

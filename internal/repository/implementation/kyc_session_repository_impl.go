package implementation

import (
	"context"
	"errors"
	"time"

	"kyc-verification-be/internal/entity"
	"kyc-verification-be/internal/mapper"
	"kyc-verification-be/internal/model"
	"kyc-verification-be/internal/repository/contract"
	"kyc-verification-be/internal/repository/specification"

	"gorm.io/gorm"
)

type KycSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KycSessionMapper
}

func NewKycSessionRepository(db *gorm.DB) contract.KycSessionRepository {
	return &KycSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewKycSessionMapper(),
	}
}

func (r *KycSessionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *KycSessionRepositoryImpl) Create(ctx context.Context, session *entity.KycSession) error {
	m := r.mapper.ToModel(session)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.ToEntity(m)
	return nil
}

func (r *KycSessionRepositoryImpl) AdvanceStatus(ctx context.Context, id uint, to entity.KycStatus, onlyFrom ...entity.KycStatus) error {
	query := r.db.WithContext(ctx).
		Model(&model.KycSession{}).
		Where("id = ?", id)

	if len(onlyFrom) > 0 {
		froms := make([]string, len(onlyFrom))
		for i, s := range onlyFrom {
			froms[i] = string(s)
		}
		query = query.Where("status IN ?", froms)
	}

	return query.Updates(map[string]interface{}{
		"status":     string(to),
		"updated_at": time.Now(),
	}).Error
}

func (r *KycSessionRepositoryImpl) FindById(ctx context.Context, id uint) (*entity.KycSession, error) {
	var m model.KycSession
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *KycSessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KycSession, error) {
	var m model.KycSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *KycSessionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KycSession, error) {
	var models []*model.KycSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *KycSessionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.KycSession{}).Count(&count).Error
	return count, err
}

func (r *KycSessionRepositoryImpl) LatestByExternalUserId(ctx context.Context, externalUserId string) (*entity.KycSession, error) {
	return r.FindOne(ctx,
		specification.ByExternalUserID{ExternalUserID: externalUserId},
		specification.OrderBy{Field: "id", Desc: true},
	)
}

func (r *KycSessionRepositoryImpl) DistinctExternalUserIds(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.KycSession{}).
		Distinct("external_user_id").
		Order("external_user_id ASC").
		Pluck("external_user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

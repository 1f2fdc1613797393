package implementation

import (
	"context"
	"errors"
	"time"

	"kyc-verification-be/internal/entity"
	"kyc-verification-be/internal/mapper"
	"kyc-verification-be/internal/model"
	"kyc-verification-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LivenessArtifactRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LivenessArtifactMapper
}

func NewLivenessArtifactRepository(db *gorm.DB) contract.LivenessArtifactRepository {
	return &LivenessArtifactRepositoryImpl{
		db:     db,
		mapper: mapper.NewLivenessArtifactMapper(),
	}
}

func (r *LivenessArtifactRepositoryImpl) Upsert(ctx context.Context, artifact *entity.LivenessArtifact) error {
	now := time.Now()
	m := &model.LivenessArtifact{
		SessionId:  artifact.SessionId,
		VideoKey:   artifact.VideoKey,
		UploadedAt: now,
	}

	// Single atomic statement keyed on the session unique index, so a
	// concurrent second upload replaces rather than duplicates.
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"video_key":   artifact.VideoKey,
				"uploaded_at": now,
			}),
		}).
		Create(m).Error
	if err != nil {
		return err
	}

	stored, err := r.FindBySessionId(ctx, artifact.SessionId)
	if err != nil {
		return err
	}
	if stored != nil {
		*artifact = *stored
	}
	return nil
}

func (r *LivenessArtifactRepositoryImpl) FindBySessionId(ctx context.Context, sessionId uint) (*entity.LivenessArtifact, error) {
	var m model.LivenessArtifact
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

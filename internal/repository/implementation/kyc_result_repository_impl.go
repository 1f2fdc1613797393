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

type KycResultRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KycResultMapper
}

func NewKycResultRepository(db *gorm.DB) contract.KycResultRepository {
	return &KycResultRepositoryImpl{
		db:     db,
		mapper: mapper.NewKycResultMapper(),
	}
}

// UpsertMatch is a single insert-or-update keyed on the session unique
// index. Operator decision columns are never touched here.
func (r *KycResultRepositoryImpl) UpsertMatch(ctx context.Context, sessionId uint, score float64, percent int, modelVersion string) (*entity.KycResult, error) {
	m := &model.KycResult{
		SessionId:    sessionId,
		MatchScore:   &score,
		MatchPercent: &percent,
		ModelVersion: &modelVersion,
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"match_score":   score,
				"match_percent": percent,
				"model_version": modelVersion,
				"updated_at":    time.Now(),
			}),
		}).
		Create(m).Error
	if err != nil {
		return nil, err
	}

	return r.FindBySessionId(ctx, sessionId)
}

// UpsertDecision creates the result row when the operator decides before
// any match ran, leaving score/percent null.
func (r *KycResultRepositoryImpl) UpsertDecision(ctx context.Context, sessionId uint, decision entity.Decision, note *string, decidedAt time.Time) (*entity.KycResult, error) {
	d := string(decision)
	m := &model.KycResult{
		SessionId:        sessionId,
		OperatorDecision: &d,
		OperatorNote:     note,
		DecidedAt:        &decidedAt,
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"operator_decision": d,
				"operator_note":     note,
				"decided_at":        decidedAt,
				"updated_at":        time.Now(),
			}),
		}).
		Create(m).Error
	if err != nil {
		return nil, err
	}

	return r.FindBySessionId(ctx, sessionId)
}

func (r *KycResultRepositoryImpl) FindBySessionId(ctx context.Context, sessionId uint) (*entity.KycResult, error) {
	var m model.KycResult
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *KycResultRepositoryImpl) LatestPercentForSubject(ctx context.Context, externalUserId string) (*int, error) {
	var row struct {
		MatchPercent *int
	}
	err := r.db.WithContext(ctx).
		Table("kyc_results").
		Select("kyc_results.match_percent").
		Joins("JOIN kyc_sessions ON kyc_sessions.id = kyc_results.session_id").
		Where("kyc_sessions.external_user_id = ?", externalUserId).
		Order("kyc_results.updated_at DESC").
		Limit(1).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return row.MatchPercent, nil
}

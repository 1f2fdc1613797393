package mapper

import (
	"time"

	"kyc-verification-be/internal/entity"
	"kyc-verification-be/internal/model"
)

type KycResultMapper struct{}

func NewKycResultMapper() *KycResultMapper {
	return &KycResultMapper{}
}

func (m *KycResultMapper) ToEntity(r *model.KycResult) *entity.KycResult {
	if r == nil {
		return nil
	}

	var decision *entity.Decision
	if r.OperatorDecision != nil {
		d := entity.Decision(*r.OperatorDecision)
		decision = &d
	}

	var updatedAt *time.Time
	if !r.UpdatedAt.IsZero() {
		t := r.UpdatedAt
		updatedAt = &t
	}

	return &entity.KycResult{
		Id:               r.Id,
		SessionId:        r.SessionId,
		MatchScore:       r.MatchScore,
		MatchPercent:     r.MatchPercent,
		ModelVersion:     r.ModelVersion,
		OperatorDecision: decision,
		OperatorNote:     r.OperatorNote,
		DecidedAt:        r.DecidedAt,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        updatedAt,
	}
}

func (m *KycResultMapper) ToModel(r *entity.KycResult) *model.KycResult {
	if r == nil {
		return nil
	}

	var decision *string
	if r.OperatorDecision != nil {
		d := string(*r.OperatorDecision)
		decision = &d
	}

	var updatedAt time.Time
	if r.UpdatedAt != nil {
		updatedAt = *r.UpdatedAt
	}

	return &model.KycResult{
		Id:               r.Id,
		SessionId:        r.SessionId,
		MatchScore:       r.MatchScore,
		MatchPercent:     r.MatchPercent,
		ModelVersion:     r.ModelVersion,
		OperatorDecision: decision,
		OperatorNote:     r.OperatorNote,
		DecidedAt:        r.DecidedAt,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        updatedAt,
	}
}

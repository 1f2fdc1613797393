package mapper

import (
	"time"

	"kyc-verification-be/internal/entity"
	"kyc-verification-be/internal/model"
)

type KycSessionMapper struct{}

func NewKycSessionMapper() *KycSessionMapper {
	return &KycSessionMapper{}
}

func (m *KycSessionMapper) ToEntity(s *model.KycSession) *entity.KycSession {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.KycSession{
		Id:             s.Id,
		ExternalUserId: s.ExternalUserId,
		Status:         entity.KycStatus(s.Status),
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *KycSessionMapper) ToModel(s *entity.KycSession) *model.KycSession {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.KycSession{
		Id:             s.Id,
		ExternalUserId: s.ExternalUserId,
		Status:         string(s.Status),
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *KycSessionMapper) ToEntities(sessions []*model.KycSession) []*entity.KycSession {
	entities := make([]*entity.KycSession, len(sessions))
	for i, s := range sessions {
		entities[i] = m.ToEntity(s)
	}
	return entities
}

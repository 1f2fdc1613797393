package mapper

import (
	"kyc-verification-be/internal/entity"
	"kyc-verification-be/internal/model"
)

type LivenessArtifactMapper struct{}

func NewLivenessArtifactMapper() *LivenessArtifactMapper {
	return &LivenessArtifactMapper{}
}

func (m *LivenessArtifactMapper) ToEntity(a *model.LivenessArtifact) *entity.LivenessArtifact {
	if a == nil {
		return nil
	}
	return &entity.LivenessArtifact{
		Id:         a.Id,
		SessionId:  a.SessionId,
		VideoKey:   a.VideoKey,
		UploadedAt: a.UploadedAt,
	}
}

func (m *LivenessArtifactMapper) ToModel(a *entity.LivenessArtifact) *model.LivenessArtifact {
	if a == nil {
		return nil
	}
	return &model.LivenessArtifact{
		Id:         a.Id,
		SessionId:  a.SessionId,
		VideoKey:   a.VideoKey,
		UploadedAt: a.UploadedAt,
	}
}

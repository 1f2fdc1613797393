package mapper

import (
	"kyc-verification-be/internal/entity"
	"kyc-verification-be/internal/model"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}
	return &entity.Document{
		Id:         d.Id,
		SessionId:  d.SessionId,
		Type:       entity.DocumentType(d.Type),
		FileKey:    d.FileKey,
		UploadedAt: d.UploadedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}
	return &model.Document{
		Id:         d.Id,
		SessionId:  d.SessionId,
		Type:       string(d.Type),
		FileKey:    d.FileKey,
		UploadedAt: d.UploadedAt,
	}
}

func (m *DocumentMapper) ToEntities(documents []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, len(documents))
	for i, d := range documents {
		entities[i] = m.ToEntity(d)
	}
	return entities
}

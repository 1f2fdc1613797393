package mapper

import (
	"kyc-verification-be/internal/entity"
	"kyc-verification-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type EmbeddingMapper struct{}

func NewEmbeddingMapper() *EmbeddingMapper {
	return &EmbeddingMapper{}
}

func (m *EmbeddingMapper) ToEntity(e *model.Embedding) *entity.Embedding {
	if e == nil {
		return nil
	}
	return &entity.Embedding{
		Id:        e.Id,
		SessionId: e.SessionId,
		Kind:      entity.EmbeddingKind(e.Kind),
		Vector:    e.Vector.Slice(),
		Dim:       e.Dim,
		FileKey:   e.FileKey,
		CreatedAt: e.CreatedAt,
	}
}

func (m *EmbeddingMapper) ToModel(e *entity.Embedding) *model.Embedding {
	if e == nil {
		return nil
	}
	return &model.Embedding{
		Id:        e.Id,
		SessionId: e.SessionId,
		Kind:      string(e.Kind),
		Vector:    pgvector.NewVector(e.Vector),
		Dim:       e.Dim,
		FileKey:   e.FileKey,
		CreatedAt: e.CreatedAt,
	}
}

func (m *EmbeddingMapper) ToEntities(embeddings []*model.Embedding) []*entity.Embedding {
	entities := make([]*entity.Embedding, len(embeddings))
	for i, e := range embeddings {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

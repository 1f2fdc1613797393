package mapper

import (
	"encoding/json"

	"kyc-verification-be/internal/entity"
	"kyc-verification-be/internal/model"

	"gorm.io/datatypes"
)

type AuditLogMapper struct{}

func NewAuditLogMapper() *AuditLogMapper {
	return &AuditLogMapper{}
}

func (m *AuditLogMapper) ToEntity(l *model.AuditLog) *entity.AuditLog {
	if l == nil {
		return nil
	}

	details := make(map[string]interface{})
	if len(l.Details) > 0 {
		// Malformed payloads degrade to an empty detail map.
		_ = json.Unmarshal(l.Details, &details)
	}

	return &entity.AuditLog{
		Id:             l.Id,
		EventType:      l.EventType,
		SessionId:      l.SessionId,
		ExternalUserId: l.ExternalUserId,
		Details:        details,
		CreatedAt:      l.CreatedAt,
	}
}

func (m *AuditLogMapper) ToModel(l *entity.AuditLog) *model.AuditLog {
	if l == nil {
		return nil
	}

	var details datatypes.JSON
	if l.Details != nil {
		if raw, err := json.Marshal(l.Details); err == nil {
			details = raw
		}
	}

	return &model.AuditLog{
		Id:             l.Id,
		EventType:      l.EventType,
		SessionId:      l.SessionId,
		ExternalUserId: l.ExternalUserId,
		Details:        details,
		CreatedAt:      l.CreatedAt,
	}
}

func (m *AuditLogMapper) ToEntities(logs []*model.AuditLog) []*entity.AuditLog {
	entities := make([]*entity.AuditLog, len(logs))
	for i, l := range logs {
		entities[i] = m.ToEntity(l)
	}
	return entities
}

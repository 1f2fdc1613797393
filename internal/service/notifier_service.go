package service

import (
	"context"
	"encoding/json"

	"kyc-verification-be/internal/entity"
	"kyc-verification-be/internal/pkg/logger"
	"kyc-verification-be/internal/pkg/mailer"
	"kyc-verification-be/internal/repository/unitofwork"
	"kyc-verification-be/pkg/events"
)

// LiveFeed pushes event envelopes to connected dashboard clients. The
// websocket hub implements it; keeping it an interface here avoids a
// service->websocket import cycle.
type LiveFeed interface {
	Broadcast(data []byte)
}

// INotifierService is the single consumer of the internal event bus. It
// turns every lifecycle event into an audit row, fans it out to the live
// feed, and mails the ops inbox on decisions.
type INotifierService interface {
	Start(ctx context.Context) error
}

type notifierService struct {
	publisher  IPublisherService
	uowFactory unitofwork.RepositoryFactory
	subjects   ISubjectService
	feed       LiveFeed
	mailer     mailer.IEmailService
	opsInbox   string
	logger     logger.ILogger
}

func NewNotifierService(
	publisher IPublisherService,
	uowFactory unitofwork.RepositoryFactory,
	subjects ISubjectService,
	feed LiveFeed,
	emailService mailer.IEmailService,
	opsInbox string,
	log logger.ILogger,
) INotifierService {
	return &notifierService{
		publisher:  publisher,
		uowFactory: uowFactory,
		subjects:   subjects,
		feed:       feed,
		mailer:     emailService,
		opsInbox:   opsInbox,
		logger:     log,
	}
}

func (s *notifierService) Start(ctx context.Context) error {
	messages, err := s.publisher.Bus().Subscribe(ctx, SessionEventsTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.handle(ctx, msg.Payload)
			msg.Ack()
		}
	}()

	return nil
}

func (s *notifierService) handle(ctx context.Context, payload []byte) {
	var envelope EventEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		s.logger.Error("Notifier", "Malformed event envelope", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	s.recordAudit(ctx, &envelope)

	if s.feed != nil {
		s.feed.Broadcast(payload)
	}

	switch envelope.Type {
	case events.TypeSessionCreated, events.TypeEmbeddingAppended, events.TypeMatchComputed, events.TypeDecisionRecorded:
		// These change what the summary rollup reports.
		s.subjects.InvalidateSummary()
	}

	if envelope.Type == events.TypeDecisionRecorded {
		s.sendDecisionNotice(&envelope)
	}
}

func (s *notifierService) recordAudit(ctx context.Context, envelope *EventEnvelope) {
	row := entity.AuditLog{
		EventType: envelope.Type,
		Details:   envelope.Payload,
	}
	if v, ok := envelope.Payload["session_id"]; ok {
		// JSON numbers decode as float64.
		if f, ok := v.(float64); ok {
			id := uint(f)
			row.SessionId = &id
		}
	}
	if v, ok := envelope.Payload["external_user_id"].(string); ok {
		row.ExternalUserId = &v
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.AuditLogRepository().Create(ctx, &row); err != nil {
		s.logger.Error("Notifier", "Failed to write audit log", map[string]interface{}{
			"event_type": envelope.Type, "error": err.Error(),
		})
	}
}

func (s *notifierService) sendDecisionNotice(envelope *EventEnvelope) {
	if s.mailer == nil || s.opsInbox == "" {
		return
	}

	var sessionId uint
	if f, ok := envelope.Payload["session_id"].(float64); ok {
		sessionId = uint(f)
	}
	externalUserId, _ := envelope.Payload["external_user_id"].(string)
	decision, _ := envelope.Payload["decision"].(string)

	if err := s.mailer.SendDecisionNotice(s.opsInbox, sessionId, externalUserId, decision, nil); err != nil {
		s.logger.Warn("Notifier", "Failed to send decision notice", map[string]interface{}{
			"session_id": sessionId, "error": err.Error(),
		})
	}
}

package service

import (
	"context"
	"encoding/json"
	"time"

	"kyc-verification-be/internal/pkg/logger"
	"kyc-verification-be/pkg/events"
	pktNats "kyc-verification-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// SessionEventsTopic is the in-process bus topic every lifecycle event
// lands on. The notifier consumes it for audit, live feed and email.
const SessionEventsTopic = "kyc.session.events"

// EventEnvelope is the wire form of an event on the internal bus.
type EventEnvelope struct {
	Type       string                 `json:"type"`
	Payload    map[string]interface{} `json:"payload"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// IPublisherService fans session lifecycle events out to the internal
// gochannel bus and, when configured, mirrors them onto NATS JetStream.
// Publishing is best-effort: a bus failure is logged and never fails the
// operation that emitted the event.
type IPublisherService interface {
	Publish(ctx context.Context, event events.Event)
	Bus() *gochannel.GoChannel
	Close()
}

type publisherService struct {
	bus    *gochannel.GoChannel
	nats   *pktNats.Publisher
	logger logger.ILogger
}

func NewPublisherService(natsPub *pktNats.Publisher, log logger.ILogger) IPublisherService {
	bus := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NopLogger{},
	)
	return &publisherService{
		bus:    bus,
		nats:   natsPub,
		logger: log,
	}
}

func (s *publisherService) Publish(ctx context.Context, event events.Event) {
	envelope := EventEnvelope{
		Type:       event.EventType(),
		Payload:    event.Payload(),
		OccurredAt: event.Timestamp(),
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		s.logger.Error("Publisher", "Failed to marshal event envelope", map[string]interface{}{
			"type": event.EventType(), "error": err.Error(),
		})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	if err := s.bus.Publish(SessionEventsTopic, msg); err != nil {
		s.logger.Error("Publisher", "Failed to publish to internal bus", map[string]interface{}{
			"type": event.EventType(), "error": err.Error(),
		})
	}

	if s.nats != nil {
		if err := s.nats.Publish(ctx, event); err != nil {
			s.logger.Warn("Publisher", "Failed to mirror event to NATS", map[string]interface{}{
				"type": event.EventType(), "error": err.Error(),
			})
		}
	}
}

func (s *publisherService) Bus() *gochannel.GoChannel {
	return s.bus
}

func (s *publisherService) Close() {
	_ = s.bus.Close()
	if s.nats != nil {
		s.nats.Close()
	}
}

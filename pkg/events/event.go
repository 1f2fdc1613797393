package events

import "time"

// Event types emitted by the verification session engine.
const (
	TypeSessionCreated    = "SESSION_CREATED"
	TypeDocumentAdded     = "DOCUMENT_ADDED"
	TypeLivenessSet       = "LIVENESS_SET"
	TypeEmbeddingAppended = "EMBEDDING_APPENDED"
	TypeMatchComputed     = "MATCH_COMPUTED"
	TypeDecisionRecorded  = "DECISION_RECORDED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "SESSION_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewSessionEvent builds a lifecycle event for one session. The session id
// and subject id always travel in the payload so consumers can correlate
// without extra lookups.
func NewSessionEvent(eventType string, sessionId uint, externalUserId string, details map[string]interface{}) Event {
	data := map[string]interface{}{
		"session_id":       sessionId,
		"external_user_id": externalUserId,
	}
	for k, v := range details {
		data[k] = v
	}
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}

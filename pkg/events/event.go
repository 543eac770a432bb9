package events

import "time"

// Well-known event codes emitted by the session and engagement services.
const (
	TypeSessionCompleted      = "SESSION_COMPLETED"
	TypeSessionStale          = "SESSION_STALE"
	TypeEngagementStageChange = "ENGAGEMENT_STAGE_CHANGED"
	TypeConversionAttempt     = "CONVERSION_ATTEMPT"
	TypeActionsExhausted      = "ACTIONS_EXHAUSTED"
	TypeConnectivityChanged   = "CONNECTIVITY_CHANGED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "SESSION_COMPLETED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
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

// New builds a BaseEvent stamped with the current time.
func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}

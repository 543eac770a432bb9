package entity

import (
	"time"

	"github.com/google/uuid"
)

type ActionType string
type ActionPriority string
type ActionStatus string

const (
	ActionTypeSessionUpdate ActionType = "session_update"
	ActionTypeFormSave      ActionType = "form_save"
	ActionTypeFeatureToggle ActionType = "feature_toggle"

	ActionPriorityLow    ActionPriority = "low"
	ActionPriorityNormal ActionPriority = "normal"
	ActionPriorityHigh   ActionPriority = "high"

	ActionStatusPending   ActionStatus = "pending"
	ActionStatusCompleted ActionStatus = "completed"
	ActionStatusExhausted ActionStatus = "exhausted"
)

func IsValidActionType(t ActionType) bool {
	switch t {
	case ActionTypeSessionUpdate, ActionTypeFormSave, ActionTypeFeatureToggle:
		return true
	}
	return false
}

// PriorityRank orders priorities for queue draining: high before normal
// before low. Unknown values drain last.
func PriorityRank(p ActionPriority) int {
	switch p {
	case ActionPriorityHigh:
		return 0
	case ActionPriorityNormal:
		return 1
	case ActionPriorityLow:
		return 2
	}
	return 3
}

// QueuedAction is a durable record of an intended mutation not yet confirmed
// by the backend store. It is persisted before any execution attempt and
// removed only on confirmed success or after exhausting MaxAttempts.
type QueuedAction struct {
	Id        uuid.UUID
	SessionId uuid.UUID
	Type      ActionType
	Payload   map[string]interface{}
	Priority  ActionPriority
	Status    ActionStatus

	Attempts        int
	MaxAttempts     int
	RequiresNetwork bool
	LastError       string

	// RollbackData, when set, describes the compensating action queued after
	// the final failed attempt.
	RollbackData map[string]interface{}

	Timestamp time.Time
	UpdatedAt *time.Time
}

func (a *QueuedAction) Exhausted() bool {
	return a.Attempts >= a.MaxAttempts
}

// Rollback builds the compensating action for an exhausted action. Returns
// nil when no rollback data was attached.
func (a *QueuedAction) Rollback() *QueuedAction {
	if a.RollbackData == nil {
		return nil
	}
	return &QueuedAction{
		Id:              uuid.New(),
		SessionId:       a.SessionId,
		Type:            a.Type,
		Payload:         a.RollbackData,
		Priority:        ActionPriorityHigh,
		Status:          ActionStatusPending,
		MaxAttempts:     1,
		RequiresNetwork: a.RequiresNetwork,
		Timestamp:       time.Now(),
	}
}

package dto

import (
	"time"

	"cv-builder-be/internal/entity"

	"github.com/google/uuid"
)

type QueueActionRequest struct {
	SessionId       uuid.UUID              `json:"session_id" validate:"required"`
	Type            entity.ActionType      `json:"type" validate:"required"`
	Payload         map[string]interface{} `json:"payload" validate:"required"`
	Priority        entity.ActionPriority  `json:"priority"`
	RequiresNetwork bool                   `json:"requires_network"`
	MaxAttempts     int                    `json:"max_attempts"`
	RollbackData    map[string]interface{} `json:"rollback_data,omitempty"`
}

type QueueActionResponse struct {
	Id           uuid.UUID `json:"id"`
	PendingCount int64     `json:"pending_count"`
}

type QueuedActionDTO struct {
	Id              uuid.UUID              `json:"id"`
	SessionId       uuid.UUID              `json:"session_id"`
	Type            entity.ActionType      `json:"type"`
	Payload         map[string]interface{} `json:"payload"`
	Priority        entity.ActionPriority  `json:"priority"`
	Status          entity.ActionStatus    `json:"status"`
	Attempts        int                    `json:"attempts"`
	MaxAttempts     int                    `json:"max_attempts"`
	RequiresNetwork bool                   `json:"requires_network"`
	LastError       string                 `json:"last_error,omitempty"`
	Timestamp       time.Time              `json:"timestamp"`
}

type SyncPendingActionsResponse struct {
	Synced     int   `json:"synced"`
	Failed     int   `json:"failed"`
	RolledBack int   `json:"rolled_back"`
	Remaining  int64 `json:"remaining"`
}

type ClearActionQueueResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	Cleared   bool      `json:"cleared"`
}

// SyncTriggerMessage is the pub/sub payload asking the sync worker to drain
// a session's queue.
type SyncTriggerMessage struct {
	SessionId uuid.UUID `json:"session_id"`
}

type ConnectivityRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
	Online    bool      `json:"online"`
}

type ConnectivityResponse struct {
	SessionId     uuid.UUID `json:"session_id"`
	Online        bool      `json:"online"`
	SyncTriggered bool      `json:"sync_triggered"`
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// SyncStatus is the realtime payload pushed to connected clients whenever
// the offline queue changes shape. Not persisted.
type SyncStatus struct {
	SessionID    uuid.UUID  `json:"session_id"`
	Online       bool       `json:"online"`
	PendingCount int64      `json:"pending_count"`
	Syncing      bool       `json:"syncing"`
	LastSyncAt   *time.Time `json:"last_sync_at,omitempty"`
}

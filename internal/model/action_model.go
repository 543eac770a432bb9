package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// QueuedAction rows are drained in priority-then-timestamp order; the
// composite index backs that scan.
type QueuedAction struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	SessionId uuid.UUID      `gorm:"type:uuid;not null;index:idx_actions_session_ts,priority:1"`
	Type      string         `gorm:"type:varchar(50);not null"`
	Payload   datatypes.JSON `gorm:"type:jsonb"`
	Priority  string         `gorm:"type:varchar(20);not null;default:'normal'"`
	Status    string         `gorm:"type:varchar(20);not null;default:'pending';index"`

	Attempts        int    `gorm:"default:0"`
	MaxAttempts     int    `gorm:"default:3"`
	RequiresNetwork bool   `gorm:"default:true"`
	LastError       string `gorm:"type:text"`

	RollbackData datatypes.JSON `gorm:"type:jsonb"`

	Timestamp time.Time `gorm:"not null;index:idx_actions_session_ts,priority:2"`
	UpdatedAt *time.Time
}

func (QueuedAction) TableName() string {
	return "queued_actions"
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NavigationState is one immutable transition record in a session's history.
type NavigationState struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	SessionId  uuid.UUID      `gorm:"type:uuid;not null;index:idx_nav_session_ts,priority:1"`
	Step       string         `gorm:"type:varchar(50);not null"`
	Substep    string         `gorm:"type:varchar(100)"`
	Parameters datatypes.JSON `gorm:"type:jsonb"`
	URL        string         `gorm:"type:text"`
	Transition string         `gorm:"type:varchar(20);not null;default:'push'"`
	Timestamp  time.Time      `gorm:"not null;index:idx_nav_session_ts,priority:2"`
}

func (NavigationState) TableName() string {
	return "navigation_states"
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// EngagementProfile is the persisted snapshot of a user's behavioral
// counters. It is advisory data: safe to lose, never authoritative.
type EngagementProfile struct {
	Id     uuid.UUID
	UserId uuid.UUID

	VisitCounts       map[string]int
	TimeSpentMs       map[string]int64
	InteractionCounts map[string]int
	SessionDepths     map[string][]int

	DismissalHistory   []DismissalEvent
	ConversionAttempts []ConversionAttempt

	Industry        string
	ExperienceLevel string
	BehaviorPattern string

	CreatedAt time.Time
	UpdatedAt *time.Time
}

type DismissalEvent struct {
	Feature   string    `json:"feature"`
	Reason    string    `json:"reason,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ConversionAttempt struct {
	Feature   string    `json:"feature"`
	Stage     string    `json:"stage"`
	Outcome   string    `json:"outcome"`
	Timestamp time.Time `json:"timestamp"`
}

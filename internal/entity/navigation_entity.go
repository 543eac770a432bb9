package entity

import (
	"time"

	"github.com/google/uuid"
)

type TransitionKind string

const (
	TransitionPush    TransitionKind = "push"
	TransitionBack    TransitionKind = "back"
	TransitionReplace TransitionKind = "replace"
)

// NavigationRecord is a single navigation transition. Records are append-only:
// once written to a session's history they are never mutated.
type NavigationRecord struct {
	Id         uuid.UUID
	SessionId  uuid.UUID
	Step       Step
	Substep    string
	Parameters map[string]string
	URL        string
	Transition TransitionKind
	Timestamp  time.Time
}

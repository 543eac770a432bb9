package entity

import (
	"time"

	"github.com/google/uuid"
)

type Step string
type SessionStatus string

const (
	StepUpload     Step = "upload"
	StepProcessing Step = "processing"
	StepAnalysis   Step = "analysis"
	StepFeatures   Step = "features"
	StepTemplates  Step = "templates"
	StepPreview    Step = "preview"
	StepResults    Step = "results"
	StepKeywords   Step = "keywords" // side-branch, not part of the linear flow
	StepCompleted  Step = "completed"

	SessionStatusInProgress SessionStatus = "in_progress"
	SessionStatusFailed     SessionStatus = "failed"
	SessionStatusCompleted  SessionStatus = "completed"
)

// StepOrder is the canonical linear wizard order. StepKeywords is reachable
// as a branch off analysis and is intentionally absent here.
var StepOrder = []Step{
	StepUpload,
	StepProcessing,
	StepAnalysis,
	StepFeatures,
	StepTemplates,
	StepPreview,
	StepResults,
	StepCompleted,
}

func IsValidStep(s Step) bool {
	if s == StepKeywords {
		return true
	}
	for _, step := range StepOrder {
		if step == s {
			return true
		}
	}
	return false
}

// StepIndex returns the position of a step in the canonical order, or -1 for
// the keywords branch and unknown values.
func StepIndex(s Step) int {
	for i, step := range StepOrder {
		if step == s {
			return i
		}
	}
	return -1
}

// StepProgress tracks per-step completion detail.
type StepProgress struct {
	Completion float64  `json:"completion"` // 0..100
	TimeSpent  int64    `json:"time_spent"` // milliseconds
	Substeps   []string `json:"substeps,omitempty"`
	Blockers   []string `json:"blockers,omitempty"`
}

// Session is the canonical unit of work: one user's in-progress CV-creation
// flow. SessionId is immutable once created; sessions are soft-expired by
// staleness, never hard-deleted.
type Session struct {
	Id     uuid.UUID
	UserId *uuid.UUID
	JobId  *uuid.UUID

	CurrentStep    Step
	CompletedSteps []Step
	SkippedSteps   []Step
	StepProgress   map[Step]*StepProgress

	// Opaque to navigation logic, passed through as-is.
	FormData      map[string]interface{}
	FeatureStates map[string]interface{}
	UIState       map[string]interface{}

	QuickCreate bool
	CanResume   bool
	Status      SessionStatus

	SchemaVersion string
	CreatedAt     time.Time
	LastActiveAt  time.Time
	CompletedAt   *time.Time

	NavigationHistory []*NavigationRecord
}

func (s *Session) IsCompleted(step Step) bool {
	for _, c := range s.CompletedSteps {
		if c == step {
			return true
		}
	}
	return false
}

func (s *Session) MarkCompleted(step Step) {
	if !s.IsCompleted(step) {
		s.CompletedSteps = append(s.CompletedSteps, step)
	}
}

// FurthestCompletedIndex returns the highest canonical index among completed
// steps, or -1 when nothing is completed yet.
func (s *Session) FurthestCompletedIndex() int {
	furthest := -1
	for _, c := range s.CompletedSteps {
		if idx := StepIndex(c); idx > furthest {
			furthest = idx
		}
	}
	return furthest
}

package dto

import (
	"time"

	"cv-builder-be/internal/entity"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	UserId      *uuid.UUID             `json:"user_id"`
	JobId       *uuid.UUID             `json:"job_id"`
	QuickCreate bool                   `json:"quick_create"`
	FormData    map[string]interface{} `json:"form_data"`
}

type CreateSessionResponse struct {
	Id          uuid.UUID   `json:"id"`
	CurrentStep entity.Step `json:"current_step"`
	QuickCreate bool        `json:"quick_create"`
	CreatedAt   time.Time   `json:"created_at"`
}

type StepProgressDTO struct {
	Completion float64  `json:"completion"`
	TimeSpent  int64    `json:"time_spent"`
	Substeps   []string `json:"substeps,omitempty"`
	Blockers   []string `json:"blockers,omitempty"`
}

type UpdateSessionStepRequest struct {
	Id       uuid.UUID
	Step     entity.Step      `json:"step" validate:"required"`
	Progress *StepProgressDTO `json:"progress"`
	// Force bypasses step-order validation for quick-create flows.
	Force bool `json:"force"`
}

type UpdateSessionStepResponse struct {
	Id             uuid.UUID     `json:"id"`
	CurrentStep    entity.Step   `json:"current_step"`
	CompletedSteps []entity.Step `json:"completed_steps"`
	SkippedSteps   []entity.Step `json:"skipped_steps,omitempty"`
}

type UpdateSessionRequest struct {
	Id            uuid.UUID
	FormData      map[string]interface{} `json:"form_data"`
	FeatureStates map[string]interface{} `json:"feature_states"`
	UIState       map[string]interface{} `json:"ui_state"`
}

type UpdateSessionResponse struct {
	Id           uuid.UUID `json:"id"`
	LastActiveAt time.Time `json:"last_active_at"`
}

type SaveNowResponse struct {
	Id      uuid.UUID `json:"id"`
	Saved   bool      `json:"saved"`
	Queued  bool      `json:"queued"`
	SavedAt time.Time `json:"saved_at"`
}

type ShowSessionResponse struct {
	Id             uuid.UUID                        `json:"id"`
	UserId         *uuid.UUID                       `json:"user_id,omitempty"`
	JobId          *uuid.UUID                       `json:"job_id,omitempty"`
	CurrentStep    entity.Step                      `json:"current_step"`
	CompletedSteps []entity.Step                    `json:"completed_steps"`
	SkippedSteps   []entity.Step                    `json:"skipped_steps,omitempty"`
	StepProgress   map[entity.Step]*StepProgressDTO `json:"step_progress"`
	FormData       map[string]interface{}           `json:"form_data,omitempty"`
	FeatureStates  map[string]interface{}           `json:"feature_states,omitempty"`
	UIState        map[string]interface{}           `json:"ui_state,omitempty"`
	QuickCreate    bool                             `json:"quick_create"`
	CanResume      bool                             `json:"can_resume"`
	Status         entity.SessionStatus             `json:"status"`
	SchemaVersion  string                           `json:"schema_version"`
	CreatedAt      time.Time                        `json:"created_at"`
	LastActiveAt   time.Time                        `json:"last_active_at"`
	CompletedAt    *time.Time                       `json:"completed_at,omitempty"`
}

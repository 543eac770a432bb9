package dto

import (
	"time"

	"cv-builder-be/internal/entity"
	"cv-builder-be/pkg/navigation"

	"github.com/google/uuid"
)

type NavigateRequest struct {
	SessionId  uuid.UUID         `json:"session_id" validate:"required"`
	Step       entity.Step       `json:"step" validate:"required"`
	Substep    string            `json:"substep"`
	Parameters map[string]string `json:"parameters,omitempty"`
}

type NavigateResponse struct {
	SessionId uuid.UUID   `json:"session_id"`
	Step      entity.Step `json:"step"`
	URL       string      `json:"url"`
	Debounced bool        `json:"debounced"`
}

type BackNavigationResponse struct {
	SessionId uuid.UUID   `json:"session_id"`
	Step      entity.Step `json:"step"`
	Substep   string      `json:"substep,omitempty"`
	URL       string      `json:"url"`
	// AtRoot is set when history is empty and the session stays on upload.
	AtRoot bool `json:"at_root"`
}

type NavigationHistoryItemDTO struct {
	Step       entity.Step           `json:"step"`
	Substep    string                `json:"substep,omitempty"`
	URL        string                `json:"url"`
	Transition entity.TransitionKind `json:"transition"`
	Timestamp  time.Time             `json:"timestamp"`
}

type NavigationContextResponse struct {
	Context     *navigation.Context     `json:"context"`
	Breadcrumbs []navigation.Breadcrumb `json:"breadcrumbs"`
}

type RestoreStateRequest struct {
	URL string `json:"url" validate:"required"`
}

type RestoreStateResponse struct {
	SessionId uuid.UUID   `json:"session_id"`
	Step      entity.Step `json:"step"`
	Substep   string      `json:"substep,omitempty"`
	Restored  bool        `json:"restored"`
}

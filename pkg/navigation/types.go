package navigation

import (
	"time"

	"cv-builder-be/internal/entity"
)

// BreadcrumbMetadata carries display hints for one breadcrumb.
type BreadcrumbMetadata struct {
	Icon        string `json:"icon,omitempty"`
	Description string `json:"description,omitempty"`
}

// Breadcrumb is the UI-facing representation of one step's navigability.
type Breadcrumb struct {
	Step       entity.Step        `json:"step"`
	Label      string             `json:"label"`
	URL        string             `json:"url"`
	Completed  bool               `json:"completed"`
	Accessible bool               `json:"accessible"`
	Metadata   BreadcrumbMetadata `json:"metadata"`
}

// BlockedPath is a step the session cannot reach yet, with the unmet
// prerequisites spelled out for the UI.
type BlockedPath struct {
	Step     entity.Step `json:"step"`
	URL      string      `json:"url"`
	Warnings []string    `json:"warnings"`
}

// Context is derived on demand from a Session and never persisted
// independently (it may be cached under a short TTL for offline reads).
type Context struct {
	SessionId            string        `json:"session_id"`
	CurrentPath          string        `json:"current_path"`
	AvailablePaths       []entity.Step `json:"available_paths"`
	BlockedPaths         []BlockedPath `json:"blocked_paths"`
	RecommendedNextSteps []entity.Step `json:"recommended_next_steps"`
	CompletionPercentage float64       `json:"completion_percentage"`
	CriticalIssues       []string      `json:"critical_issues"`
	GeneratedAt          time.Time     `json:"generated_at"`
}

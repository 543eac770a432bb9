package dto

import (
	"github.com/google/uuid"
)

type TrackEventRequest struct {
	UserId uuid.UUID `json:"user_id" validate:"required"`
	// Kind is one of: visit, time, interaction, dismissal, conversion_attempt
	Kind    string `json:"kind" validate:"required,oneof=visit time interaction dismissal conversion_attempt"`
	Feature string `json:"feature" validate:"required"`

	// TimeSpentMs applies to kind=time, Depth to kind=visit.
	TimeSpentMs int64 `json:"time_spent_ms"`
	Depth       int   `json:"depth"`

	// Reason applies to kind=dismissal; Stage and Outcome to conversion_attempt.
	Reason  string `json:"reason"`
	Stage   string `json:"stage"`
	Outcome string `json:"outcome"`

	// Optional declared traits, merged into the profile when present.
	Industry        string `json:"industry"`
	ExperienceLevel string `json:"experience_level"`
	Email           string `json:"email"`
}

type TrackEventResponse struct {
	UserId uuid.UUID `json:"user_id"`
	Score  float64   `json:"score"`
	Stage  string    `json:"stage"`
}

type IncentiveDTO struct {
	Id       string  `json:"id"`
	Type     string  `json:"type"`
	Headline string  `json:"headline"`
	Value    float64 `json:"value"`
	Urgent   bool    `json:"urgent"`
}

type EngagementSummaryResponse struct {
	UserId                uuid.UUID     `json:"user_id"`
	Score                 float64       `json:"score"`
	Stage                 string        `json:"stage"`
	BehaviorPattern       string        `json:"behavior_pattern"`
	ConversionProbability float64       `json:"conversion_probability"`
	Incentive             *IncentiveDTO `json:"incentive,omitempty"`
	Headline              string        `json:"headline"`
	Subtext               string        `json:"subtext"`
	CallToAction          string        `json:"call_to_action"`
}

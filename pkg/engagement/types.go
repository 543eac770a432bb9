package engagement

import (
	"time"

	"cv-builder-be/internal/entity"
)

type Stage string

const (
	StageDiscovery     Stage = "discovery"
	StageInterest      Stage = "interest"
	StageConsideration Stage = "consideration"
	StageConversion    Stage = "conversion"
)

type IncentiveType string

const (
	IncentiveDiscount    IncentiveType = "discount"
	IncentiveTrial       IncentiveType = "trial"
	IncentiveBundle      IncentiveType = "bundle"
	IncentiveSocialProof IncentiveType = "social_proof"
	IncentiveScarcity    IncentiveType = "scarcity"
)

// UserProfile holds declared and inferred traits used for personalization.
type UserProfile struct {
	Industry         string    `json:"industry"`
	ExperienceLevel  string    `json:"experience_level"`
	BehaviorPattern  string    `json:"behavior_pattern"` // explorer | focused | returning
	DecisionSpeed    string    `json:"decision_speed"`   // fast | deliberate
	PriceSensitivity string    `json:"price_sensitivity"`
	AccountCreatedAt time.Time `json:"account_created_at"`
	HadPremiumBefore bool      `json:"had_premium_before"`
}

// UserEngagementData carries the behavioral counters accumulated over a
// user's lifetime. It is advisory input to the scoring functions: safe to
// lose, never authoritative.
type UserEngagementData struct {
	VisitCounts        map[string]int             `json:"visit_counts"`
	TimeSpentMs        map[string]int64           `json:"time_spent_ms"`
	InteractionCounts  map[string]int             `json:"interaction_counts"`
	SessionDepths      map[string][]int           `json:"session_depths"`
	DismissalHistory   []entity.DismissalEvent    `json:"dismissal_history"`
	ConversionAttempts []entity.ConversionAttempt `json:"conversion_attempts"`
	Profile            UserProfile                `json:"profile"`
}

func (d *UserEngagementData) TotalVisits() int {
	total := 0
	for _, n := range d.VisitCounts {
		total += n
	}
	return total
}

func (d *UserEngagementData) TotalTimeSpent() time.Duration {
	var total int64
	for _, ms := range d.TimeSpentMs {
		total += ms
	}
	return time.Duration(total) * time.Millisecond
}

func (d *UserEngagementData) TotalInteractions() int {
	total := 0
	for _, n := range d.InteractionCounts {
		total += n
	}
	return total
}

// AverageSessionDepth is the mean over every recorded depth sample.
func (d *UserEngagementData) AverageSessionDepth() float64 {
	sum, count := 0, 0
	for _, depths := range d.SessionDepths {
		for _, depth := range depths {
			sum += depth
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}

// IncentiveConditions gates incentive eligibility. Zero values mean "no
// constraint" except MaxDismissals, where -1 disables the cap.
type IncentiveConditions struct {
	MinEngagementScore float64  `json:"min_engagement_score"`
	MaxDismissals      int      `json:"max_dismissals"`
	RequiredStage      Stage    `json:"required_stage,omitempty"`
	Industries         []string `json:"industries,omitempty"`
	MinTenureDays      int      `json:"min_tenure_days"`
	MaxTenureDays      int      `json:"max_tenure_days"` // 0 = unbounded
	BehaviorPatterns   []string `json:"behavior_patterns,omitempty"`
}

// Incentive is a targeted upsell offer.
type Incentive struct {
	Id         string              `json:"id"`
	Type       IncentiveType       `json:"type"`
	Value      float64             `json:"value"` // e.g. percent off, trial days
	Headline   string              `json:"headline"`
	Urgent     bool                `json:"urgent"`
	Conditions IncentiveConditions `json:"conditions"`
}

// Context bundles the inputs for incentive selection and prediction. Now is
// passed explicitly so every function stays deterministic for a given input.
type Context struct {
	Data    *UserEngagementData
	Stage   Stage
	Score   float64
	Feature string
	Now     time.Time
}

// Message is the personalized upsell copy for one engagement stage.
type Message struct {
	Headline       string   `json:"headline"`
	Description    string   `json:"description"`
	CTAText        string   `json:"cta_text"`
	Benefits       []string `json:"benefits,omitempty"`
	SocialProof    string   `json:"social_proof,omitempty"`
	UrgencyMessage string   `json:"urgency_message,omitempty"`
}

// BehaviorProfile is the derived summary of how a user explores the product.
type BehaviorProfile struct {
	Pattern            string  `json:"pattern"`
	ExplorationBreadth int     `json:"exploration_breadth"`
	ReturnVisits       int     `json:"return_visits"`
	AvgSessionDepth    float64 `json:"avg_session_depth"`
	DecisionSpeed      string  `json:"decision_speed"`
}

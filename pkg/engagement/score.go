package engagement

import "time"

// Component weights for the engagement score. Documented here so the
// behavior stays reproducible:
//
//	visits         2 points each, capped at 25
//	time spent     0.5 points per minute, capped at 25
//	interactions   1.5 points each, capped at 20
//	session depth  3 points per average depth unit, capped at 15
//	conversions    5 points per attempt, capped at 10
//	profile        completeness ratio scaled to 5
//	dismissals     -3 points each, floored at -15
//
// The final score is clamped to [0,100].
const (
	visitPoints       = 2.0
	visitCap          = 25.0
	timePointsPerMin  = 0.5
	timeCap           = 25.0
	interactionPoints = 1.5
	interactionCap    = 20.0
	depthPoints       = 3.0
	depthCap          = 15.0
	attemptPoints     = 5.0
	attemptCap        = 10.0
	profileCap        = 5.0
	dismissalPenalty  = 3.0
	dismissalCap      = 15.0
)

// CalculateEngagementScore folds behavioral counters into a [0,100] score.
// Monotonically non-decreasing in visits, time spent and interactions, and
// non-increasing in dismissals.
func CalculateEngagementScore(data *UserEngagementData) float64 {
	if data == nil {
		return 0
	}

	score := capAt(float64(data.TotalVisits())*visitPoints, visitCap)
	score += capAt(data.TotalTimeSpent().Minutes()*timePointsPerMin, timeCap)
	score += capAt(float64(data.TotalInteractions())*interactionPoints, interactionCap)
	score += capAt(data.AverageSessionDepth()*depthPoints, depthCap)
	score += capAt(float64(len(data.ConversionAttempts))*attemptPoints, attemptCap)
	score += profileCompleteness(data.Profile) * profileCap
	score -= capAt(float64(len(data.DismissalHistory))*dismissalPenalty, dismissalCap)

	return clamp(score, 0, 100)
}

// DetermineEngagementStage evaluates the threshold cascade in order
// conversion -> consideration -> interest -> discovery; the first matching
// threshold wins.
func DetermineEngagementStage(data *UserEngagementData) Stage {
	if data == nil {
		return StageDiscovery
	}

	score := CalculateEngagementScore(data)
	visits := data.TotalVisits()
	totalTime := data.TotalTimeSpent()
	attempts := len(data.ConversionAttempts)

	switch {
	case score >= 70 || attempts >= 2 || (visits >= 8 && totalTime > 10*time.Minute):
		return StageConversion
	case score >= 45 || attempts >= 1 || (visits >= 5 && totalTime > 5*time.Minute):
		return StageConsideration
	case score >= 25 || visits >= 3 || totalTime > 2*time.Minute:
		return StageInterest
	default:
		return StageDiscovery
	}
}

func profileCompleteness(p UserProfile) float64 {
	filled := 0
	fields := []string{p.Industry, p.ExperienceLevel, p.BehaviorPattern, p.DecisionSpeed, p.PriceSensitivity}
	for _, f := range fields {
		if f != "" {
			filled++
		}
	}
	return float64(filled) / float64(len(fields))
}

func capAt(v, cap float64) float64 {
	if v > cap {
		return cap
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

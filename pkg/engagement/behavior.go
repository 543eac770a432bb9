package engagement

import "time"

// stageMultipliers weight the conversion prediction by engagement stage.
var stageMultipliers = map[Stage]float64{
	StageDiscovery:     0.1,
	StageInterest:      0.3,
	StageConsideration: 0.6,
	StageConversion:    0.9,
}

// industryMultipliers nudge prediction for segments with historically
// different upgrade rates. Unknown industries use 1.0.
var industryMultipliers = map[string]float64{
	"technology": 1.15,
	"finance":    1.1,
	"marketing":  1.05,
	"education":  0.9,
}

// AnalyzeUserBehavior derives a coarse behavior profile from raw counters.
func AnalyzeUserBehavior(data *UserEngagementData) BehaviorProfile {
	if data == nil {
		return BehaviorProfile{Pattern: "unknown"}
	}

	breadth := 0
	returnVisits := 0
	for _, visits := range data.VisitCounts {
		if visits > 0 {
			breadth++
		}
		if visits > 1 {
			returnVisits += visits - 1
		}
	}

	avgDepth := data.AverageSessionDepth()

	pattern := "focused"
	switch {
	case breadth >= 4 && avgDepth < 3:
		pattern = "explorer"
	case returnVisits >= 3:
		pattern = "returning"
	}

	speed := data.Profile.DecisionSpeed
	if speed == "" {
		if len(data.ConversionAttempts) > 0 && data.TotalTimeSpent() < 10*time.Minute {
			speed = "fast"
		} else {
			speed = "deliberate"
		}
	}

	return BehaviorProfile{
		Pattern:            pattern,
		ExplorationBreadth: breadth,
		ReturnVisits:       returnVisits,
		AvgSessionDepth:    avgDepth,
		DecisionSpeed:      speed,
	}
}

// PredictConversionProbability combines the readiness score with stage,
// decision-speed, prior-premium and industry multipliers, penalized for
// dismissals within the last 7 days. All factors are multiplicative and the
// result is clamped to [0,100].
func PredictConversionProbability(data *UserEngagementData, ctx Context) float64 {
	if data == nil {
		return 0
	}

	probability := CalculateEngagementScore(data)

	stage := ctx.Stage
	if stage == "" {
		stage = DetermineEngagementStage(data)
	}
	if m, ok := stageMultipliers[stage]; ok {
		probability *= m
	} else {
		probability *= stageMultipliers[StageDiscovery]
	}

	switch data.Profile.DecisionSpeed {
	case "fast":
		probability *= 1.2
	case "deliberate":
		probability *= 0.9
	}

	if data.Profile.HadPremiumBefore {
		probability *= 1.15
	}

	if m, ok := industryMultipliers[data.Profile.Industry]; ok {
		probability *= m
	}

	recent := 0
	cutoff := ctx.Now.Add(-7 * 24 * time.Hour)
	for _, dismissal := range data.DismissalHistory {
		if dismissal.Timestamp.After(cutoff) {
			recent++
		}
	}
	for i := 0; i < recent && i < 3; i++ {
		probability *= 0.75
	}

	return clamp(probability, 0, 100)
}

package engagement

// SelectOptimalIncentive filters candidates by their declared conditions and
// returns the highest-scoring eligible one, or nil when nothing qualifies.
// An ineligible incentive is never returned.
func SelectOptimalIncentive(ctx Context, incentives []Incentive) *Incentive {
	var best *Incentive
	bestScore := -1.0

	for i := range incentives {
		candidate := &incentives[i]
		if !IsEligible(ctx, candidate) {
			continue
		}
		s := scoreIncentive(ctx, candidate)
		if s > bestScore {
			best = candidate
			bestScore = s
		}
	}

	return best
}

// IsEligible checks every declared condition against the context.
func IsEligible(ctx Context, incentive *Incentive) bool {
	if ctx.Data == nil {
		return false
	}
	cond := incentive.Conditions

	if ctx.Score < cond.MinEngagementScore {
		return false
	}
	if cond.MaxDismissals >= 0 && len(ctx.Data.DismissalHistory) > cond.MaxDismissals {
		return false
	}
	if cond.RequiredStage != "" && ctx.Stage != cond.RequiredStage {
		return false
	}
	if len(cond.Industries) > 0 && !contains(cond.Industries, ctx.Data.Profile.Industry) {
		return false
	}
	if len(cond.BehaviorPatterns) > 0 && !contains(cond.BehaviorPatterns, ctx.Data.Profile.BehaviorPattern) {
		return false
	}

	if !ctx.Data.Profile.AccountCreatedAt.IsZero() {
		tenureDays := int(ctx.Now.Sub(ctx.Data.Profile.AccountCreatedAt).Hours() / 24)
		if tenureDays < cond.MinTenureDays {
			return false
		}
		if cond.MaxTenureDays > 0 && tenureDays > cond.MaxTenureDays {
			return false
		}
	}

	return true
}

// scoreIncentive ranks eligible candidates: base offer value, urgency match
// against decision speed, industry relevance, price-sensitivity match, and
// framing bonuses per incentive type.
func scoreIncentive(ctx Context, incentive *Incentive) float64 {
	score := incentive.Value

	profile := ctx.Data.Profile

	if incentive.Urgent && profile.DecisionSpeed == "fast" {
		score += 15
	}
	if !incentive.Urgent && profile.DecisionSpeed == "deliberate" {
		score += 10
	}

	if contains(incentive.Conditions.Industries, profile.Industry) {
		score += 10
	}

	if incentive.Type == IncentiveDiscount && profile.PriceSensitivity == "high" {
		score += 20
	}

	switch incentive.Type {
	case IncentiveSocialProof:
		score += 5
	case IncentiveScarcity:
		if ctx.Stage == StageConversion {
			score += 10
		}
	case IncentiveTrial:
		if !profile.HadPremiumBefore {
			score += 15
		}
	}

	return score
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}

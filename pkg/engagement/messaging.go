package engagement

import "fmt"

// GeneratePersonalizedMessaging builds the upsell copy for a stage. Copy is
// a pure function of stage and context so callers can cache it.
func GeneratePersonalizedMessaging(stage Stage, ctx Context) Message {
	industry := ctx.Data.Profile.Industry
	feature := ctx.Feature
	if feature == "" {
		feature = "premium features"
	}

	switch stage {
	case StageDiscovery:
		return Message{
			Headline:    "See what your CV could look like",
			Description: fmt.Sprintf("Explore %s built for modern job applications.", feature),
			CTAText:     "Explore features",
			Benefits: []string{
				"ATS-optimized formatting",
				"AI-enhanced summaries",
			},
		}
	case StageInterest:
		msg := Message{
			Headline:    "Your CV is almost there",
			Description: fmt.Sprintf("Unlock %s to stand out from other applicants.", feature),
			CTAText:     "See premium plans",
			Benefits: []string{
				"Keyword matching against job postings",
				"Unlimited template switching",
				"Skill visualizations",
			},
		}
		if industry != "" {
			msg.Description = fmt.Sprintf("Unlock %s tailored for %s roles.", feature, industry)
		}
		return msg
	case StageConsideration:
		return Message{
			Headline:    "Recruiters notice enhanced CVs",
			Description: fmt.Sprintf("You have explored %s. Upgrade once and keep every enhancement.", feature),
			CTAText:     "Upgrade now",
			Benefits: []string{
				"All AI enhancements included",
				"Podcast and video profiles",
				"Priority processing",
			},
			SocialProof: "Join 40,000+ job seekers who upgraded this year",
		}
	case StageConversion:
		return Message{
			Headline:       "Finish what you started",
			Description:    "Your enhanced CV is one step away. Lock in your results now.",
			CTAText:        "Complete upgrade",
			SocialProof:    "Rated 4.8/5 by professionals in your field",
			UrgencyMessage: "Your session results are kept for a limited time",
		}
	default:
		return Message{
			Headline:    "Build a better CV",
			Description: "Upload your resume and let AI do the heavy lifting.",
			CTAText:     "Get started",
		}
	}
}

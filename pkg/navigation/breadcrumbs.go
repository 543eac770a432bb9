package navigation

import "cv-builder-be/internal/entity"

// GenerateBreadcrumbs returns one breadcrumb per canonical step up to and
// including the current step, plus any explicitly completed steps beyond it
// (quick-create flows complete steps out of order).
func GenerateBreadcrumbs(session *entity.Session) []Breadcrumb {
	crumbs := make([]Breadcrumb, 0)
	if session == nil {
		return crumbs
	}

	currentIdx := entity.StepIndex(session.CurrentStep)
	if currentIdx < 0 {
		// Keywords branch: render up to its parent, analysis, then the
		// branch itself below.
		currentIdx = entity.StepIndex(entity.StepAnalysis)
	}

	for i, step := range entity.StepOrder {
		if i > currentIdx && !session.IsCompleted(step) {
			continue
		}
		crumbs = append(crumbs, breadcrumbFor(session, step))
	}

	if session.CurrentStep == entity.StepKeywords || session.IsCompleted(entity.StepKeywords) {
		crumbs = append(crumbs, breadcrumbFor(session, entity.StepKeywords))
	}

	return crumbs
}

func breadcrumbFor(session *entity.Session, step entity.Step) Breadcrumb {
	meta := stepMetadata[step]
	return Breadcrumb{
		Step:       step,
		Label:      meta.Label,
		URL:        meta.URL,
		Completed:  session.IsCompleted(step),
		Accessible: IsAccessible(session, step),
		Metadata: BreadcrumbMetadata{
			Icon:        meta.Icon,
			Description: meta.Description,
		},
	}
}

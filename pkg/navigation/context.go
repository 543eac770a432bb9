package navigation

import (
	"fmt"
	"time"

	"cv-builder-be/internal/entity"
	"cv-builder-be/internal/pkg/apperror"
)

// allSteps is the full set considered for reachability, keywords included.
var allSteps = append(append([]entity.Step{}, entity.StepOrder...), entity.StepKeywords)

// BuildContext derives the navigation context from a session. It is a pure
// function of session state; corruption (invalid current step, missing step
// progress) is reported as SESSION_CORRUPTED and never guessed around.
func BuildContext(session *entity.Session) (*Context, error) {
	if session == nil {
		return nil, apperror.SessionNotFound("session is nil")
	}
	if !entity.IsValidStep(session.CurrentStep) {
		return nil, apperror.SessionCorrupted(fmt.Sprintf("unknown current step %q", session.CurrentStep))
	}
	if session.StepProgress == nil {
		return nil, apperror.SessionCorrupted("step progress missing")
	}

	ctx := &Context{
		SessionId:            session.Id.String(),
		CurrentPath:          StepURL(session.CurrentStep),
		AvailablePaths:       make([]entity.Step, 0),
		BlockedPaths:         make([]BlockedPath, 0),
		RecommendedNextSteps: make([]entity.Step, 0),
		CriticalIssues:       make([]string, 0),
		GeneratedAt:          time.Now(),
	}

	for _, step := range allSteps {
		if IsAccessible(session, step) {
			ctx.AvailablePaths = append(ctx.AvailablePaths, step)
		} else {
			ctx.BlockedPaths = append(ctx.BlockedPaths, BlockedPath{
				Step:     step,
				URL:      StepURL(step),
				Warnings: blockedWarnings(session, step),
			})
		}
	}

	for _, step := range allSteps {
		if step == session.CurrentStep || session.IsCompleted(step) {
			continue
		}
		if IsAccessible(session, step) {
			ctx.RecommendedNextSteps = append(ctx.RecommendedNextSteps, step)
		}
	}

	ctx.CompletionPercentage = CompletionPercentage(session)

	for step, progress := range session.StepProgress {
		for _, blocker := range progress.Blockers {
			ctx.CriticalIssues = append(ctx.CriticalIssues, fmt.Sprintf("%s: %s", StepLabel(step), blocker))
		}
	}

	return ctx, nil
}

// FallbackContext is the safe minimal context used when a session turns out
// to be corrupted: it points at the upload step and says why, rather than
// fabricating a mid-flow position.
func FallbackContext(sessionId string, reason string) *Context {
	return &Context{
		SessionId:            sessionId,
		CurrentPath:          StepURL(entity.StepUpload),
		AvailablePaths:       []entity.Step{entity.StepUpload},
		BlockedPaths:         make([]BlockedPath, 0),
		RecommendedNextSteps: []entity.Step{entity.StepUpload},
		CompletionPercentage: 0,
		CriticalIssues:       []string{fmt.Sprintf("Session state was reset: %s", reason)},
		GeneratedAt:          time.Now(),
	}
}

// IsAccessible reports whether a step is reachable: all prerequisites
// completed, or it is the current step, or the session runs in quick-create
// mode.
func IsAccessible(session *entity.Session, step entity.Step) bool {
	if session.QuickCreate {
		return true
	}
	if step == session.CurrentStep {
		return true
	}
	for _, prereq := range Prerequisites(step) {
		if !session.IsCompleted(prereq) {
			return false
		}
	}
	return true
}

func blockedWarnings(session *entity.Session, step entity.Step) []string {
	warnings := make([]string, 0)
	for _, prereq := range Prerequisites(step) {
		if !session.IsCompleted(prereq) {
			warnings = append(warnings, fmt.Sprintf("%s requires completion of %s", StepLabel(step), StepLabel(prereq)))
		}
	}
	return warnings
}

// CompletionPercentage is the share of canonical steps completed.
func CompletionPercentage(session *entity.Session) float64 {
	completed := 0
	for _, step := range entity.StepOrder {
		if session.IsCompleted(step) {
			completed++
		}
	}
	return float64(completed) / float64(len(entity.StepOrder)) * 100
}

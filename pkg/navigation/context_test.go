package navigation

import (
	"testing"
	"time"

	"cv-builder-be/internal/entity"
	"cv-builder-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func testSession(current entity.Step, completed ...entity.Step) *entity.Session {
	return &entity.Session{
		Id:             uuid.New(),
		CurrentStep:    current,
		CompletedSteps: completed,
		StepProgress:   map[entity.Step]*entity.StepProgress{},
		Status:         entity.SessionStatusInProgress,
		CreatedAt:      time.Now(),
		LastActiveAt:   time.Now(),
	}
}

func TestBuildContextReachability(t *testing.T) {
	session := testSession(entity.StepAnalysis, entity.StepUpload, entity.StepProcessing)

	ctx, err := BuildContext(session)
	assert.NoError(t, err)

	available := map[entity.Step]bool{}
	for _, step := range ctx.AvailablePaths {
		available[step] = true
	}

	assert.True(t, available[entity.StepUpload], "completed prerequisite chain")
	assert.True(t, available[entity.StepProcessing])
	assert.True(t, available[entity.StepAnalysis], "current step always reachable")
	assert.False(t, available[entity.StepFeatures], "analysis not completed yet")
	assert.False(t, available[entity.StepResults])

	blocked := map[entity.Step][]string{}
	for _, b := range ctx.BlockedPaths {
		blocked[b.Step] = b.Warnings
	}
	assert.Contains(t, blocked, entity.StepResults)
	assert.NotEmpty(t, blocked[entity.StepResults], "blocked paths carry warnings")
}

func TestBuildContextQuickCreateOpensEverything(t *testing.T) {
	session := testSession(entity.StepUpload)
	session.QuickCreate = true

	ctx, err := BuildContext(session)
	assert.NoError(t, err)
	assert.Empty(t, ctx.BlockedPaths)
	assert.Len(t, ctx.AvailablePaths, len(entity.StepOrder)+1) // + keywords branch
}

func TestBuildContextCorruption(t *testing.T) {
	t.Run("missing step progress", func(t *testing.T) {
		session := testSession(entity.StepFeatures, entity.StepUpload)
		session.StepProgress = nil

		_, err := BuildContext(session)
		assert.Error(t, err)
		assert.Equal(t, apperror.CodeSessionCorrupted, apperror.CodeOf(err))
	})

	t.Run("unknown current step", func(t *testing.T) {
		session := testSession(entity.Step("teleport"))
		_, err := BuildContext(session)
		assert.Equal(t, apperror.CodeSessionCorrupted, apperror.CodeOf(err))
	})

	t.Run("nil session", func(t *testing.T) {
		_, err := BuildContext(nil)
		assert.Equal(t, apperror.CodeSessionNotFound, apperror.CodeOf(err))
	})
}

func TestFallbackContextPointsAtUpload(t *testing.T) {
	ctx := FallbackContext("s1", "step progress missing")
	assert.Equal(t, "/upload", ctx.CurrentPath)
	assert.NotEmpty(t, ctx.CriticalIssues)
	assert.Equal(t, float64(0), ctx.CompletionPercentage)
}

func TestCompletionPercentage(t *testing.T) {
	tests := []struct {
		name      string
		completed []entity.Step
		want      float64
	}{
		{name: "nothing completed", completed: nil, want: 0},
		{name: "half the flow", completed: []entity.Step{entity.StepUpload, entity.StepProcessing, entity.StepAnalysis, entity.StepFeatures}, want: 50},
		{name: "keywords branch does not count toward the linear flow", completed: []entity.Step{entity.StepUpload, entity.StepKeywords}, want: 12.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := testSession(entity.StepUpload, tt.completed...)
			assert.InDelta(t, tt.want, CompletionPercentage(session), 0.01)
		})
	}
}

func TestBuildContextSurfacesBlockers(t *testing.T) {
	session := testSession(entity.StepProcessing, entity.StepUpload)
	session.StepProgress[entity.StepProcessing] = &entity.StepProgress{
		Completion: 40,
		Blockers:   []string{"CV parsing failed, retry upload"},
	}

	ctx, err := BuildContext(session)
	assert.NoError(t, err)
	assert.Len(t, ctx.CriticalIssues, 1)
	assert.Contains(t, ctx.CriticalIssues[0], "CV parsing failed")
}

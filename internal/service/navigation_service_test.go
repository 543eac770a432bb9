package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"cv-builder-be/internal/dto"
	"cv-builder-be/internal/entity"
	"cv-builder-be/internal/pkg/apperror"
	"cv-builder-be/internal/repository/memory"
	"cv-builder-be/pkg/navigation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNavigationServiceForTest(t *testing.T) (INavigationService, *fakeFactory) {
	t.Helper()
	factory := newFakeFactory()
	svc := NewNavigationService(
		factory,
		memory.NewSessionCache(),
		memory.NewNavigationContextCache(time.Minute),
		nopLogger{},
		testSessionConfig(),
	)
	t.Cleanup(svc.Cleanup)
	return svc, factory
}

func seedNavSession(t *testing.T, factory *fakeFactory, quickCreate bool) *entity.Session {
	t.Helper()
	session := &entity.Session{
		Id:           uuid.New(),
		CurrentStep:  entity.StepUpload,
		StepProgress: map[entity.Step]*entity.StepProgress{},
		QuickCreate:  quickCreate,
		CanResume:    true,
		Status:       entity.SessionStatusInProgress,
		CreatedAt:    time.Now(),
		LastActiveAt: time.Now(),
	}
	require.NoError(t, factory.uow.sessions.Create(context.Background(), session))
	return session
}

func TestGetNavigationContextBuildsAndCaches(t *testing.T) {
	svc, factory := newNavigationServiceForTest(t)
	session := seedNavSession(t, factory, false)

	first, err := svc.GetNavigationContext(context.Background(), session.Id)
	require.NoError(t, err)
	require.NotNil(t, first.Context)
	assert.Equal(t, session.Id.String(), first.Context.SessionId)
	assert.Contains(t, first.Context.AvailablePaths, entity.StepUpload)
	assert.NotEmpty(t, first.Breadcrumbs)

	second, err := svc.GetNavigationContext(context.Background(), session.Id)
	require.NoError(t, err)
	assert.Same(t, first.Context, second.Context)
}

func TestGetNavigationContextUnknownSession(t *testing.T) {
	svc, _ := newNavigationServiceForTest(t)

	_, err := svc.GetNavigationContext(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperror.CodeSessionNotFound, apperror.CodeOf(err))
}

func TestGetNavigationContextNetworkErrorAfterRetries(t *testing.T) {
	svc, factory := newNavigationServiceForTest(t)
	factory.uow.sessions.findErr = errors.New("connection refused")

	res, err := svc.GetNavigationContext(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Nil(t, res)
	// A transient store outage must stay distinguishable from corruption:
	// no fallback context, just NETWORK_ERROR once the budget is spent.
	assert.Equal(t, apperror.CodeNetworkError, apperror.CodeOf(err))
	assert.Equal(t, testSessionConfig().BackoffAttempts, factory.uow.sessions.findCalls)
}

func TestGetNavigationContextCacheHitSurvivesOutage(t *testing.T) {
	svc, factory := newNavigationServiceForTest(t)
	session := seedNavSession(t, factory, false)

	first, err := svc.GetNavigationContext(context.Background(), session.Id)
	require.NoError(t, err)

	factory.uow.sessions.findErr = errors.New("connection refused")

	second, err := svc.GetNavigationContext(context.Background(), session.Id)
	require.NoError(t, err)
	assert.Same(t, first.Context, second.Context)
	assert.Equal(t, first.Breadcrumbs, second.Breadcrumbs)
}

func TestGetNavigationContextCorruptedSessionFallsBack(t *testing.T) {
	svc, factory := newNavigationServiceForTest(t)
	session := seedNavSession(t, factory, false)
	factory.uow.sessions.sessions[session.Id].StepProgress = nil

	res, err := svc.GetNavigationContext(context.Background(), session.Id)
	require.NoError(t, err)
	require.NotEmpty(t, res.Context.CriticalIssues)
	assert.Contains(t, res.Context.CriticalIssues[0], "session state corrupted")
	assert.Equal(t, []entity.Step{entity.StepUpload}, res.Context.AvailablePaths)
}

func TestNavigateWithDebounceAppliesLastTarget(t *testing.T) {
	svc, factory := newNavigationServiceForTest(t)
	session := seedNavSession(t, factory, true)

	for _, step := range []entity.Step{entity.StepProcessing, entity.StepAnalysis, entity.StepTemplates} {
		res, err := svc.NavigateWithDebounce(context.Background(), &dto.NavigateRequest{
			SessionId: session.Id,
			Step:      step,
		})
		require.NoError(t, err)
		assert.True(t, res.Debounced)
	}

	require.Eventually(t, func() bool {
		records, _ := factory.uow.navigation.FindAll(context.Background())
		return len(records) == 1
	}, time.Second, 5*time.Millisecond)

	records, err := factory.uow.navigation.FindAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entity.StepTemplates, records[0].Step)
	assert.Equal(t, entity.StepTemplates, factory.uow.sessions.sessions[session.Id].CurrentStep)
}

func TestNavigateWithDebounceRejectsUnreachableStep(t *testing.T) {
	svc, factory := newNavigationServiceForTest(t)
	session := seedNavSession(t, factory, false)

	_, err := svc.NavigateWithDebounce(context.Background(), &dto.NavigateRequest{
		SessionId: session.Id,
		Step:      entity.StepTemplates,
	})
	require.Error(t, err)
	assert.Equal(t, apperror.CodeValidation, apperror.CodeOf(err))
}

func TestHandleBackNavigationAtRoot(t *testing.T) {
	svc, factory := newNavigationServiceForTest(t)
	session := seedNavSession(t, factory, false)

	res, err := svc.HandleBackNavigation(context.Background(), session.Id)
	require.NoError(t, err)
	assert.True(t, res.AtRoot)
	assert.Equal(t, entity.StepUpload, res.Step)
}

func TestHandleBackNavigationStepsBack(t *testing.T) {
	svc, factory := newNavigationServiceForTest(t)
	session := seedNavSession(t, factory, true)

	base := time.Now()
	for i, step := range []entity.Step{entity.StepProcessing, entity.StepTemplates} {
		require.NoError(t, factory.uow.navigation.Create(context.Background(), &entity.NavigationRecord{
			Id:         uuid.New(),
			SessionId:  session.Id,
			Step:       step,
			URL:        navigation.StepURL(step),
			Transition: entity.TransitionPush,
			Timestamp:  base.Add(time.Duration(i) * time.Second),
		}))
	}

	res, err := svc.HandleBackNavigation(context.Background(), session.Id)
	require.NoError(t, err)
	assert.False(t, res.AtRoot)
	assert.Equal(t, entity.StepProcessing, res.Step)

	records, err := factory.uow.navigation.FindAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, entity.StepProcessing, factory.uow.sessions.sessions[session.Id].CurrentStep)
}

func TestPushStateToHistoryEncodesURL(t *testing.T) {
	svc, factory := newNavigationServiceForTest(t)
	session := seedNavSession(t, factory, true)

	res, err := svc.PushStateToHistory(context.Background(), &dto.NavigateRequest{
		SessionId: session.Id,
		Step:      entity.StepPreview,
		Substep:   "fonts",
	})
	require.NoError(t, err)
	assert.Contains(t, res.URL, "step=preview")
	assert.Contains(t, res.URL, "substep=fonts")

	records, err := factory.uow.navigation.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "fonts", records[0].Substep)
}

func TestRestoreFromURL(t *testing.T) {
	svc, factory := newNavigationServiceForTest(t)
	session := seedNavSession(t, factory, true)

	encoded := navigation.EncodeState(&entity.NavigationRecord{
		SessionId: session.Id,
		Step:      entity.StepAnalysis,
		Substep:   "skills",
	})

	res, err := svc.RestoreFromURL(context.Background(), &dto.RestoreStateRequest{URL: encoded})
	require.NoError(t, err)
	assert.True(t, res.Restored)
	assert.Equal(t, entity.StepAnalysis, res.Step)
	assert.Equal(t, "skills", res.Substep)
	assert.Equal(t, entity.StepAnalysis, factory.uow.sessions.sessions[session.Id].CurrentStep)
}

func TestRestoreFromURLRejectsBadSessionId(t *testing.T) {
	svc, _ := newNavigationServiceForTest(t)

	_, err := svc.RestoreFromURL(context.Background(), &dto.RestoreStateRequest{
		URL: "session=not-a-uuid&step=upload",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.CodeInvalidSessionId, apperror.CodeOf(err))
}

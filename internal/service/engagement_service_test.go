package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"cv-builder-be/internal/dto"
	"cv-builder-be/internal/entity"
	"cv-builder-be/pkg/engagement"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	mu        sync.Mutex
	offers    []string
	headlines []string
}

func (m *fakeMailer) SendIncentiveOffer(toEmail, headline, callToAction string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.offers = append(m.offers, toEmail)
	m.headlines = append(m.headlines, headline)
	return nil
}

func (m *fakeMailer) SendSessionRecoveryLink(toEmail, sessionId string) error {
	return nil
}

func newEngagementServiceForTest(t *testing.T) (IEngagementService, *fakeFactory, *fakeMailer) {
	t.Helper()
	factory := newFakeFactory()
	mail := &fakeMailer{}
	svc := NewEngagementService(factory, nil, mail, nopLogger{})
	return svc, factory, mail
}

func TestTrackEventVisitCreatesProfile(t *testing.T) {
	svc, factory, _ := newEngagementServiceForTest(t)
	userId := uuid.New()

	res, err := svc.TrackEvent(context.Background(), &dto.TrackEventRequest{
		UserId:  userId,
		Kind:    "visit",
		Feature: "templates",
		Depth:   3,
	})
	require.NoError(t, err)
	assert.Equal(t, string(engagement.StageDiscovery), res.Stage)
	assert.Greater(t, res.Score, 0.0)

	profile := factory.uow.engagement.profiles[userId]
	require.NotNil(t, profile)
	assert.Equal(t, 1, profile.VisitCounts["templates"])
	assert.Equal(t, []int{3}, profile.SessionDepths["templates"])
}

func TestTrackEventRepeatVisitsAdvanceStage(t *testing.T) {
	svc, _, _ := newEngagementServiceForTest(t)
	userId := uuid.New()

	var res *dto.TrackEventResponse
	var err error
	for i := 0; i < 3; i++ {
		res, err = svc.TrackEvent(context.Background(), &dto.TrackEventRequest{
			UserId:  userId,
			Kind:    "visit",
			Feature: "keywords",
		})
		require.NoError(t, err)
	}
	assert.Equal(t, string(engagement.StageInterest), res.Stage)
}

func TestTrackEventDismissalLowersScore(t *testing.T) {
	svc, _, _ := newEngagementServiceForTest(t)
	userId := uuid.New()

	visited, err := svc.TrackEvent(context.Background(), &dto.TrackEventRequest{
		UserId:  userId,
		Kind:    "visit",
		Feature: "templates",
	})
	require.NoError(t, err)

	dismissed, err := svc.TrackEvent(context.Background(), &dto.TrackEventRequest{
		UserId:  userId,
		Kind:    "dismissal",
		Feature: "upsell-banner",
		Reason:  "not_now",
	})
	require.NoError(t, err)
	assert.Less(t, dismissed.Score, visited.Score)
}

func TestTrackEventMergesProfileTraits(t *testing.T) {
	svc, factory, _ := newEngagementServiceForTest(t)
	userId := uuid.New()

	_, err := svc.TrackEvent(context.Background(), &dto.TrackEventRequest{
		UserId:          userId,
		Kind:            "visit",
		Feature:         "templates",
		Industry:        "tech",
		ExperienceLevel: "senior",
	})
	require.NoError(t, err)

	profile := factory.uow.engagement.profiles[userId]
	assert.Equal(t, "tech", profile.Industry)
	assert.Equal(t, "senior", profile.ExperienceLevel)
}

func TestTrackEventConversionStageSendsIncentiveEmail(t *testing.T) {
	svc, factory, mail := newEngagementServiceForTest(t)
	userId := uuid.New()

	seed := &entity.EngagementProfile{
		Id:     uuid.New(),
		UserId: userId,
		VisitCounts: map[string]int{
			"templates": 3,
			"keywords":  2,
		},
		TimeSpentMs:       map[string]int64{"templates": int64(3 * time.Minute / time.Millisecond)},
		InteractionCounts: map[string]int{"templates": 4},
		SessionDepths:     map[string][]int{},
		ConversionAttempts: []entity.ConversionAttempt{
			{Feature: "premium", Stage: "consideration", Outcome: "abandoned", Timestamp: time.Now()},
		},
		CreatedAt: time.Now().Add(-48 * time.Hour),
	}
	require.NoError(t, factory.uow.engagement.Upsert(context.Background(), seed))

	res, err := svc.TrackEvent(context.Background(), &dto.TrackEventRequest{
		UserId:  userId,
		Kind:    "conversion_attempt",
		Feature: "premium",
		Stage:   "conversion",
		Outcome: "started",
		Email:   "ada@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, string(engagement.StageConversion), res.Stage)

	require.Len(t, mail.offers, 1)
	assert.Equal(t, "ada@example.com", mail.offers[0])
	assert.NotEmpty(t, mail.headlines[0])
}

func TestSummaryBlankSlate(t *testing.T) {
	svc, _, _ := newEngagementServiceForTest(t)

	res, err := svc.Summary(context.Background(), uuid.New(), "templates")
	require.NoError(t, err)
	assert.Equal(t, string(engagement.StageDiscovery), res.Stage)
	assert.Zero(t, res.Score)
	assert.Nil(t, res.Incentive)
}

func TestSummaryWithHistory(t *testing.T) {
	svc, factory, _ := newEngagementServiceForTest(t)
	userId := uuid.New()

	seed := &entity.EngagementProfile{
		Id:          uuid.New(),
		UserId:      userId,
		VisitCounts: map[string]int{"templates": 5},
		TimeSpentMs: map[string]int64{},
		InteractionCounts: map[string]int{
			"templates": 2,
		},
		SessionDepths: map[string][]int{},
		ConversionAttempts: []entity.ConversionAttempt{
			{Feature: "premium", Stage: "consideration", Outcome: "abandoned", Timestamp: time.Now()},
		},
		Industry:        "finance",
		ExperienceLevel: "mid",
		CreatedAt:       time.Now().Add(-72 * time.Hour),
	}
	require.NoError(t, factory.uow.engagement.Upsert(context.Background(), seed))

	res, err := svc.Summary(context.Background(), userId, "templates")
	require.NoError(t, err)
	assert.Equal(t, string(engagement.StageConsideration), res.Stage)
	assert.Greater(t, res.Score, 0.0)
	assert.GreaterOrEqual(t, res.ConversionProbability, 0.0)
	assert.LessOrEqual(t, res.ConversionProbability, 100.0)
	assert.NotEmpty(t, res.Headline)
	assert.NotEmpty(t, res.CallToAction)
	require.NotNil(t, res.Incentive)
	assert.Equal(t, "social-proof-nudge", res.Incentive.Id)
}

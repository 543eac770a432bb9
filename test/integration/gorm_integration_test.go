package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"cv-builder-be/internal/entity"
	"cv-builder-be/internal/repository/specification"
	"cv-builder-be/internal/repository/unitofwork"
	"cv-builder-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.SessionRepository())
	assert.NotNil(t, uow.ActionRepository())
	assert.NotNil(t, uow.NavigationStateRepository())
	assert.NotNil(t, uow.EngagementRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check Session Round Trip", func(t *testing.T) {
		ctx := context.Background()
		session := &entity.Session{
			Id:          uuid.New(),
			CurrentStep: entity.StepUpload,
			StepProgress: map[entity.Step]*entity.StepProgress{
				entity.StepUpload: {Completion: 50},
			},
			FormData:      map[string]interface{}{"name": "Integration Test"},
			CanResume:     true,
			Status:        entity.SessionStatusInProgress,
			SchemaVersion: "1",
			CreatedAt:     time.Now(),
			LastActiveAt:  time.Now(),
		}
		require.NoError(t, uow.SessionRepository().Create(ctx, session))

		found, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: session.Id})
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, entity.StepUpload, found.CurrentStep)
		assert.Equal(t, "Integration Test", found.FormData["name"])
	})

	t.Run("Check Action Drain Order", func(t *testing.T) {
		ctx := context.Background()
		sessionId := uuid.New()
		base := time.Now()

		for i, priority := range []entity.ActionPriority{entity.ActionPriorityLow, entity.ActionPriorityHigh, entity.ActionPriorityNormal} {
			action := &entity.QueuedAction{
				Id:          uuid.New(),
				SessionId:   sessionId,
				Type:        entity.ActionTypeFormSave,
				Payload:     map[string]interface{}{"n": i},
				Priority:    priority,
				Status:      entity.ActionStatusPending,
				MaxAttempts: 3,
				Timestamp:   base.Add(time.Duration(i) * time.Second),
			}
			require.NoError(t, uow.ActionRepository().Create(ctx, action))
		}

		actions, err := uow.ActionRepository().FindAll(ctx,
			specification.BySessionID{SessionID: sessionId},
			specification.PendingOnly{},
			specification.DrainOrder{},
		)
		require.NoError(t, err)
		require.Len(t, actions, 3)
		assert.Equal(t, entity.ActionPriorityHigh, actions[0].Priority)
		assert.Equal(t, entity.ActionPriorityNormal, actions[1].Priority)
		assert.Equal(t, entity.ActionPriorityLow, actions[2].Priority)

		require.NoError(t, uow.ActionRepository().DeleteAllBySessionId(ctx, sessionId))
	})

	t.Run("Check Navigation History Order", func(t *testing.T) {
		ctx := context.Background()
		sessionId := uuid.New()
		base := time.Now()

		for i, step := range []entity.Step{entity.StepUpload, entity.StepProcessing} {
			record := &entity.NavigationRecord{
				Id:         uuid.New(),
				SessionId:  sessionId,
				Step:       step,
				Transition: entity.TransitionPush,
				Timestamp:  base.Add(time.Duration(i) * time.Second),
			}
			require.NoError(t, uow.NavigationStateRepository().Create(ctx, record))
		}

		history, err := uow.NavigationStateRepository().FindAll(ctx,
			specification.BySessionID{SessionID: sessionId},
			specification.OrderBy{Field: "timestamp", Desc: true},
			specification.Pagination{Limit: 2},
		)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, entity.StepProcessing, history[0].Step)
	})

	t.Run("Check Engagement Upsert", func(t *testing.T) {
		ctx := context.Background()
		userId := uuid.New()

		profile := &entity.EngagementProfile{
			Id:          uuid.New(),
			UserId:      userId,
			VisitCounts: map[string]int{"templates": 1},
			CreatedAt:   time.Now(),
		}
		require.NoError(t, uow.EngagementRepository().Upsert(ctx, profile))

		profile.VisitCounts["templates"] = 2
		require.NoError(t, uow.EngagementRepository().Upsert(ctx, profile))

		found, err := uow.EngagementRepository().FindByUserId(ctx, userId)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, 2, found.VisitCounts["templates"])
	})
}

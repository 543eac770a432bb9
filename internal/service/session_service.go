package service

import (
	"context"
	"time"

	"cv-builder-be/internal/config"
	"cv-builder-be/internal/dto"
	"cv-builder-be/internal/entity"
	"cv-builder-be/internal/pkg/apperror"
	"cv-builder-be/internal/pkg/logger"
	"cv-builder-be/internal/repository/memory"
	"cv-builder-be/internal/repository/specification"
	"cv-builder-be/internal/repository/unitofwork"
	"cv-builder-be/pkg/events"
	pktNats "cv-builder-be/pkg/nats"
	"cv-builder-be/pkg/navigation"

	"github.com/google/uuid"
)

const schemaVersion = "1"

type ISessionService interface {
	Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowSessionResponse, error)
	UpdateStep(ctx context.Context, req *dto.UpdateSessionStepRequest) (*dto.UpdateSessionStepResponse, error)
	Update(ctx context.Context, req *dto.UpdateSessionRequest) (*dto.UpdateSessionResponse, error)
	SaveNow(ctx context.Context, id uuid.UUID) (*dto.SaveNowResponse, error)
	StartAutoSave(ctx context.Context)
	SweepStale(ctx context.Context) (int64, error)
}

type sessionService struct {
	uowFactory      unitofwork.RepositoryFactory
	sessionCache    *memory.SessionCache
	navContextCache *memory.NavigationContextCache
	queueService    IQueueService
	natsPublisher   *pktNats.Publisher
	logger          logger.ILogger
	cfg             config.SessionConfig
}

func NewSessionService(
	uowFactory unitofwork.RepositoryFactory,
	sessionCache *memory.SessionCache,
	navContextCache *memory.NavigationContextCache,
	queueService IQueueService,
	natsPublisher *pktNats.Publisher,
	log logger.ILogger,
	cfg config.SessionConfig,
) ISessionService {
	return &sessionService{
		uowFactory:      uowFactory,
		sessionCache:    sessionCache,
		navContextCache: navContextCache,
		queueService:    queueService,
		natsPublisher:   natsPublisher,
		logger:          log,
		cfg:             cfg,
	}
}

func (s *sessionService) Create(ctx context.Context, req *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	now := time.Now()
	session := entity.Session{
		Id:             uuid.New(),
		UserId:         req.UserId,
		JobId:          req.JobId,
		CurrentStep:    entity.StepUpload,
		CompletedSteps: make([]entity.Step, 0),
		StepProgress:   make(map[entity.Step]*entity.StepProgress),
		FormData:       req.FormData,
		QuickCreate:    req.QuickCreate,
		CanResume:      true,
		Status:         entity.SessionStatusInProgress,
		SchemaVersion:  schemaVersion,
		CreatedAt:      now,
		LastActiveAt:   now,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}
	s.sessionCache.Save(&session)

	return &dto.CreateSessionResponse{
		Id:          session.Id,
		CurrentStep: session.CurrentStep,
		QuickCreate: session.QuickCreate,
		CreatedAt:   session.CreatedAt,
	}, nil
}

func (s *sessionService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowSessionResponse, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	progress := make(map[entity.Step]*dto.StepProgressDTO, len(session.StepProgress))
	for step, p := range session.StepProgress {
		progress[step] = &dto.StepProgressDTO{
			Completion: p.Completion,
			TimeSpent:  p.TimeSpent,
			Substeps:   p.Substeps,
			Blockers:   p.Blockers,
		}
	}

	return &dto.ShowSessionResponse{
		Id:             session.Id,
		UserId:         session.UserId,
		JobId:          session.JobId,
		CurrentStep:    session.CurrentStep,
		CompletedSteps: session.CompletedSteps,
		SkippedSteps:   session.SkippedSteps,
		StepProgress:   progress,
		FormData:       session.FormData,
		FeatureStates:  session.FeatureStates,
		UIState:        session.UIState,
		QuickCreate:    session.QuickCreate,
		CanResume:      session.CanResume,
		Status:         session.Status,
		SchemaVersion:  session.SchemaVersion,
		CreatedAt:      session.CreatedAt,
		LastActiveAt:   session.LastActiveAt,
		CompletedAt:    session.CompletedAt,
	}, nil
}

func (s *sessionService) UpdateStep(ctx context.Context, req *dto.UpdateSessionStepRequest) (*dto.UpdateSessionStepResponse, error) {
	if !entity.IsValidStep(req.Step) {
		return nil, apperror.Validation("unknown step: " + string(req.Step))
	}

	session, err := s.load(ctx, req.Id)
	if err != nil {
		return nil, err
	}

	if req.Progress != nil {
		if session.StepProgress == nil {
			session.StepProgress = make(map[entity.Step]*entity.StepProgress)
		}
		session.StepProgress[req.Step] = &entity.StepProgress{
			Completion: req.Progress.Completion,
			TimeSpent:  req.Progress.TimeSpent,
			Substeps:   req.Progress.Substeps,
			Blockers:   req.Progress.Blockers,
		}
		if req.Progress.Completion >= 100 {
			session.MarkCompleted(req.Step)
		}
	}

	if req.Step != session.CurrentStep {
		if err := s.validateTransition(session, req.Step, req.Force); err != nil {
			return nil, err
		}
		s.recordSkips(session, req.Step)

		// Advancing one step forward implies the step behind is done.
		currentIdx := entity.StepIndex(session.CurrentStep)
		targetIdx := entity.StepIndex(req.Step)
		if currentIdx >= 0 && targetIdx == currentIdx+1 {
			session.MarkCompleted(session.CurrentStep)
		}

		record := entity.NavigationRecord{
			Id:         uuid.New(),
			SessionId:  session.Id,
			Step:       req.Step,
			URL:        navigation.StepURL(req.Step),
			Transition: entity.TransitionPush,
			Timestamp:  time.Now(),
		}
		uow := s.uowFactory.NewUnitOfWork(ctx)
		if err := uow.NavigationStateRepository().Create(ctx, &record); err != nil {
			return nil, err
		}
		session.NavigationHistory = append(session.NavigationHistory, &record)
		session.CurrentStep = req.Step
	}

	if req.Step == entity.StepCompleted && session.Status != entity.SessionStatusCompleted {
		session.MarkCompleted(entity.StepCompleted)
		session.Status = entity.SessionStatusCompleted
		now := time.Now()
		session.CompletedAt = &now
		s.publishCompleted(ctx, session)
	}

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}

	return &dto.UpdateSessionStepResponse{
		Id:             session.Id,
		CurrentStep:    session.CurrentStep,
		CompletedSteps: session.CompletedSteps,
		SkippedSteps:   session.SkippedSteps,
	}, nil
}

func (s *sessionService) Update(ctx context.Context, req *dto.UpdateSessionRequest) (*dto.UpdateSessionResponse, error) {
	session, err := s.load(ctx, req.Id)
	if err != nil {
		return nil, err
	}

	if req.FormData != nil {
		session.FormData = mergeMap(session.FormData, req.FormData)
	}
	if req.FeatureStates != nil {
		session.FeatureStates = mergeMap(session.FeatureStates, req.FeatureStates)
	}
	if req.UIState != nil {
		session.UIState = mergeMap(session.UIState, req.UIState)
	}

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}

	return &dto.UpdateSessionResponse{
		Id:           session.Id,
		LastActiveAt: session.LastActiveAt,
	}, nil
}

// SaveNow flushes the session to the store immediately. When the write
// fails the state is queued instead of lost.
func (s *sessionService) SaveNow(ctx context.Context, id uuid.UUID) (*dto.SaveNowResponse, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	saveCtx, cancel := context.WithTimeout(ctx, s.cfg.SaveNowTimeout)
	defer cancel()

	now := time.Now()
	if err := s.saveSession(saveCtx, session); err != nil {
		s.logger.Warn("SessionService", "immediate save failed, queueing", map[string]interface{}{
			"session_id": id,
			"error":      err.Error(),
		})
		_, qErr := s.queueService.QueueAction(ctx, &dto.QueueActionRequest{
			SessionId:       id,
			Type:            entity.ActionTypeSessionUpdate,
			Payload:         snapshotPayload(session),
			Priority:        entity.ActionPriorityHigh,
			RequiresNetwork: true,
		})
		if qErr != nil {
			return nil, qErr
		}
		return &dto.SaveNowResponse{Id: id, Saved: false, Queued: true, SavedAt: now}, nil
	}

	return &dto.SaveNowResponse{Id: id, Saved: true, Queued: false, SavedAt: now}, nil
}

// StartAutoSave flushes cached sessions on a fixed interval until the
// context is cancelled.
func (s *sessionService) StartAutoSave(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.cfg.AutoSaveInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.flushCached(ctx)
			}
		}
	}()
}

func (s *sessionService) flushCached(ctx context.Context) {
	for _, session := range s.sessionCache.Items() {
		if err := s.saveSession(ctx, session); err != nil {
			s.logger.Warn("SessionService", "auto-save failed, queueing", map[string]interface{}{
				"session_id": session.Id,
				"error":      err.Error(),
			})
			if _, qErr := s.queueService.QueueAction(ctx, &dto.QueueActionRequest{
				SessionId:       session.Id,
				Type:            entity.ActionTypeSessionUpdate,
				Payload:         snapshotPayload(session),
				Priority:        entity.ActionPriorityNormal,
				RequiresNetwork: true,
			}); qErr != nil {
				s.logger.Error("SessionService", "failed to queue auto-save fallback", map[string]interface{}{
					"session_id": session.Id,
					"error":      qErr.Error(),
				})
			}
		}
	}
}

// SweepStale revokes resumability for sessions idle past the configured
// window. Sessions are never hard-deleted.
func (s *sessionService) SweepStale(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-s.cfg.StaleAfter)
	uow := s.uowFactory.NewUnitOfWork(ctx)
	affected, err := uow.SessionRepository().MarkStale(ctx,
		specification.StaleBefore{Cutoff: cutoff},
		specification.ResumableOnly{},
	)
	if err != nil {
		return 0, err
	}
	if affected > 0 {
		s.logger.Info("SessionService", "stale sessions swept", map[string]interface{}{
			"count":  affected,
			"cutoff": cutoff,
		})
		if s.natsPublisher != nil {
			event := events.New(events.TypeSessionStale, map[string]interface{}{
				"count":  affected,
				"cutoff": cutoff.Format(time.RFC3339),
			})
			if err := s.natsPublisher.Publish(ctx, event); err != nil {
				s.logger.Warn("SessionService", "failed to publish stale sweep event", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}
	return affected, nil
}

func (s *sessionService) publishCompleted(ctx context.Context, session *entity.Session) {
	if s.natsPublisher == nil {
		return
	}
	data := map[string]interface{}{
		"session_id":   session.Id.String(),
		"quick_create": session.QuickCreate,
	}
	if session.UserId != nil {
		data["user_id"] = session.UserId.String()
	}
	if err := s.natsPublisher.Publish(ctx, events.New(events.TypeSessionCompleted, data)); err != nil {
		s.logger.Warn("SessionService", "failed to publish completion event", map[string]interface{}{
			"session_id": session.Id,
			"error":      err.Error(),
		})
	}
}

func (s *sessionService) load(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	if cached, found := s.sessionCache.Get(id.String()); found {
		return cached, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.SessionNotFound(id.String())
	}
	s.sessionCache.Save(session)
	return session, nil
}

func (s *sessionService) saveSession(ctx context.Context, session *entity.Session) error {
	session.LastActiveAt = time.Now()
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SessionRepository().Update(ctx, session); err != nil {
		return err
	}
	s.sessionCache.Save(session)
	s.navContextCache.Invalidate(session.Id.String())
	return nil
}

// validateTransition enforces the step order. Backward moves are always
// allowed; forward moves require the step behind the target to be done
// unless the session is quick-create or the caller forces the jump.
func (s *sessionService) validateTransition(session *entity.Session, target entity.Step, force bool) error {
	if session.QuickCreate || force {
		return nil
	}

	if target == entity.StepKeywords {
		if !session.IsCompleted(entity.StepAnalysis) {
			return apperror.Validation("keywords requires completion of analysis")
		}
		return nil
	}

	targetIdx := entity.StepIndex(target)
	currentIdx := entity.StepIndex(session.CurrentStep)
	// Adjacent forward moves complete the step behind implicitly.
	if targetIdx <= currentIdx+1 {
		return nil
	}
	if targetIdx > session.FurthestCompletedIndex()+1 {
		return apperror.Validation("cannot jump ahead to " + string(target))
	}
	return nil
}

// recordSkips tracks the canonical steps a quick-create jump leapt over.
// Skips live apart from completions so a later revisit still works.
func (s *sessionService) recordSkips(session *entity.Session, target entity.Step) {
	if !session.QuickCreate {
		return
	}
	targetIdx := entity.StepIndex(target)
	if targetIdx < 0 {
		return
	}
	for i := 0; i < targetIdx; i++ {
		step := entity.StepOrder[i]
		if session.IsCompleted(step) || containsStep(session.SkippedSteps, step) {
			continue
		}
		session.SkippedSteps = append(session.SkippedSteps, step)
	}
}

func containsStep(steps []entity.Step, step entity.Step) bool {
	for _, s := range steps {
		if s == step {
			return true
		}
	}
	return false
}

func snapshotPayload(session *entity.Session) map[string]interface{} {
	payload := map[string]interface{}{
		"current_step": string(session.CurrentStep),
	}
	for k, v := range session.UIState {
		payload[k] = v
	}
	return payload
}

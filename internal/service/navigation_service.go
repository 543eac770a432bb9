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
	"cv-builder-be/pkg/navigation"

	"github.com/google/uuid"
)

type INavigationService interface {
	GetNavigationContext(ctx context.Context, sessionId uuid.UUID) (*dto.NavigationContextResponse, error)
	NavigateWithDebounce(ctx context.Context, req *dto.NavigateRequest) (*dto.NavigateResponse, error)
	HandleBackNavigation(ctx context.Context, sessionId uuid.UUID) (*dto.BackNavigationResponse, error)
	PushStateToHistory(ctx context.Context, req *dto.NavigateRequest) (*dto.NavigateResponse, error)
	RestoreFromURL(ctx context.Context, req *dto.RestoreStateRequest) (*dto.RestoreStateResponse, error)
	Cleanup()
}

type navigationService struct {
	uowFactory      unitofwork.RepositoryFactory
	sessionCache    *memory.SessionCache
	navContextCache *memory.NavigationContextCache
	debouncer       *navigation.Debouncer
	backoff         navigation.BackoffConfig
	logger          logger.ILogger
}

func NewNavigationService(
	uowFactory unitofwork.RepositoryFactory,
	sessionCache *memory.SessionCache,
	navContextCache *memory.NavigationContextCache,
	log logger.ILogger,
	cfg config.SessionConfig,
) INavigationService {
	s := &navigationService{
		uowFactory:      uowFactory,
		sessionCache:    sessionCache,
		navContextCache: navContextCache,
		backoff: navigation.BackoffConfig{
			BaseDelay:   cfg.BackoffBaseDelay,
			MaxDelay:    cfg.BackoffMaxDelay,
			MaxAttempts: cfg.BackoffAttempts,
		},
		logger: log,
	}
	s.debouncer = navigation.NewDebouncer(cfg.DebounceWindow, s.fireNavigation)
	return s
}

// GetNavigationContext computes what the session can reach right now.
// Cached snapshots are served without touching the store, so recent reads
// survive an outage. Transient store failures are retried with backoff and
// surface as NETWORK_ERROR once the budget is spent; only a corrupted
// session degrades to the fallback pointing at upload.
func (s *navigationService) GetNavigationContext(ctx context.Context, sessionId uuid.UUID) (*dto.NavigationContextResponse, error) {
	if snap, found := s.navContextCache.Get(sessionId.String()); found {
		return &dto.NavigationContextResponse{
			Context:     snap.Context,
			Breadcrumbs: snap.Breadcrumbs,
		}, nil
	}

	var session *entity.Session
	err := navigation.RetryWithExponentialBackoff(ctx, s.backoff, func() error {
		var findErr error
		uow := s.uowFactory.NewUnitOfWork(ctx)
		session, findErr = uow.SessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
		return findErr
	})
	if err != nil {
		if apperror.Is(err, apperror.CodeSessionCorrupted) {
			return s.fallbackResponse(sessionId, "session state corrupted"), nil
		}
		s.logger.Warn("NavigationService", "session fetch failed after retries", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
		return nil, err
	}
	if session == nil {
		return nil, apperror.SessionNotFound(sessionId.String())
	}

	navContext, err := navigation.BuildContext(session)
	if err != nil {
		if apperror.Is(err, apperror.CodeSessionCorrupted) {
			return s.fallbackResponse(sessionId, "session state corrupted"), nil
		}
		return nil, err
	}

	snap := &memory.NavigationSnapshot{
		Context:     navContext,
		Breadcrumbs: navigation.GenerateBreadcrumbs(session),
	}
	s.navContextCache.Save(sessionId.String(), snap)

	return &dto.NavigationContextResponse{
		Context:     snap.Context,
		Breadcrumbs: snap.Breadcrumbs,
	}, nil
}

func (s *navigationService) fallbackResponse(sessionId uuid.UUID, reason string) *dto.NavigationContextResponse {
	s.logger.Warn("NavigationService", "serving fallback context", map[string]interface{}{
		"session_id": sessionId,
		"reason":     reason,
	})
	return &dto.NavigationContextResponse{
		Context:     navigation.FallbackContext(sessionId.String(), reason),
		Breadcrumbs: []navigation.Breadcrumb{},
	}
}

// NavigateWithDebounce coalesces rapid navigation calls per session; only
// the last target within the window is applied.
func (s *navigationService) NavigateWithDebounce(ctx context.Context, req *dto.NavigateRequest) (*dto.NavigateResponse, error) {
	session, err := s.loadSession(ctx, req.SessionId)
	if err != nil {
		return nil, err
	}
	if !entity.IsValidStep(req.Step) {
		return nil, apperror.Validation("unknown step: " + string(req.Step))
	}
	if !navigation.IsAccessible(session, req.Step) {
		return nil, apperror.Validation("step not reachable: " + string(req.Step))
	}

	url := navigation.StepURL(req.Step)
	s.debouncer.Navigate(req.SessionId.String(), req.Step, url)

	return &dto.NavigateResponse{
		SessionId: req.SessionId,
		Step:      req.Step,
		URL:       url,
		Debounced: true,
	}, nil
}

// fireNavigation is the debouncer callback applying the settled target.
func (s *navigationService) fireNavigation(sessionId string, step entity.Step, url string) {
	ctx := context.Background()
	id, err := uuid.Parse(sessionId)
	if err != nil {
		return
	}

	session, err := s.loadSession(ctx, id)
	if err != nil {
		s.logger.Warn("NavigationService", "debounced navigation dropped", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
		return
	}

	record := entity.NavigationRecord{
		Id:         uuid.New(),
		SessionId:  id,
		Step:       step,
		URL:        url,
		Transition: entity.TransitionPush,
		Timestamp:  time.Now(),
	}
	if err := s.persistTransition(ctx, session, &record); err != nil {
		s.logger.Error("NavigationService", "failed to persist navigation", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
	}
}

// HandleBackNavigation steps the session to the entry behind the latest
// one. An empty history lands on upload instead of failing.
func (s *navigationService) HandleBackNavigation(ctx context.Context, sessionId uuid.UUID) (*dto.BackNavigationResponse, error) {
	session, err := s.loadSession(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	history, err := uow.NavigationStateRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "timestamp", Desc: true},
		specification.Pagination{Limit: 2, Offset: 0},
	)
	if err != nil {
		return nil, err
	}

	if len(history) < 2 {
		return &dto.BackNavigationResponse{
			SessionId: sessionId,
			Step:      entity.StepUpload,
			URL:       navigation.StepURL(entity.StepUpload),
			AtRoot:    true,
		}, nil
	}

	previous := history[1]
	record := entity.NavigationRecord{
		Id:         uuid.New(),
		SessionId:  sessionId,
		Step:       previous.Step,
		Substep:    previous.Substep,
		URL:        previous.URL,
		Transition: entity.TransitionBack,
		Timestamp:  time.Now(),
	}
	if err := s.persistTransition(ctx, session, &record); err != nil {
		return nil, err
	}

	return &dto.BackNavigationResponse{
		SessionId: sessionId,
		Step:      previous.Step,
		Substep:   previous.Substep,
		URL:       previous.URL,
	}, nil
}

// PushStateToHistory appends a transition without debouncing, for
// deliberate jumps like breadcrumb clicks.
func (s *navigationService) PushStateToHistory(ctx context.Context, req *dto.NavigateRequest) (*dto.NavigateResponse, error) {
	session, err := s.loadSession(ctx, req.SessionId)
	if err != nil {
		return nil, err
	}
	if !entity.IsValidStep(req.Step) {
		return nil, apperror.Validation("unknown step: " + string(req.Step))
	}
	if !navigation.IsAccessible(session, req.Step) {
		return nil, apperror.Validation("step not reachable: " + string(req.Step))
	}

	record := entity.NavigationRecord{
		Id:         uuid.New(),
		SessionId:  req.SessionId,
		Step:       req.Step,
		Substep:    req.Substep,
		Parameters: req.Parameters,
		Transition: entity.TransitionPush,
		Timestamp:  time.Now(),
	}
	record.URL = navigation.EncodeState(&record)

	if err := s.persistTransition(ctx, session, &record); err != nil {
		return nil, err
	}

	return &dto.NavigateResponse{
		SessionId: req.SessionId,
		Step:      req.Step,
		URL:       record.URL,
	}, nil
}

// RestoreFromURL rebuilds session position from an encoded URL, e.g. after
// a page refresh or a shared link.
func (s *navigationService) RestoreFromURL(ctx context.Context, req *dto.RestoreStateRequest) (*dto.RestoreStateResponse, error) {
	parsed, err := navigation.ParseState(req.URL)
	if err != nil {
		return nil, err
	}

	session, err := s.loadSession(ctx, parsed.SessionId)
	if err != nil {
		return nil, err
	}
	if !navigation.IsAccessible(session, parsed.Step) {
		return nil, apperror.Validation("step not reachable: " + string(parsed.Step))
	}

	if err := s.persistTransition(ctx, session, parsed); err != nil {
		return nil, err
	}

	return &dto.RestoreStateResponse{
		SessionId: parsed.SessionId,
		Step:      parsed.Step,
		Substep:   parsed.Substep,
		Restored:  true,
	}, nil
}

// Cleanup releases the debouncer. Safe to call more than once.
func (s *navigationService) Cleanup() {
	s.debouncer.Cleanup()
}

func (s *navigationService) loadSession(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
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

func (s *navigationService) persistTransition(ctx context.Context, session *entity.Session, record *entity.NavigationRecord) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NavigationStateRepository().Create(ctx, record); err != nil {
		return err
	}

	session.NavigationHistory = append(session.NavigationHistory, record)
	session.CurrentStep = record.Step
	session.LastActiveAt = time.Now()
	if err := uow.SessionRepository().Update(ctx, session); err != nil {
		return err
	}

	s.sessionCache.Save(session)
	s.navContextCache.Invalidate(session.Id.String())
	return nil
}

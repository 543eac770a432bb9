package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"cv-builder-be/internal/dto"
	"cv-builder-be/internal/entity"
	"cv-builder-be/internal/model"
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

// SyncDelivery defines how to push realtime sync updates.
// Typically implemented by the WebSocket Hub.
type SyncDelivery interface {
	Send(sessionId uuid.UUID, status model.SyncStatus)
}

type IQueueService interface {
	QueueAction(ctx context.Context, req *dto.QueueActionRequest) (*dto.QueueActionResponse, error)
	SyncPendingActions(ctx context.Context, sessionId uuid.UUID) (*dto.SyncPendingActionsResponse, error)
	GetPendingActions(ctx context.Context, sessionId uuid.UUID) ([]*dto.QueuedActionDTO, error)
	ClearActionQueue(ctx context.Context, sessionId uuid.UUID) (*dto.ClearActionQueueResponse, error)
	SetConnectivity(ctx context.Context, req *dto.ConnectivityRequest) (*dto.ConnectivityResponse, error)
	IsOnline(sessionId uuid.UUID) bool
}

type queueService struct {
	uowFactory         unitofwork.RepositoryFactory
	publisherService   IPublisherService
	delivery           SyncDelivery
	navContextCache    *memory.NavigationContextCache
	natsPublisher      *pktNats.Publisher
	logger             logger.ILogger
	defaultMaxAttempts int

	mu      sync.RWMutex
	offline map[uuid.UUID]bool // sessions default to online
}

func NewQueueService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	delivery SyncDelivery,
	navContextCache *memory.NavigationContextCache,
	natsPublisher *pktNats.Publisher,
	log logger.ILogger,
	defaultMaxAttempts int,
) IQueueService {
	return &queueService{
		uowFactory:         uowFactory,
		publisherService:   publisherService,
		delivery:           delivery,
		navContextCache:    navContextCache,
		natsPublisher:      natsPublisher,
		logger:             log,
		defaultMaxAttempts: defaultMaxAttempts,
		offline:            make(map[uuid.UUID]bool),
	}
}

func (s *queueService) IsOnline(sessionId uuid.UUID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.offline[sessionId]
}

func (s *queueService) QueueAction(ctx context.Context, req *dto.QueueActionRequest) (*dto.QueueActionResponse, error) {
	if !entity.IsValidActionType(req.Type) {
		return nil, apperror.Validation("unknown action type: " + string(req.Type))
	}

	priority := req.Priority
	if priority == "" {
		priority = entity.ActionPriorityNormal
	}
	maxAttempts := req.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = s.defaultMaxAttempts
	}

	action := entity.QueuedAction{
		Id:              uuid.New(),
		SessionId:       req.SessionId,
		Type:            req.Type,
		Payload:         req.Payload,
		Priority:        priority,
		Status:          entity.ActionStatusPending,
		MaxAttempts:     maxAttempts,
		RequiresNetwork: req.RequiresNetwork,
		RollbackData:    req.RollbackData,
		Timestamp:       time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ActionRepository().Create(ctx, &action); err != nil {
		return nil, err
	}

	pending, err := uow.ActionRepository().Count(ctx,
		specification.BySessionID{SessionID: req.SessionId},
		specification.PendingOnly{},
	)
	if err != nil {
		return nil, err
	}

	// Persist first, then hand network-bound actions straight to the drain
	// worker while the session is online.
	if action.RequiresNetwork && s.IsOnline(req.SessionId) {
		if payload, mErr := json.Marshal(dto.SyncTriggerMessage{SessionId: req.SessionId}); mErr == nil {
			if pErr := s.publisherService.Publish(ctx, payload); pErr != nil {
				s.logger.Warn("QueueService", "failed to trigger immediate sync", map[string]interface{}{
					"session_id": req.SessionId,
					"error":      pErr.Error(),
				})
			}
		}
	}

	s.notify(req.SessionId, pending, false, nil)

	return &dto.QueueActionResponse{
		Id:           action.Id,
		PendingCount: pending,
	}, nil
}

func (s *queueService) SyncPendingActions(ctx context.Context, sessionId uuid.UUID) (*dto.SyncPendingActionsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if !s.IsOnline(sessionId) {
		remaining, err := uow.ActionRepository().Count(ctx,
			specification.BySessionID{SessionID: sessionId},
			specification.PendingOnly{},
		)
		if err != nil {
			return nil, err
		}
		return &dto.SyncPendingActionsResponse{Remaining: remaining}, nil
	}

	actions, err := uow.ActionRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.PendingOnly{},
		specification.DrainOrder{},
	)
	if err != nil {
		return nil, err
	}

	result := &dto.SyncPendingActionsResponse{}

	for _, action := range actions {
		// A failed action never blocks the ones behind it.
		execErr := s.applyAction(ctx, action)
		if execErr == nil {
			if err := uow.ActionRepository().Delete(ctx, action.Id); err != nil {
				return nil, err
			}
			result.Synced++
			continue
		}

		action.Attempts++
		action.LastError = execErr.Error()
		now := time.Now()
		action.UpdatedAt = &now

		// Structural failures do not earn retries.
		if !navigation.IsNetworkError(execErr) {
			action.Attempts = action.MaxAttempts
		}

		if action.Exhausted() {
			action.Status = entity.ActionStatusExhausted
			s.logger.Warn("QueueService", "action exhausted retries", map[string]interface{}{
				"action_id":  action.Id,
				"session_id": sessionId,
				"error":      execErr.Error(),
			})
			if rollback := action.Rollback(); rollback != nil {
				if err := uow.ActionRepository().Create(ctx, rollback); err != nil {
					return nil, err
				}
				result.RolledBack++
			}
			s.publishExhausted(ctx, action, execErr)
		}

		if err := uow.ActionRepository().Update(ctx, action); err != nil {
			return nil, err
		}
		result.Failed++
	}

	remaining, err := uow.ActionRepository().Count(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.PendingOnly{},
	)
	if err != nil {
		return nil, err
	}
	result.Remaining = remaining

	syncedAt := time.Now()
	s.notify(sessionId, remaining, false, &syncedAt)
	s.navContextCache.Invalidate(sessionId.String())

	return result, nil
}

func (s *queueService) GetPendingActions(ctx context.Context, sessionId uuid.UUID) ([]*dto.QueuedActionDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	actions, err := uow.ActionRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.PendingOnly{},
		specification.DrainOrder{},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.QueuedActionDTO, 0, len(actions))
	for _, action := range actions {
		result = append(result, &dto.QueuedActionDTO{
			Id:              action.Id,
			SessionId:       action.SessionId,
			Type:            action.Type,
			Payload:         action.Payload,
			Priority:        action.Priority,
			Status:          action.Status,
			Attempts:        action.Attempts,
			MaxAttempts:     action.MaxAttempts,
			RequiresNetwork: action.RequiresNetwork,
			LastError:       action.LastError,
			Timestamp:       action.Timestamp,
		})
	}
	return result, nil
}

func (s *queueService) ClearActionQueue(ctx context.Context, sessionId uuid.UUID) (*dto.ClearActionQueueResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ActionRepository().DeleteAllBySessionId(ctx, sessionId); err != nil {
		return nil, err
	}

	s.notify(sessionId, 0, false, nil)

	return &dto.ClearActionQueueResponse{
		SessionId: sessionId,
		Cleared:   true,
	}, nil
}

// SetConnectivity records the session's connectivity and, on the
// offline-to-online transition, asks the sync worker to drain the queue.
func (s *queueService) SetConnectivity(ctx context.Context, req *dto.ConnectivityRequest) (*dto.ConnectivityResponse, error) {
	s.mu.Lock()
	wasOffline := s.offline[req.SessionId]
	s.offline[req.SessionId] = !req.Online
	s.mu.Unlock()

	resp := &dto.ConnectivityResponse{
		SessionId: req.SessionId,
		Online:    req.Online,
	}

	if req.Online && wasOffline {
		payload, err := json.Marshal(dto.SyncTriggerMessage{SessionId: req.SessionId})
		if err != nil {
			return nil, err
		}
		if err := s.publisherService.Publish(ctx, payload); err != nil {
			s.logger.Error("QueueService", "failed to publish sync trigger", map[string]interface{}{
				"session_id": req.SessionId,
				"error":      err.Error(),
			})
			return nil, err
		}
		resp.SyncTriggered = true
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	pending, err := uow.ActionRepository().Count(ctx,
		specification.BySessionID{SessionID: req.SessionId},
		specification.PendingOnly{},
	)
	if err != nil {
		return nil, err
	}
	s.notify(req.SessionId, pending, resp.SyncTriggered, nil)

	return resp, nil
}

// applyAction replays one queued mutation against the authoritative session.
func (s *queueService) applyAction(ctx context.Context, action *entity.QueuedAction) error {
	if action.RequiresNetwork && !s.IsOnline(action.SessionId) {
		return apperror.NetworkError("connectivity required", nil)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: action.SessionId})
	if err != nil {
		return apperror.NetworkError("session lookup failed", err)
	}
	if session == nil {
		return apperror.SessionNotFound(action.SessionId.String())
	}

	switch action.Type {
	case entity.ActionTypeFormSave:
		session.FormData = mergeMap(session.FormData, action.Payload)
	case entity.ActionTypeFeatureToggle:
		session.FeatureStates = mergeMap(session.FeatureStates, action.Payload)
	case entity.ActionTypeSessionUpdate:
		if raw, ok := action.Payload["current_step"].(string); ok && entity.IsValidStep(entity.Step(raw)) {
			session.CurrentStep = entity.Step(raw)
		}
		session.UIState = mergeMap(session.UIState, action.Payload)
	default:
		return apperror.Validation("unknown action type: " + string(action.Type))
	}

	session.LastActiveAt = time.Now()
	if err := uow.SessionRepository().Update(ctx, session); err != nil {
		return apperror.NetworkError("session write failed", err)
	}
	return nil
}

func (s *queueService) publishExhausted(ctx context.Context, action *entity.QueuedAction, cause error) {
	if s.natsPublisher == nil {
		return
	}
	event := events.New(events.TypeActionsExhausted, map[string]interface{}{
		"action_id":  action.Id.String(),
		"session_id": action.SessionId.String(),
		"type":       string(action.Type),
		"error":      cause.Error(),
	})
	if err := s.natsPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("QueueService", "failed to publish exhaustion event", map[string]interface{}{
			"action_id": action.Id,
			"error":     err.Error(),
		})
	}
}

func (s *queueService) notify(sessionId uuid.UUID, pending int64, syncing bool, lastSyncAt *time.Time) {
	if s.delivery == nil {
		return
	}
	s.delivery.Send(sessionId, model.SyncStatus{
		SessionID:    sessionId,
		Online:       s.IsOnline(sessionId),
		PendingCount: pending,
		Syncing:      syncing,
		LastSyncAt:   lastSyncAt,
	})
}

func mergeMap(dst, src map[string]interface{}) map[string]interface{} {
	if dst == nil {
		dst = make(map[string]interface{}, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

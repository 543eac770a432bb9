package service

import (
	"context"
	"sort"
	"sync"

	"cv-builder-be/internal/entity"
	"cv-builder-be/internal/model"
	"cv-builder-be/internal/repository/contract"
	"cv-builder-be/internal/repository/specification"
	"cv-builder-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// nopLogger swallows everything. Tests assert behavior, not logs.
type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

// The fakes below interpret the small set of specifications the services
// actually use, keeping tests free of a live database.

type fakeSessionRepository struct {
	mu        sync.Mutex
	sessions  map[uuid.UUID]*entity.Session
	updateErr error
	findErr   error
	findCalls int
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{sessions: make(map[uuid.UUID]*entity.Session)}
}

func (r *fakeSessionRepository) Create(ctx context.Context, session *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *session
	r.sessions[session.Id] = &copied
	return nil
}

func (r *fakeSessionRepository) Update(ctx context.Context, session *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	copied := *session
	r.sessions[session.Id] = &copied
	return nil
}

func (r *fakeSessionRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findCalls++
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, spec := range specs {
		if byId, ok := spec.(specification.ByID); ok {
			if s, found := r.sessions[byId.ID]; found {
				copied := *s
				return &copied, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeSessionRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*entity.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		copied := *s
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakeSessionRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.sessions)), nil
}

func (r *fakeSessionRepository) MarkStale(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var cutoff *specification.StaleBefore
	for _, spec := range specs {
		if sb, ok := spec.(specification.StaleBefore); ok {
			cutoff = &sb
		}
	}
	var affected int64
	for _, s := range r.sessions {
		if !s.CanResume {
			continue
		}
		if cutoff != nil && !s.LastActiveAt.Before(cutoff.Cutoff) {
			continue
		}
		s.CanResume = false
		affected++
	}
	return affected, nil
}

type fakeActionRepository struct {
	mu        sync.Mutex
	actions   map[uuid.UUID]*entity.QueuedAction
	deleted   []uuid.UUID // deletion order doubles as execution order
	createErr error
}

func newFakeActionRepository() *fakeActionRepository {
	return &fakeActionRepository{actions: make(map[uuid.UUID]*entity.QueuedAction)}
}

func (r *fakeActionRepository) Create(ctx context.Context, action *entity.QueuedAction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	copied := *action
	r.actions[action.Id] = &copied
	return nil
}

func (r *fakeActionRepository) Update(ctx context.Context, action *entity.QueuedAction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *action
	r.actions[action.Id] = &copied
	return nil
}

func (r *fakeActionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.actions, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeActionRepository) DeleteAllBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, a := range r.actions {
		if a.SessionId == sessionId {
			delete(r.actions, id)
		}
	}
	return nil
}

func (r *fakeActionRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.QueuedAction, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *fakeActionRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QueuedAction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var sessionFilter *uuid.UUID
	pendingOnly := false
	drainOrder := false
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.BySessionID:
			id := s.SessionID
			sessionFilter = &id
		case specification.PendingOnly:
			pendingOnly = true
		case specification.DrainOrder:
			drainOrder = true
		}
	}

	result := make([]*entity.QueuedAction, 0)
	for _, a := range r.actions {
		if sessionFilter != nil && a.SessionId != *sessionFilter {
			continue
		}
		if pendingOnly && a.Status != entity.ActionStatusPending {
			continue
		}
		copied := *a
		result = append(result, &copied)
	}

	if drainOrder {
		sort.Slice(result, func(i, j int) bool {
			ri, rj := entity.PriorityRank(result[i].Priority), entity.PriorityRank(result[j].Priority)
			if ri != rj {
				return ri < rj
			}
			return result[i].Timestamp.Before(result[j].Timestamp)
		})
	}
	return result, nil
}

func (r *fakeActionRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(all)), nil
}

type fakeNavigationStateRepository struct {
	mu      sync.Mutex
	records []*entity.NavigationRecord
}

func newFakeNavigationStateRepository() *fakeNavigationStateRepository {
	return &fakeNavigationStateRepository{}
}

func (r *fakeNavigationStateRepository) Create(ctx context.Context, record *entity.NavigationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *record
	r.records = append(r.records, &copied)
	return nil
}

func (r *fakeNavigationStateRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.NavigationRecord, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *fakeNavigationStateRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.NavigationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var sessionFilter *uuid.UUID
	desc := false
	limit := 0
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.BySessionID:
			id := s.SessionID
			sessionFilter = &id
		case specification.OrderBy:
			desc = s.Desc
		case specification.Pagination:
			limit = s.Limit
		}
	}

	result := make([]*entity.NavigationRecord, 0)
	for _, rec := range r.records {
		if sessionFilter != nil && rec.SessionId != *sessionFilter {
			continue
		}
		copied := *rec
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool {
		if desc {
			return result[i].Timestamp.After(result[j].Timestamp)
		}
		return result[i].Timestamp.Before(result[j].Timestamp)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *fakeNavigationStateRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(all)), nil
}

type fakeEngagementRepository struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*entity.EngagementProfile
}

func newFakeEngagementRepository() *fakeEngagementRepository {
	return &fakeEngagementRepository{profiles: make(map[uuid.UUID]*entity.EngagementProfile)}
}

func (r *fakeEngagementRepository) Upsert(ctx context.Context, profile *entity.EngagementProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *profile
	r.profiles[profile.UserId] = &copied
	return nil
}

func (r *fakeEngagementRepository) FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.EngagementProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, found := r.profiles[userId]; found {
		copied := *p
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeEngagementRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.EngagementProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*entity.EngagementProfile, 0, len(r.profiles))
	for _, p := range r.profiles {
		copied := *p
		result = append(result, &copied)
	}
	return result, nil
}

type fakeUnitOfWork struct {
	sessions   *fakeSessionRepository
	actions    *fakeActionRepository
	navigation *fakeNavigationStateRepository
	engagement *fakeEngagementRepository
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) SessionRepository() contract.SessionRepository {
	return u.sessions
}

func (u *fakeUnitOfWork) ActionRepository() contract.ActionRepository {
	return u.actions
}

func (u *fakeUnitOfWork) NavigationStateRepository() contract.NavigationStateRepository {
	return u.navigation
}

func (u *fakeUnitOfWork) EngagementRepository() contract.EngagementRepository {
	return u.engagement
}

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{uow: &fakeUnitOfWork{
		sessions:   newFakeSessionRepository(),
		actions:    newFakeActionRepository(),
		navigation: newFakeNavigationStateRepository(),
		engagement: newFakeEngagementRepository(),
	}}
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type sentStatus struct {
	sessionId uuid.UUID
	pending   int64
	online    bool
}

type fakeDelivery struct {
	mu   sync.Mutex
	sent []sentStatus
}

func (d *fakeDelivery) Send(sessionId uuid.UUID, status model.SyncStatus) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, sentStatus{sessionId: sessionId, pending: status.PendingCount, online: status.Online})
}

type fakePublisher struct {
	mu       sync.Mutex
	payloads [][]byte
	err      error
}

func (p *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.payloads = append(p.payloads, payload)
	return nil
}

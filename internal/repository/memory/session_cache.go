package memory

import (
	"time"

	"cv-builder-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

// SessionCache keeps recently touched sessions in memory so the auto-save
// loop and read paths do not hit postgres on every tick.
type SessionCache struct {
	cache *cache.Cache
}

func NewSessionCache() *SessionCache {
	// Default expiration of 1 hour, purge sweep every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionCache{
		cache: c,
	}
}

func (r *SessionCache) Save(session *entity.Session) {
	r.cache.Set(session.Id.String(), session, cache.DefaultExpiration)
}

func (r *SessionCache) Get(sessionId string) (*entity.Session, bool) {
	if x, found := r.cache.Get(sessionId); found {
		return x.(*entity.Session), true
	}
	return nil, false
}

func (r *SessionCache) Delete(sessionId string) {
	r.cache.Delete(sessionId)
}

// Items returns every cached session still alive. Used by the auto-save
// loop to flush dirty state without tracking a separate registry.
func (r *SessionCache) Items() []*entity.Session {
	items := r.cache.Items()
	sessions := make([]*entity.Session, 0, len(items))
	for _, item := range items {
		sessions = append(sessions, item.Object.(*entity.Session))
	}
	return sessions
}

package memory

import (
	"time"

	"cv-builder-be/pkg/navigation"

	"github.com/patrickmn/go-cache"
)

// NavigationSnapshot is a cached navigation read: the computed context plus
// the breadcrumbs that went with it. Caching both keeps cache hits fully
// offline while the store is unreachable.
type NavigationSnapshot struct {
	Context     *navigation.Context
	Breadcrumbs []navigation.Breadcrumb
}

// NavigationContextCache memoizes computed navigation snapshots per session.
// Entries are short lived; any session mutation invalidates explicitly.
type NavigationContextCache struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewNavigationContextCache(ttl time.Duration) *NavigationContextCache {
	return &NavigationContextCache{
		cache: cache.New(ttl, ttl),
		ttl:   ttl,
	}
}

func (r *NavigationContextCache) Save(sessionId string, snap *NavigationSnapshot) {
	r.cache.Set(sessionId, snap, r.ttl)
}

func (r *NavigationContextCache) Get(sessionId string) (*NavigationSnapshot, bool) {
	if x, found := r.cache.Get(sessionId); found {
		return x.(*NavigationSnapshot), true
	}
	return nil, false
}

func (r *NavigationContextCache) Invalidate(sessionId string) {
	r.cache.Delete(sessionId)
}

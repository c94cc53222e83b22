package memory

import (
	"sync"
	"time"

	"ai-studybuddy-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	cache  *cache.Cache
	totals *cache.Cache
	mu     sync.Mutex
}

func NewSessionRepository() *SessionRepository {
	// Create a cache with a default expiration time of 1 hour, and which
	// purges expired items every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
		// Lifetime generation counters never expire. The cap has to hold
		// even after the session entry itself is purged.
		totals: cache.New(cache.NoExpiration, 0),
	}
}

func (r *SessionRepository) Save(session *store.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Set(session.Identity, session, cache.DefaultExpiration)
	// The counter is monotonic, so only ever move it forward.
	if session.TotalGenerated > r.totalLocked(session.Identity) {
		r.totals.Set(session.Identity, session.TotalGenerated, cache.NoExpiration)
	}
}

// TotalGenerated reports the identity's lifetime generation count. It is
// tracked outside the session entry so it survives expiry and deletion.
func (r *SessionRepository) TotalGenerated(identity string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.totalLocked(identity)
}

func (r *SessionRepository) totalLocked(identity string) int {
	if x, found := r.totals.Get(identity); found {
		return x.(int)
	}
	return 0
}

func (r *SessionRepository) Get(identity string) (*store.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if x, found := r.cache.Get(identity); found {
		return x.(*store.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(identity string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Delete(identity)
}

// Mutate applies fn to the identity's session under the repository lock,
// keeping navigation and review transitions strictly sequential per session.
func (r *SessionRepository) Mutate(identity string, fn func(*store.Session) error) (*store.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	x, found := r.cache.Get(identity)
	if !found {
		return nil, ErrNoSession
	}
	session := x.(*store.Session)

	if err := fn(session); err != nil {
		return nil, err
	}

	// Re-set to refresh the expiration window.
	r.cache.Set(identity, session, cache.DefaultExpiration)
	return session, nil
}

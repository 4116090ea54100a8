package reconcile

import (
	"context"
	"sync"
	"time"

	"ai-access-manager/core/identity"

	"golang.org/x/sync/singleflight"
)

// SyncCache keeps the merged user list of all providers in memory for a TTL.
// Concurrent misses share one sync through singleflight.
type SyncCache struct {
	engine *Engine
	ttl    time.Duration

	mu    sync.RWMutex
	users []identity.Identity
	built time.Time
	sf    singleflight.Group

	now func() time.Time
}

// NewSyncCache creates a cache over engine. A zero ttl disables caching but
// still collapses concurrent syncs.
func NewSyncCache(engine *Engine, ttl time.Duration) *SyncCache {
	return &SyncCache{engine: engine, ttl: ttl, now: time.Now}
}

// IsExpired returns true if the cached list is missing or older than the TTL.
func (c *SyncCache) IsExpired() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.expiredLocked()
}

func (c *SyncCache) expiredLocked() bool {
	if c.ttl == 0 || c.users == nil {
		return true
	}
	return c.now().Sub(c.built) > c.ttl
}

// Users returns the merged user list filtered by email substring. Only syncs
// where every provider succeeded are cached.
func (c *SyncCache) Users(ctx context.Context, filter string) (*Report, error) {
	// Fast path: check if cache exists and is fresh
	c.mu.RLock()
	if !c.expiredLocked() {
		users := c.users
		c.mu.RUnlock()
		return &Report{Operation: OpList, Users: filterUsers(users, filter), FromCache: true, Outcomes: []Outcome{}}, nil
	}
	c.mu.RUnlock()

	// Slow path: sync using singleflight to prevent stampedes
	result, err, _ := c.sf.Do("users", func() (interface{}, error) {
		report, err := c.engine.List(ctx, ListOptions{})
		if err != nil {
			return nil, err
		}
		if !report.Failed() {
			c.mu.Lock()
			c.users = report.Users
			c.built = c.now()
			c.mu.Unlock()
		}
		return report, nil
	})
	if err != nil {
		return nil, err
	}

	shared := result.(*Report)
	report := *shared
	report.Users = filterUsers(shared.Users, filter)
	return &report, nil
}

// Invalidate drops the cached list so the next call syncs.
func (c *SyncCache) Invalidate() {
	c.mu.Lock()
	c.users = nil
	c.mu.Unlock()
}

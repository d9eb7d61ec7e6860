package cache

import (
	"sync"
	"time"

	"github.com/parmanandkushwah/MoneyMentor/internal/domain/entity"
)

// CacheEntry represents a cached budget snapshot with its write time
type CacheEntry struct {
	Snapshot  *entity.BudgetSnapshot
	Timestamp time.Time
}

// SnapshotCache provides a thread-safe in-memory cache of per-user budget
// snapshots, saving a storage read on repeated dashboard loads. Entries are
// write-through copies of what the snapshot repository persists, so a stale
// entry can only ever lag until the next recomputation.
type SnapshotCache struct {
	cache      map[string]CacheEntry
	expiration time.Duration
	mutex      sync.RWMutex
}

// NewSnapshotCache creates a new snapshot cache
func NewSnapshotCache() *SnapshotCache {
	return &SnapshotCache{
		cache:      make(map[string]CacheEntry),
		expiration: time.Hour,
	}
}

// Get retrieves a user's snapshot from the cache if present and not expired
func (c *SnapshotCache) Get(userID string) *entity.BudgetSnapshot {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, exists := c.cache[userID]
	if !exists || time.Since(entry.Timestamp) > c.expiration {
		return nil
	}

	return entry.Snapshot
}

// Put stores a user's snapshot in the cache
func (c *SnapshotCache) Put(userID string, snapshot *entity.BudgetSnapshot) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.cache[userID] = CacheEntry{
		Snapshot:  snapshot,
		Timestamp: time.Now(),
	}
}

// Invalidate drops a single user's entry
func (c *SnapshotCache) Invalidate(userID string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.cache, userID)
}

// Clear clears all entries from the cache
func (c *SnapshotCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.cache = make(map[string]CacheEntry)
}

// SetExpiration sets the cache expiration duration
func (c *SnapshotCache) SetExpiration(duration time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.expiration = duration
}

// Size returns the number of items in the cache
func (c *SnapshotCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.cache)
}

// CleanExpired removes expired entries from the cache
func (c *SnapshotCache) CleanExpired() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	count := 0
	now := time.Now()

	for key, entry := range c.cache {
		if now.Sub(entry.Timestamp) > c.expiration {
			delete(c.cache, key)
			count++
		}
	}

	return count
}

package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/workplan/backend/internal/domain/workpackage"
)

type outlineEntry struct {
	payload   []byte
	expiresAt time.Time
}

// InMemoryOutlineCache is a process-local implementation of
// workpackage.OutlineCache. Suitable for single-instance deployments
// and testing; state is not shared across processes.
type InMemoryOutlineCache struct {
	mu         sync.RWMutex
	entries    map[uuid.UUID]map[string]outlineEntry
	defaultTTL time.Duration
}

// NewInMemoryOutlineCache creates a new in-memory outline cache
func NewInMemoryOutlineCache() *InMemoryOutlineCache {
	return &InMemoryOutlineCache{
		entries:    make(map[uuid.UUID]map[string]outlineEntry),
		defaultTTL: defaultOutlineTTL,
	}
}

// Get retrieves a cached outline projection. A miss returns (nil, nil).
func (c *InMemoryOutlineCache) Get(ctx context.Context, projectID uuid.UUID, key string) ([]byte, error) {
	c.mu.RLock()
	entry, ok := c.entries[projectID][key]
	c.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		// Expired entries are removed lazily
		c.mu.Lock()
		delete(c.entries[projectID], key)
		c.mu.Unlock()
		return nil, nil
	}
	return entry.payload, nil
}

// Set stores an outline projection in cache
func (c *InMemoryOutlineCache) Set(ctx context.Context, projectID uuid.UUID, key string, payload []byte, ttl time.Duration) error {
	if len(payload) == 0 {
		return nil
	}
	if ttl == 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entries[projectID] == nil {
		c.entries[projectID] = make(map[string]outlineEntry)
	}
	c.entries[projectID][key] = outlineEntry{
		payload:   payload,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Invalidate removes all cached outline projections for a project
func (c *InMemoryOutlineCache) Invalidate(ctx context.Context, projectID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, projectID)
	return nil
}

// Close releases resources; a no-op for the in-memory cache
func (c *InMemoryOutlineCache) Close() error {
	return nil
}

// Ensure InMemoryOutlineCache implements OutlineCache
var _ workpackage.OutlineCache = (*InMemoryOutlineCache)(nil)

package workpackage

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OutlineCache caches rendered outline projections per project. Entries
// are opaque payloads keyed by a request fingerprint; Invalidate drops
// every entry for a project after a mutation. A nil payload with a nil
// error is a cache miss.
type OutlineCache interface {
	Get(ctx context.Context, projectID uuid.UUID, key string) ([]byte, error)
	Set(ctx context.Context, projectID uuid.UUID, key string, payload []byte, ttl time.Duration) error
	Invalidate(ctx context.Context, projectID uuid.UUID) error
	Close() error
}

package port

import (
	"context"
	"time"
)

// KeyValueStore abstracts the session-scoped persistence facility that
// carries wizard state across steps. Values are JSON-encoded strings; callers
// must defensively handle missing or malformed values. A missing key is
// reported as domain.ErrNotFound.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

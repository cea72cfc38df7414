// Package cache stores serialized evaluation responses keyed by a canonical
// request hash. The catalog is immutable for the life of the process, so
// entries can only go stale across deploys; the TTL bounds that window.
package cache

import (
	"context"
	"time"
)

type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

package interfaces

import (
	"context"
	"time"
)

// CacheProvider is the key-value persistence boundary used for layout blobs
// and other per-tab state. Implementations may be in-process maps, browser
// storage bridges, or shared caches; callers must tolerate missing keys.
type CacheProvider interface {
	Get(ctx context.Context, key string) (any, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

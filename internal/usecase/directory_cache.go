package usecase

import (
	"context"
	"time"
)

// DirectoryCache is a shared, cross-session cache for skill directory
// lookups. Implementations must treat an unavailable backend as a miss.
type DirectoryCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

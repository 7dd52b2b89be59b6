// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"errors"
	"time"

	"github.com/mealwise/core/internal/domain/profile"
	"github.com/mealwise/core/internal/domain/recipe"
)

// ErrCacheMiss is returned by CacheRepository.Get when the key is absent or expired
var ErrCacheMiss = errors.New("cache miss")

// ProfileRepository persists the partial profile document of a user.
// Only keys the user has written are stored; defaults are never persisted.
type ProfileRepository interface {
	// Find returns the stored partial, or (nil, nil) when the user has none
	Find(ctx context.Context, userID string) (profile.Document, error)
	// Save replaces the stored partial
	Save(ctx context.Context, userID string, doc profile.Document) error
	Delete(ctx context.Context, userID string) error
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// ChunkSource yields the recipe catalog as ordered chunks.
// The order of the returned slice is the registration order.
type ChunkSource interface {
	Chunks(ctx context.Context) ([]recipe.Chunk, error)
}

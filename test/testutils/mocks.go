// Package testutils provides mock implementations for testing
package testutils

import (
	"context"
	"sync"
	"time"

	"github.com/mealwise/core/internal/domain/profile"
	"github.com/mealwise/core/internal/domain/recipe"
	"github.com/mealwise/core/internal/ports/outbound"
	"github.com/stretchr/testify/mock"
)

// MockProfileRepository provides a mock implementation of ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

// NewMockProfileRepository creates a new mock profile repository
func NewMockProfileRepository() *MockProfileRepository {
	return &MockProfileRepository{}
}

// Find finds a stored partial profile
func (m *MockProfileRepository) Find(ctx context.Context, userID string) (profile.Document, error) {
	args := m.Called(ctx, userID)
	doc, _ := args.Get(0).(profile.Document)
	return doc, args.Error(1)
}

// Save stores a partial profile
func (m *MockProfileRepository) Save(ctx context.Context, userID string, doc profile.Document) error {
	args := m.Called(ctx, userID, doc)
	return args.Error(0)
}

// Delete removes a stored partial profile
func (m *MockProfileRepository) Delete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockCacheRepository provides a mock implementation of CacheRepository
// with a small in-memory store behind the expectations
type MockCacheRepository struct {
	mock.Mock
	data map[string][]byte
	mu   sync.RWMutex
}

// NewMockCacheRepository creates a new mock cache repository
func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{
		data: make(map[string][]byte),
	}
}

// Get gets a value from cache
func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if value, exists := m.data[key]; exists {
		return value, nil
	}
	return nil, outbound.ErrCacheMiss
}

// Set sets a value in cache
func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)

	if args.Error(0) == nil {
		m.mu.Lock()
		m.data[key] = value
		m.mu.Unlock()
	}
	return args.Error(0)
}

// Delete deletes a value from cache
func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)

	if args.Error(0) == nil {
		m.mu.Lock()
		delete(m.data, key)
		m.mu.Unlock()
	}
	return args.Error(0)
}

// Exists checks if a key exists in cache
func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

// Stored returns the raw cached value, bypassing expectations
func (m *MockCacheRepository) Stored(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.data[key]
	return value, ok
}

// StaticChunkSource serves a fixed list of chunks
type StaticChunkSource struct {
	mu     sync.Mutex
	chunks []recipe.Chunk
	err    error
}

// NewStaticChunkSource creates a chunk source over the given chunks
func NewStaticChunkSource(chunks ...recipe.Chunk) *StaticChunkSource {
	return &StaticChunkSource{chunks: chunks}
}

// Chunks returns the configured chunks
func (s *StaticChunkSource) Chunks(_ context.Context) ([]recipe.Chunk, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chunks, s.err
}

// SetChunks replaces the served chunks
func (s *StaticChunkSource) SetChunks(chunks ...recipe.Chunk) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = chunks
}

// FailWith makes subsequent calls fail with err
func (s *StaticChunkSource) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

package catalog

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type countingReloader struct {
	calls atomic.Int32
}

func (r *countingReloader) Initialize(_ context.Context) error {
	r.calls.Add(1)
	return nil
}

func TestWatcher_ReloadsOnChunkChange(t *testing.T) {
	dir := t.TempDir()
	reloader := &countingReloader{}

	watcher, err := NewWatcher(dir, reloader, 20*time.Millisecond, zaptest.NewLogger(t))
	require.NoError(t, err)
	watcher.Start()
	defer watcher.Stop()

	writeChunk(t, dir, "a.json", `[{"id": 1}]`)
	writeChunk(t, dir, "a.json", `[{"id": 1}, {"id": 2}]`)

	require.Eventually(t, func() bool {
		return reloader.calls.Load() >= 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	reloader := &countingReloader{}

	watcher, err := NewWatcher(dir, reloader, 10*time.Millisecond, zaptest.NewLogger(t))
	require.NoError(t, err)
	watcher.Start()
	defer watcher.Stop()

	writeChunk(t, dir, "README.md", "docs")
	writeChunk(t, dir, ".a.json.swp", "swap")

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(0), reloader.calls.Load())
}

func TestWatcher_MissingDirectory(t *testing.T) {
	_, err := NewWatcher("/definitely/not/here", &countingReloader{}, 0, zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestIsChunkFile(t *testing.T) {
	assert.True(t, isChunkFile("/data/chunks/02_mains.json"))
	assert.True(t, isChunkFile("/data/chunks/UPPER.JSON"))
	assert.False(t, isChunkFile("/data/chunks/02_mains.json~"))
	assert.False(t, isChunkFile("/data/chunks/.02_mains.json"))
	assert.False(t, isChunkFile("/data/chunks/notes.txt"))
}

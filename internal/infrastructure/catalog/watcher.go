package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Reloader rebuilds state from its source
type Reloader interface {
	Initialize(ctx context.Context) error
}

// Watcher reloads the registry when chunk files in a directory change.
// Bursts of events collapse into a single reload after the debounce delay.
type Watcher struct {
	watcher  *fsnotify.Watcher
	reloader Reloader
	logger   *zap.Logger

	debounceDelay time.Duration

	mutex sync.Mutex
	timer *time.Timer

	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	started sync.Once
}

// NewWatcher creates a watcher over dir. Call Start to begin watching.
func NewWatcher(dir string, reloader Reloader, debounceDelay time.Duration, logger *zap.Logger) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	if debounceDelay <= 0 {
		debounceDelay = 250 * time.Millisecond
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		watcher:       watcher,
		reloader:      reloader,
		logger:        logger.Named("chunk-watcher").With(zap.String("dir", dir)),
		debounceDelay: debounceDelay,
		ctx:           ctx,
		cancel:        cancel,
		done:          make(chan struct{}),
	}, nil
}

// Start begins watching in the background
func (w *Watcher) Start() {
	w.started.Do(func() {
		go w.watchLoop()
		w.logger.Info("Watching recipe chunks")
	})
}

// Stop shuts the watcher down and waits for the event loop to exit.
// A reload already in flight is cancelled through its context.
func (w *Watcher) Stop() error {
	w.cancel()
	err := w.watcher.Close()
	// a watcher that never started has no loop to wait for
	w.started.Do(func() { close(w.done) })
	<-w.done

	w.mutex.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mutex.Unlock()
	return err
}

func (w *Watcher) watchLoop() {
	defer close(w.done)

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("File watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !isChunkFile(event.Name) || event.Op == fsnotify.Chmod {
		return
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounceDelay, w.reload)
}

func (w *Watcher) reload() {
	if w.ctx.Err() != nil {
		return
	}

	start := time.Now()
	if err := w.reloader.Initialize(w.ctx); err != nil {
		w.logger.Error("Recipe catalog reload failed", zap.Error(err))
		return
	}
	w.logger.Info("Recipe catalog reloaded", zap.Duration("took", time.Since(start)))
}

// isChunkFile skips editor temp files and anything that is not JSON
func isChunkFile(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return false
	}
	return strings.EqualFold(filepath.Ext(base), ".json")
}

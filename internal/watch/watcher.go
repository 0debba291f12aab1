// Package watch notifies about changes to the record file made by other
// invocations of the tool.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ChangeCallback is called once per burst of changes to the watched file
type ChangeCallback func(path string)

// RecordWatcher monitors a single file. It watches the containing directory
// so that files replaced by rename are still seen.
type RecordWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	callback ChangeCallback
	debounce time.Duration
	logger   *zap.Logger

	timer *time.Timer
	mu    sync.Mutex

	cancel context.CancelFunc
	done   chan struct{}
}

// NewRecordWatcher creates a watcher for path
func NewRecordWatcher(path string, callback ChangeCallback, logger *zap.Logger) (*RecordWatcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, err
	}

	return &RecordWatcher{
		watcher:  watcher,
		path:     abs,
		callback: callback,
		debounce: 200 * time.Millisecond,
		logger:   logger,
		done:     make(chan struct{}),
	}, nil
}

// SetDebounce sets how long to wait for further writes before notifying
func (rw *RecordWatcher) SetDebounce(d time.Duration) {
	rw.mu.Lock()
	defer rw.mu.Unlock()
	rw.debounce = d
}

// Start begins watching until ctx is cancelled or Stop is called
func (rw *RecordWatcher) Start(ctx context.Context) {
	ctx, rw.cancel = context.WithCancel(ctx)

	go func() {
		defer close(rw.done)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-rw.watcher.Events:
				if !ok {
					return
				}
				rw.handleEvent(event)
			case err, ok := <-rw.watcher.Errors:
				if !ok {
					return
				}
				rw.logger.Warn("record watcher error", zap.Error(err))
			}
		}
	}()
}

// Stop stops watching and releases the underlying watcher
func (rw *RecordWatcher) Stop() {
	if rw.cancel != nil {
		rw.cancel()
		<-rw.done
	}
	rw.mu.Lock()
	if rw.timer != nil {
		rw.timer.Stop()
	}
	rw.mu.Unlock()
	rw.watcher.Close()
}

func (rw *RecordWatcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != rw.path {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}

	rw.mu.Lock()
	defer rw.mu.Unlock()

	if rw.timer != nil {
		rw.timer.Stop()
	}
	rw.timer = time.AfterFunc(rw.debounce, rw.flush)
}

func (rw *RecordWatcher) flush() {
	rw.logger.Debug("record file changed", zap.String("path", rw.path))
	if rw.callback != nil {
		rw.callback(rw.path)
	}
}

package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bassista/go_items/internal/logger"
	"github.com/fsnotify/fsnotify"
)

// contentOps are the events that can change what LoadAll returns.
const contentOps = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

// StartWatcher listens for changes to the data file and calls handler.Recompute.
// It watches the parent directory (not the file) so atomic replace sequences (temp+rename)
// are still observed. Events are filtered by basename and, when a debounce window is
// configured, bursts are coalesced into one call. The handler runs on the watcher
// goroutine, so it is never invoked concurrently with itself.
// The caller owns ctx: cancel it to stop the goroutine and close the watcher.
func (r *JSONRepository) StartWatcher(ctx context.Context, handler ChangeHandler) error {
	if handler == nil {
		return fmt.Errorf("%w: change handler is required", ErrWatchSetup)
	}
	if _, err := os.Stat(r.path); err != nil {
		return fmt.Errorf("%w: %w", ErrWatchSetup, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: create watcher: %w", ErrWatchSetup, err)
	}
	if err := watcher.Add(r.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("%w: watch dir: %w", ErrWatchSetup, err)
	}

	go r.watchLoop(ctx, watcher, handler)
	return nil
}

func (r *JSONRepository) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, handler ChangeHandler) {
	defer watcher.Close()
	log := logger.WithComponent("json-repo")

	notify := func() {
		if err := handler.Recompute(ctx); err != nil {
			log.Warnf("recompute after data file change failed: %v", err)
		}
	}

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != r.base || event.Op&contentOps == 0 {
				continue
			}
			log.Debugf("data file event: %s", event.Op)
			if r.debounce <= 0 {
				notify()
				continue
			}
			if timer == nil {
				timer = time.NewTimer(r.debounce)
			} else {
				timer.Reset(r.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			notify()
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Errorf("watcher error: %v", err)
		}
	}
}

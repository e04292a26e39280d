package junit

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"testledger-cli/logging"
)

// DefaultDebounce is how long Watch waits for further writes before
// re-aggregating
const DefaultDebounce = 500 * time.Millisecond

// WatchFunc receives the outcome of every aggregation triggered by Watch
type WatchFunc func(report *Report, err error)

// Watch aggregates once, then again whenever a result file in src is
// created or written, until ctx is cancelled. Bursts of events within the
// debounce interval collapse into one run. The source directory is created
// if it does not exist.
func (a *Aggregator) Watch(ctx context.Context, src, out string, debounce time.Duration, fn WatchFunc) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	if err := a.fs.CreateDirectory(src); err != nil {
		return fmt.Errorf("failed to create source directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(src); err != nil {
		return fmt.Errorf("failed to watch %s: %w", src, err)
	}
	logging.Info("Aggregator", "Watching %s for result files", src)

	// Runs are serialised so reports are never written concurrently
	var runMu sync.Mutex
	run := func() {
		runMu.Lock()
		defer runMu.Unlock()
		report, err := a.Aggregate(ctx, src, out)
		if ctx.Err() != nil {
			return
		}
		fn(report, err)
	}

	run()

	var (
		timerMu sync.Mutex
		timer   *time.Timer
	)
	defer func() {
		timerMu.Lock()
		if timer != nil {
			timer.Stop()
		}
		timerMu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !a.Matches(filepath.Base(event.Name)) {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			logging.Debug("Aggregator", "Result file changed: %s", event.Name)

			timerMu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, run)
			timerMu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Error("Aggregator", err, "Filesystem watcher error")
		}
	}
}

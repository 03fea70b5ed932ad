package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"menubg/internal/logging"
)

// DefaultSettle is how long the file must stay quiet before it is reported.
const DefaultSettle = 750 * time.Millisecond

// Found describes the settled output file.
type Found struct {
	Path      string
	SizeBytes int64
	At        time.Time
}

// Watcher reports once when its target file exists and has stopped changing.
type Watcher struct {
	target  string
	settle  time.Duration
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	found  chan Found
	stop   chan struct{}
	wg     sync.WaitGroup
	closed sync.Once
}

// Start watches the directory containing target. A file already present is
// reported after one settle period.
func Start(ctx context.Context, target string, settle time.Duration, logger *slog.Logger) (*Watcher, error) {
	if settle <= 0 {
		settle = DefaultSettle
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	dir := filepath.Dir(target)
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &Watcher{
		target:  filepath.Clean(target),
		settle:  settle,
		watcher: fw,
		logger:  logging.NewComponentLogger(logger, "watch"),
		found:   make(chan Found, 1),
		stop:    make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop(ctx)
	return w, nil
}

// Found receives at most one value.
func (w *Watcher) Found() <-chan Found { return w.found }

// Close stops watching and waits for the event loop to exit.
func (w *Watcher) Close() error {
	var err error
	w.closed.Do(func() {
		close(w.stop)
		w.wg.Wait()
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.wg.Done()

	timer := time.NewTimer(w.settle)
	if _, err := os.Stat(w.target); err != nil {
		timer.Stop()
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.target {
				continue
			}
			switch {
			case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
				timer.Reset(w.settle)
			case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
				timer.Stop()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", logging.Error(err))
		case <-timer.C:
			info, err := os.Stat(w.target)
			if err != nil {
				if !errors.Is(err, os.ErrNotExist) {
					w.logger.Warn("stat watched file", logging.String("path", w.target), logging.Error(err))
				}
				continue
			}
			if info.IsDir() || info.Size() == 0 {
				continue
			}
			w.logger.Info("converter output detected", logging.String("path", w.target), logging.Int64("size_bytes", info.Size()))
			w.found <- Found{Path: w.target, SizeBytes: info.Size(), At: time.Now()}
			return
		}
	}
}

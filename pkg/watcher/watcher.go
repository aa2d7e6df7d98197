// Package watcher reports files in a directory once they have stopped
// changing. A file copied into the watched directory emits several write
// events; the watcher holds each file until it has been quiet for the settle
// delay and then reports it exactly once.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/ideamans/go-l10n"
	"github.com/user/stillmotion/pkg/ports"
)

// DefaultSettleDelay is how long a file must stay quiet before it is
// reported.
const DefaultSettleDelay = 1500 * time.Millisecond

// Watcher watches one directory, non-recursively. Settled files are passed
// to the onFile callback one at a time from the watch goroutine, so the
// callback needs no locking. The callback must not call Stop.
type Watcher struct {
	dir    string
	settle time.Duration
	filter func(name string) bool
	onFile func(path string)
	logger ports.Logger

	watcher *fsnotify.Watcher
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithSettleDelay overrides the settle delay. Default is 1500ms.
func WithSettleDelay(d time.Duration) Option {
	return func(w *Watcher) {
		w.settle = d
	}
}

// WithFilter restricts which file names are reported. The filter receives
// the base name. The default accepts every file.
func WithFilter(filter func(name string) bool) Option {
	return func(w *Watcher) {
		w.filter = filter
	}
}

// New creates a watcher for dir. Nothing happens until Start.
func New(dir string, onFile func(path string), logger ports.Logger, opts ...Option) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		dir:    dir,
		settle: DefaultSettleDelay,
		filter: func(string) bool { return true },
		onFile: onFile,
		logger: logger.WithComponent("watcher"),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins watching the directory.
func (w *Watcher) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watcher: %w", err)
	}
	if err := watcher.Add(w.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watcher: add %s: %w", w.dir, err)
	}
	w.watcher = watcher
	go w.watch()
	return nil
}

// Stop stops watching and waits for the watch goroutine to exit. No
// callback runs after Stop returns.
func (w *Watcher) Stop() error {
	w.cancel()
	if w.watcher == nil {
		return nil
	}
	err := w.watcher.Close()
	<-w.done
	w.logger.Info(l10n.T("Stopped watching"))
	return err
}

// watch is the main loop. It owns the pending set; a single timer is armed
// for the soonest deadline in it.
func (w *Watcher) watch() {
	defer close(w.done)

	pending := make(map[string]time.Time)
	var timer *time.Timer
	var timerC <-chan time.Time

	rearm := func() {
		if timer != nil {
			timer.Stop()
			timer = nil
			timerC = nil
		}
		var soonest time.Time
		for _, deadline := range pending {
			if soonest.IsZero() || deadline.Before(soonest) {
				soonest = deadline
			}
		}
		if soonest.IsZero() {
			return
		}
		timer = time.NewTimer(time.Until(soonest))
		timerC = timer.C
	}

	for {
		select {
		case <-w.ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				delete(pending, event.Name)
				rearm()
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !w.filter(filepath.Base(event.Name)) {
				continue
			}
			pending[event.Name] = time.Now().Add(w.settle)
			rearm()

		case <-timerC:
			now := time.Now()
			for path, deadline := range pending {
				if deadline.After(now) {
					continue
				}
				delete(pending, path)
				w.logger.Debug(l10n.F("File settled: %s", path))
				w.onFile(path)
			}
			rearm()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn(l10n.F("Watch error: %s", err))
		}
	}
}

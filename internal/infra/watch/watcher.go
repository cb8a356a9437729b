package watch

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/sammiviz/sammi/internal/domain"
	"github.com/sammiviz/sammi/internal/infra/logger"
)

// ChangeFunc receives the files that changed in one settled batch.
type ChangeFunc func(ctx context.Context, changed []string)

// Watcher calls a ChangeFunc when any of a fixed set of files changes.
// Parent directories are watched so editors that save by rename are seen.
type Watcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	files       map[string]bool
	onChange    ChangeFunc
	pending     map[string]time.Time
	debounceDur time.Duration
	tick        time.Duration
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
}

type Option func(*Watcher)

// WithDebounce sets how long a file must stay quiet before it is reported.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounceDur = d
		if d/4 < w.tick {
			w.tick = max(d/4, 5*time.Millisecond)
		}
	}
}

func New(files []string, onChange ChangeFunc, opts ...Option) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, &domain.OpError{Op: "watch.new", Kind: domain.KindExecution, Err: err}
	}

	w := &Watcher{
		watcher:     fw,
		files:       map[string]bool{},
		onChange:    onChange,
		pending:     map[string]time.Time{},
		debounceDur: 300 * time.Millisecond,
		tick:        100 * time.Millisecond,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			_ = fw.Close()
			return nil, &domain.OpError{Op: "watch.new", Kind: domain.KindInvalidConfig, Path: f, Err: err}
		}
		w.files[filepath.Clean(abs)] = true
	}
	return w, nil
}

// Files lists the watched files, sorted.
func (w *Watcher) Files() []string {
	out := make([]string, 0, len(w.files))
	for f := range w.files {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Start watches in a goroutine until ctx ends or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	dirs := map[string]bool{}
	for f := range w.files {
		dirs[filepath.Dir(f)] = true
	}
	for d := range dirs {
		if err := w.watcher.Add(d); err != nil {
			w.mu.Lock()
			w.running = false
			w.mu.Unlock()
			return &domain.OpError{Op: "watch.add", Kind: domain.KindExecution, Path: d, Err: err}
		}
	}

	logger.L().Info("watch.start", "files", len(w.files), "dirs", len(dirs))
	go w.run(ctx)
	return nil
}

// Stop ends the loop, waits for it and releases the OS watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		_ = w.watcher.Close()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		logger.L().Warn("watch.close_failed", "err", err)
	}
	logger.L().Info("watch.stopped")
}

// Done is closed when the loop exits.
func (w *Watcher) Done() <-chan struct{} {
	return w.doneCh
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
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
			logger.L().Warn("watch.error", "err", err)

		case <-ticker.C:
			w.flush(ctx)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
		return
	}
	name := filepath.Clean(event.Name)
	if !w.files[name] {
		return
	}

	logger.L().Debug("watch.event", "path", name, "op", event.Op.String())

	w.mu.Lock()
	w.pending[name] = time.Now()
	w.mu.Unlock()
}

func (w *Watcher) flush(ctx context.Context) {
	w.mu.Lock()
	now := time.Now()
	var settled []string
	for path, at := range w.pending {
		if now.Sub(at) >= w.debounceDur {
			settled = append(settled, path)
			delete(w.pending, path)
		}
	}
	w.mu.Unlock()

	if len(settled) == 0 {
		return
	}
	sort.Strings(settled)
	logger.L().Info("watch.change", "files", settled)
	w.onChange(ctx, settled)
}

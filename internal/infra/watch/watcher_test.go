package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorder struct {
	mu    sync.Mutex
	calls [][]string
	ch    chan struct{}
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan struct{}, 16)}
}

func (r *recorder) onChange(_ context.Context, changed []string) {
	r.mu.Lock()
	r.calls = append(r.calls, changed)
	r.mu.Unlock()
	r.ch <- struct{}{}
}

func (r *recorder) wait(t *testing.T) []string {
	t.Helper()
	select {
	case <-r.ch:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for change")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[len(r.calls)-1]
}

func TestWatcherReportsChangedFile(t *testing.T) {
	dir := t.TempDir()
	spec := filepath.Join(dir, "plot.yaml")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(spec, []byte("model: a\n"), 0o644))

	rec := newRecorder()
	w, err := New([]string{spec}, rec.onChange, WithDebounce(50*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0o644))
	require.NoError(t, os.WriteFile(spec, []byte("model: b\n"), 0o644))

	got := rec.wait(t)
	abs, _ := filepath.Abs(spec)
	assert.Equal(t, []string{abs}, got)
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	spec := filepath.Join(dir, "plot.yaml")
	require.NoError(t, os.WriteFile(spec, []byte("v0"), 0o644))

	rec := newRecorder()
	w, err := New([]string{spec}, rec.onChange, WithDebounce(200*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(spec, []byte{byte('a' + i)}, 0o644))
		time.Sleep(10 * time.Millisecond)
	}
	rec.wait(t)

	// Nothing else should arrive for the same burst.
	select {
	case <-rec.ch:
		t.Fatalf("expected a single batch for a burst of writes")
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatcherStopsOnContextCancel(t *testing.T) {
	dir := t.TempDir()
	spec := filepath.Join(dir, "plot.yaml")
	require.NoError(t, os.WriteFile(spec, []byte("x"), 0o644))

	w, err := New([]string{spec}, func(context.Context, []string) {})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))
	cancel()

	select {
	case <-w.Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("watcher did not stop after cancel")
	}
	w.Stop()
}

func TestStopWithoutStart(t *testing.T) {
	w, err := New([]string{filepath.Join(t.TempDir(), "x.yaml")}, func(context.Context, []string) {})
	require.NoError(t, err)
	w.Stop()
	w.Stop()
}

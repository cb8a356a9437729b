package browser

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/sammiviz/sammi/internal/domain"
	"github.com/sammiviz/sammi/internal/ports"
)

// Starter launches a process without waiting for it.
type Starter func(name string, args ...string) error

// Opener hands files and URLs to the system browser.
type Opener struct {
	goos  string
	start Starter
}

type Option func(*Opener)

// WithGOOS overrides the detected platform.
func WithGOOS(goos string) Option {
	return func(o *Opener) { o.goos = goos }
}

// WithStarter replaces process creation, for tests.
func WithStarter(s Starter) Option {
	return func(o *Opener) { o.start = s }
}

func NewOpener(opts ...Option) *Opener {
	o := &Opener{
		goos: runtime.GOOS,
		start: func(name string, args ...string) error {
			_, err := spawn(name, args...)
			return err
		},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

var _ ports.Opener = (*Opener)(nil)

// Open starts the platform opener for target. The browser keeps running after return.
func (o *Opener) Open(ctx context.Context, target string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	name, args := Command(o.goos, target)
	if err := o.start(name, args...); err != nil {
		return &domain.OpError{
			Op:   "browser.open",
			Kind: domain.KindExecution,
			Path: target,
			Err:  fmt.Errorf("%s: %w", name, err),
		}
	}
	return nil
}

// spawn starts a process and reaps it in the background so long-running
// callers (TUI, serve) do not collect zombies. The channel yields its exit.
func spawn(name string, args ...string) (<-chan error, error) {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()
	return done, nil
}

// Command returns the opener invocation for a platform.
func Command(goos, target string) (string, []string) {
	switch goos {
	case "windows":
		// The empty argument is the window title expected by start.
		return "cmd", []string{"/c", "start", "", target}
	case "darwin":
		return "open", []string{target}
	default:
		return "xdg-open", []string{target}
	}
}

package tui

import (
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
)

const panicToast = "Unexpected error (see .sammi/logs/sammi.log)"

// safeModel keeps a panic in a screen from tearing down the terminal.
type safeModel struct {
	inner model
	log   *slog.Logger
}

func wrapSafe(m model, log *slog.Logger) safeModel {
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return safeModel{inner: m, log: log}
}

func (s safeModel) Init() tea.Cmd {
	return s.inner.Init()
}

func (s safeModel) Update(msg tea.Msg) (next tea.Model, cmd tea.Cmd) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		s.logPanic("tui.update", r, "msg_type", fmt.Sprintf("%T", msg))

		// A render goroutine still owns renderCh; drop it and go home.
		s.inner.scr = screenHome
		s.inner.running = false
		s.inner.renderCh = nil
		s.inner.toast = panicToast
		next, cmd = s, nil
	}()

	updated, c := s.inner.Update(msg)
	switch v := updated.(type) {
	case model:
		s.inner = v
	case safeModel:
		s = v
	}
	return s, c
}

func (s safeModel) View() (out string) {
	defer func() {
		if r := recover(); r != nil {
			s.logPanic("tui.view", r, "screen", int(s.inner.scr))
			out = panicToast
		}
	}()
	return s.inner.View()
}

func (s safeModel) logPanic(where string, r any, attrs ...any) {
	args := append([]any{"where", where, "panic", fmt.Sprint(r)}, attrs...)
	args = append(args, "stack", string(debug.Stack()))
	s.log.Error("panic.recovered", args...)
}

var _ tea.Model = safeModel{}

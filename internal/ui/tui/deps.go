package tui

import (
	"log/slog"

	"github.com/sammiviz/sammi/internal/ports"
)

type Deps struct {
	WorkspaceLocator     ports.WorkspaceLocator
	WorkspaceInitializer ports.WorkspaceInitializer

	// Opener overrides the system browser, mostly for tests.
	Opener ports.Opener

	Logger *slog.Logger
	Debug  bool
}

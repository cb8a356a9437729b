package tui

import (
	"github.com/sammiviz/sammi/internal/domain"
	"github.com/sammiviz/sammi/internal/usecase"
)

type workspaceRefreshedMsg struct {
	cwd   string
	found bool
	root  string
	err   error
}

type initWorkspaceDoneMsg struct {
	root string
	err  error
}

type plotsLoadedMsg struct {
	root string
	refs []domain.PlotRef
	err  error
}

type mapsLoadedMsg struct {
	root string
	recs []domain.MapRecord
	err  error
}

type modelsLoadedMsg struct {
	root string
	refs []domain.ModelRef
	err  error
}

type modelPreviewMsg struct {
	path   string
	report usecase.ModelReport
	err    error
}

type renderDoneMsg struct {
	plot string
	rec  domain.MapRecord
	err  error
}

type openDoneMsg struct {
	name string
	path string
	err  error
}

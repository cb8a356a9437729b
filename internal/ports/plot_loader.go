package ports

import "github.com/sammiviz/sammi/internal/domain"

// PlotLoader loads plot specs from a source (e.g., filesystem).
type PlotLoader interface {
	LoadPlot(path string) (domain.PlotSpec, error)
	ListPlots(root string) ([]domain.PlotRef, error)
}

package usecase

import (
	"context"
	"fmt"

	"github.com/sammiviz/sammi/internal/domain"
	"github.com/sammiviz/sammi/internal/usecase/serialize"
)

// ValidatePlot resolves a plot spec and builds its snippet without writing or
// opening anything.
type ValidatePlot struct {
	plots *PlotFromSpec
}

func NewValidatePlot(plots *PlotFromSpec) *ValidatePlot {
	return &ValidatePlot{plots: plots}
}

// PlotCheck describes a plot spec that resolved and built cleanly.
type PlotCheck struct {
	Name      string
	Model     string
	Selection string
	Subgraphs int
	Overlays  int
	HTMLName  string
	Bytes     int
}

func (uc *ValidatePlot) Execute(ctx context.Context, path string) (PlotCheck, error) {
	req, err := uc.plots.Execute(ctx, path)
	if err != nil {
		return PlotCheck{}, err
	}

	res, err := serialize.Build(serialize.Input{
		Model:       req.Model,
		Selection:   req.Selection,
		MapText:     req.MapText,
		Overlays:    req.Overlays,
		Secondaries: req.Secondaries,
		JSCode:      req.Options.JSCode,
	})
	if err != nil {
		return PlotCheck{}, fmt.Errorf("plot %q: %w", req.Name, err)
	}

	return PlotCheck{
		Name:      req.Name,
		Model:     req.ModelRef,
		Selection: domain.SelectionName(req.Selection),
		Subgraphs: res.Subgraphs,
		Overlays:  len(req.Overlays),
		HTMLName:  req.Options.HTMLName,
		Bytes:     len(res.Code),
	}, nil
}

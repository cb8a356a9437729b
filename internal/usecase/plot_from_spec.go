package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/sammiviz/sammi/internal/domain"
	"github.com/sammiviz/sammi/internal/ports"
	"github.com/sammiviz/sammi/internal/usecase/extract"
)

// PlotFromSpec resolves a plot spec into an in-memory PlotRequest: it loads the
// model, applies a flux solution, reads flux and overlay documents and fills the
// output options from the workspace defaults.
type PlotFromSpec struct {
	plots    ports.PlotLoader
	models   ports.ModelLoader
	datasets ports.DatasetLoader
	docs     ports.DocumentSource
	defaults domain.DefaultsConfig
	log      *slog.Logger
}

type PlotOption func(*PlotFromSpec)

func WithDefaults(d domain.DefaultsConfig) PlotOption {
	return func(uc *PlotFromSpec) { uc.defaults = d }
}

func WithPlotLogger(log *slog.Logger) PlotOption {
	return func(uc *PlotFromSpec) {
		if log != nil {
			uc.log = log
		}
	}
}

func NewPlotFromSpec(pl ports.PlotLoader, ml ports.ModelLoader, dl ports.DatasetLoader, ds ports.DocumentSource, opts ...PlotOption) *PlotFromSpec {
	uc := &PlotFromSpec{
		plots:    pl,
		models:   ml,
		datasets: dl,
		docs:     ds,
		defaults: domain.DefaultConfig().Defaults,
		log:      discardLogger(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute loads the plot spec at path and resolves it.
func (uc *PlotFromSpec) Execute(ctx context.Context, path string) (domain.PlotRequest, error) {
	spec, err := uc.plots.LoadPlot(path)
	if err != nil {
		return domain.PlotRequest{}, err
	}
	return uc.Resolve(ctx, spec)
}

// Resolve turns an already loaded spec into a request.
func (uc *PlotFromSpec) Resolve(ctx context.Context, spec domain.PlotSpec) (domain.PlotRequest, error) {
	docs := newDocCache(uc.docs)

	model, err := uc.models.LoadModel(ctx, spec.Model)
	if err != nil {
		return domain.PlotRequest{}, err
	}
	uc.log.Debug("plot.model_loaded", "model", spec.Model,
		"reactions", len(model.Reactions), "metabolites", len(model.Metabolites))

	if spec.Solution != nil {
		fluxes, err := readNumbers(ctx, docs, *spec.Solution)
		if err != nil {
			return domain.PlotRequest{}, err
		}
		n := model.ApplyFluxes(fluxes)
		uc.log.Debug("plot.solution_applied", "location", spec.Solution.Location, "matched", n)
	}

	req := domain.PlotRequest{
		Name:        spec.Name,
		ModelRef:    spec.Model,
		Model:       model,
		Secondaries: spec.Secondaries,
	}

	req.Selection, req.MapText, err = uc.selection(ctx, docs, spec.Select)
	if err != nil {
		return domain.PlotRequest{}, err
	}

	req.Overlays, err = uc.overlays(ctx, docs, spec.Overlays)
	if err != nil {
		return domain.PlotRequest{}, err
	}

	req.Options, err = uc.options(spec.Output)
	if err != nil {
		return domain.PlotRequest{}, err
	}
	return req, nil
}

func (uc *PlotFromSpec) selection(ctx context.Context, docs *docCache, s domain.SelectionSpec) (domain.Selection, string, error) {
	switch {
	case s.Map != "":
		b, err := docs.read(ctx, s.Map)
		if err != nil {
			return nil, "", err
		}
		return domain.MapFile{Path: s.Map}, string(b), nil

	case s.Field != "":
		return domain.FieldPartition{Field: s.Field}, "", nil

	case len(s.Reactions) > 0:
		return domain.ReactionList{IDs: s.Reactions}, "", nil

	case len(s.Subgraphs) > 0:
		out := make([]domain.Subgraph, 0, len(s.Subgraphs))
		for _, sg := range s.Subgraphs {
			flux := sg.Flux
			if sg.FluxSource != nil {
				values, err := readNumbers(ctx, docs, *sg.FluxSource)
				if err != nil {
					return nil, "", err
				}
				flux = extract.Lookup(values, sg.Reactions)
			}
			sub, err := domain.NewSubgraph(sg.Name, sg.Reactions, flux)
			if err != nil {
				return nil, "", err
			}
			out = append(out, sub)
		}
		return domain.SubgraphList{Subgraphs: out}, "", nil

	default:
		return domain.WholeModel{}, "", nil
	}
}

// overlays resolves every overlay concurrently; the result keeps spec order.
func (uc *PlotFromSpec) overlays(ctx context.Context, docs *docCache, specs []domain.OverlaySpec) ([]domain.DataOverlay, error) {
	if len(specs) == 0 {
		return nil, nil
	}

	out := make([]domain.DataOverlay, len(specs))
	g, gctx := errgroup.WithContext(ctx)
	for i, spec := range specs {
		g.Go(func() error {
			ov, err := uc.overlay(gctx, docs, spec)
			if err != nil {
				return fmt.Errorf("overlay %d: %w", i+1, err)
			}
			out[i] = ov
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *PlotFromSpec) overlay(ctx context.Context, docs *docCache, spec domain.OverlaySpec) (domain.DataOverlay, error) {
	if spec.Ref != "" {
		ds, err := uc.datasets.LoadDataset(spec.Ref)
		if err != nil {
			return domain.DataOverlay{}, err
		}
		spec = ds
	}

	ids, values := spec.IDs, spec.Values
	conditions := spec.Conditions

	if spec.Source != nil {
		body, err := docs.read(ctx, spec.Source.Location)
		if err != nil {
			return domain.DataOverlay{}, err
		}
		ids, values, err = extract.Table(body, spec.Source.Path)
		if err != nil {
			return domain.DataOverlay{}, withPath(err, spec.Source.Location)
		}
		if len(conditions) == 0 && len(values) > 0 {
			conditions = conditionNames(len(values[0]))
		}
		uc.log.Debug("plot.overlay_read", "location", spec.Source.Location, "ids", len(ids), "conditions", len(conditions))
	}

	return domain.NewDataOverlay(spec.Group, spec.Kind, values, ids, conditions)
}

func (uc *PlotFromSpec) options(out domain.OutputSpec) (domain.Options, error) {
	name := out.HTMLName
	if name == "" {
		name = uc.defaults.HTMLName
	}
	load := uc.defaults.Open
	if out.Load != nil {
		load = *out.Load
	}
	return domain.NewOptions(name, load, out.JSCode)
}

// conditionNames labels unnamed columns condition_1..condition_n.
func conditionNames(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("condition_%d", i+1)
	}
	return out
}

func readNumbers(ctx context.Context, docs *docCache, src domain.ValueSource) (map[string]float64, error) {
	body, err := docs.read(ctx, src.Location)
	if err != nil {
		return nil, err
	}
	values, err := extract.Numbers(body, src.Path)
	if err != nil {
		return nil, withPath(err, src.Location)
	}
	return values, nil
}

func withPath(err error, path string) error {
	var oe *domain.OpError
	if errors.As(err, &oe) && oe.Path == "" {
		c := *oe
		c.Path = path
		return &c
	}
	return err
}

// docCache reads each location once per resolution, even when several
// overlays ask for it at the same time.
type docCache struct {
	src   ports.DocumentSource
	group singleflight.Group

	mu   sync.Mutex
	docs map[string][]byte
}

func newDocCache(src ports.DocumentSource) *docCache {
	return &docCache{src: src, docs: map[string][]byte{}}
}

func (c *docCache) read(ctx context.Context, location string) ([]byte, error) {
	c.mu.Lock()
	b, ok := c.docs[location]
	c.mu.Unlock()
	if ok {
		return b, nil
	}

	v, err, _ := c.group.Do(location, func() (any, error) {
		c.mu.Lock()
		b, ok := c.docs[location]
		c.mu.Unlock()
		if ok {
			return b, nil
		}

		b, err := c.src.Read(ctx, location)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.docs[location] = b
		c.mu.Unlock()
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

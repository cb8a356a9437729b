// Package workspace wires the adapters of one sammi workspace together for the
// CLI, the TUI and the HTTP server.
package workspace

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/sammiviz/sammi/internal/domain"
	"github.com/sammiviz/sammi/internal/infra/browser"
	"github.com/sammiviz/sammi/internal/infra/fetch"
	"github.com/sammiviz/sammi/internal/infra/fsworkspace"
	"github.com/sammiviz/sammi/internal/infra/mapstore"
	"github.com/sammiviz/sammi/internal/infra/modelfile"
	"github.com/sammiviz/sammi/internal/infra/workspacefinder"
	"github.com/sammiviz/sammi/internal/infra/yamldata"
	"github.com/sammiviz/sammi/internal/infra/yamlplot"
	"github.com/sammiviz/sammi/internal/ports"
	"github.com/sammiviz/sammi/internal/usecase"
)

type Workspace struct {
	Root       string
	Config     domain.Config
	BrowserDir string

	Docs      *fetch.Source
	Models    *modelfile.Loader
	Plots     *yamlplot.Loader
	Datasets  *yamldata.Loader
	Maps      *mapstore.Store
	Templates *fsworkspace.TemplateSource
	Opener    ports.Opener

	log *slog.Logger
}

type Option func(*Workspace)

// WithOpener replaces the system browser opener.
func WithOpener(o ports.Opener) Option {
	return func(w *Workspace) { w.Opener = o }
}

func WithLogger(log *slog.Logger) Option {
	return func(w *Workspace) {
		if log != nil {
			w.log = log
		}
	}
}

// Open loads sammi.yaml from root and builds every adapter from it.
func Open(root string, opts ...Option) (*Workspace, error) {
	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		return nil, err
	}

	browserDir := workspacefinder.BrowserDir(root, cfg)
	docs := fetch.NewSource(root)

	w := &Workspace{
		Root:       root,
		Config:     cfg,
		BrowserDir: browserDir,
		Docs:       docs,
		Models:     modelfile.NewLoader(root, docs, modelfile.WithModelsDir(cfg.Paths.ModelsDir)),
		Plots:      yamlplot.NewLoader(yamlplot.WithPlotsDir(cfg.Paths.PlotsDir)),
		Datasets:   yamldata.NewLoader(root, yamldata.WithDataDir(cfg.Paths.DataDir)),
		Maps:       mapstore.New(root, browserDir, cfg, mapstore.WithIndex(cfg.History.Enabled)),
		Templates:  fsworkspace.NewTemplateSource(browserDir, cfg.Browser.Template),
		Opener:     browser.NewOpener(),
		log:        slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Resolver resolves plot specs against this workspace.
func (w *Workspace) Resolver() *usecase.PlotFromSpec {
	return usecase.NewPlotFromSpec(w.Plots, w.Models, w.Datasets, w.Docs,
		usecase.WithDefaults(w.Config.Defaults),
		usecase.WithPlotLogger(w.log),
	)
}

// Renderer writes maps into the browser directory.
func (w *Workspace) Renderer() *usecase.RenderMap {
	return usecase.NewRenderMap(w.Templates, w.Maps, w.Opener,
		usecase.WithMarker(w.Config.Browser.Marker),
		usecase.WithRenderLogger(w.log),
	)
}

// FindPlot accepts a plot name, a file stem, or a path relative to the current
// directory or the workspace root.
func (w *Workspace) FindPlot(nameOrPath string) (string, error) {
	in := strings.TrimSpace(nameOrPath)
	if in == "" {
		return "", &domain.OpError{
			Op:   "workspace.findplot",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("plot name is required: %w", domain.ErrInvalidConfig),
		}
	}

	if looksLikePath(in) || hasYAMLExt(in) {
		if filepath.IsAbs(in) {
			return filepath.Clean(in), nil
		}
		if fileExists(in) {
			abs, err := filepath.Abs(in)
			if err == nil {
				return abs, nil
			}
		}
		p := filepath.Join(w.Root, in)
		if fileExists(p) {
			return p, nil
		}
		if hasYAMLExt(in) && !looksLikePath(in) {
			return filepath.Join(w.Root, w.Config.Paths.PlotsDir, in), nil
		}
		return p, nil
	}
	return w.Plots.Find(w.Root, in)
}

// LoadPlot finds and loads a plot spec.
func (w *Workspace) LoadPlot(nameOrPath string) (domain.PlotSpec, error) {
	path, err := w.FindPlot(nameOrPath)
	if err != nil {
		return domain.PlotSpec{}, err
	}
	return w.Plots.LoadPlot(path)
}

// RenderSpec resolves and renders a loaded spec. adjust, when set, can change
// the request before it is rendered.
func (w *Workspace) RenderSpec(ctx context.Context, spec domain.PlotSpec, adjust func(*domain.PlotRequest)) (domain.MapRecord, error) {
	req, err := w.Resolver().Resolve(ctx, spec)
	if err != nil {
		return domain.MapRecord{}, err
	}
	if adjust != nil {
		adjust(&req)
	}
	return w.Renderer().Execute(ctx, req)
}

// RenderPlot finds, resolves and renders a plot spec without opening it.
func (w *Workspace) RenderPlot(ctx context.Context, nameOrPath string) (domain.MapRecord, error) {
	spec, err := w.LoadPlot(nameOrPath)
	if err != nil {
		return domain.MapRecord{}, err
	}
	return w.RenderSpec(ctx, spec, func(r *domain.PlotRequest) { r.Options.Load = false })
}

// WatchFiles lists the local files a spec reads. URLs are skipped.
func (w *Workspace) WatchFiles(spec domain.PlotSpec) []string {
	in := usecase.InputsOf(spec)

	var out []string
	seen := map[string]bool{}
	add := func(p string) {
		if p == "" || seen[p] {
			return
		}
		seen[p] = true
		out = append(out, p)
	}

	if in.Spec != "" {
		abs, err := filepath.Abs(in.Spec)
		if err == nil {
			add(abs)
		}
	}
	if in.Model != "" && !fetch.IsURL(in.Model) {
		add(w.Docs.Path(w.Models.Locate(in.Model)))
	}
	for _, d := range in.Documents {
		if !fetch.IsURL(d) {
			add(w.Docs.Path(d))
		}
	}
	for _, ref := range in.Datasets {
		add(w.Datasets.Path(ref))
	}
	return out
}

func looksLikePath(s string) bool {
	return strings.Contains(s, "/") || strings.Contains(s, string(filepath.Separator))
}

func hasYAMLExt(s string) bool {
	ext := strings.ToLower(filepath.Ext(s))
	return ext == ".yaml" || ext == ".yml"
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

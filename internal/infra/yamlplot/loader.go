package yamlplot

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sammiviz/sammi/internal/domain"
	"github.com/sammiviz/sammi/internal/infra/config"
	"github.com/sammiviz/sammi/internal/ports"
)

type Loader struct {
	plotsDir string
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{plotsDir: "plots"}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type Option func(*Loader)

func WithPlotsDir(dir string) Option {
	return func(l *Loader) { l.plotsDir = dir }
}

var _ ports.PlotLoader = (*Loader)(nil)

func (l *Loader) LoadPlot(path string) (domain.PlotSpec, error) {
	return config.LoadPlot(path)
}

// ListPlots lists plot specs in the plots directory, sorted by name.
// A spec without a name is listed under its file name.
func (l *Loader) ListPlots(root string) ([]domain.PlotRef, error) {
	dir := filepath.Join(root, l.plotsDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "yamlplot.list",
			Kind: domain.KindNotFound,
			Path: dir,
			Err:  err,
		}
	}

	var refs []domain.PlotRef
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}

		p := filepath.Join(dir, name)
		n, _ := config.ReadName(p)
		if strings.TrimSpace(n) == "" {
			n = strings.TrimSuffix(name, filepath.Ext(name))
		}

		refs = append(refs, domain.PlotRef{Name: n, Path: p})
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

// Find resolves a plot by name or file stem, or accepts a path to a spec file.
func (l *Loader) Find(root, nameOrPath string) (string, error) {
	if strings.HasSuffix(nameOrPath, ".yaml") || strings.HasSuffix(nameOrPath, ".yml") || strings.ContainsAny(nameOrPath, `/\`) {
		return filepath.Clean(nameOrPath), nil
	}

	refs, err := l.ListPlots(root)
	if err != nil {
		return "", err
	}
	for _, r := range refs {
		stem := strings.TrimSuffix(filepath.Base(r.Path), filepath.Ext(r.Path))
		if r.Name == nameOrPath || stem == nameOrPath {
			return r.Path, nil
		}
	}
	return "", &domain.OpError{
		Op:   "yamlplot.find",
		Kind: domain.KindNotFound,
		Path: filepath.Join(root, l.plotsDir),
		Err:  domain.ErrNotFound,
	}
}

package yamldata

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sammiviz/sammi/internal/domain"
	"github.com/sammiviz/sammi/internal/infra/config"
	"github.com/sammiviz/sammi/internal/ports"
)

// Loader reads reusable overlays from the data directory.
type Loader struct {
	rootDir string
	dataDir string
}

type Option func(*Loader)

func WithDataDir(dir string) Option {
	return func(l *Loader) { l.dataDir = dir }
}

func NewLoader(root string, opts ...Option) *Loader {
	l := &Loader{
		rootDir: root,
		dataDir: "data",
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ ports.DatasetLoader = (*Loader)(nil)

// LoadDataset accepts either a dataset name (e.g., "expression") or a path to a YAML file.
func (l *Loader) LoadDataset(nameOrPath string) (domain.OverlaySpec, error) {
	return config.LoadDataset(l.Path(nameOrPath))
}

func (l *Loader) ListDatasets(root string) ([]domain.DatasetRef, error) {
	dir := filepath.Join(root, l.dataDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "yamldata.list",
			Kind: domain.KindNotFound,
			Path: dir,
			Err:  err,
		}
	}

	var refs []domain.DatasetRef
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !isYAML(name) {
			continue
		}
		refs = append(refs, domain.DatasetRef{
			Name: strings.TrimSuffix(name, filepath.Ext(name)),
			Path: filepath.Join(dir, name),
		})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

// Path returns the file a dataset name or path refers to.
func (l *Loader) Path(nameOrPath string) string {
	if isYAML(nameOrPath) || strings.ContainsAny(nameOrPath, `/\`) {
		p := filepath.Clean(nameOrPath)
		if !filepath.IsAbs(p) {
			p = filepath.Join(l.rootDir, p)
		}
		return p
	}

	base := filepath.Join(l.rootDir, l.dataDir, nameOrPath)
	if _, err := os.Stat(base + ".yml"); err == nil {
		return base + ".yml"
	}
	return base + ".yaml"
}

func isYAML(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

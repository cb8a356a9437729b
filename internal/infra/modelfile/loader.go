package modelfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sammiviz/sammi/internal/domain"
	"github.com/sammiviz/sammi/internal/ports"
)

// Loader reads COBRA models (.json, .yml, .yaml) through a DocumentSource.
type Loader struct {
	src       ports.DocumentSource
	root      string
	modelsDir string
}

type Option func(*Loader)

func WithModelsDir(dir string) Option {
	return func(l *Loader) { l.modelsDir = dir }
}

func NewLoader(root string, src ports.DocumentSource, opts ...Option) *Loader {
	l := &Loader{src: src, root: root, modelsDir: "models"}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ ports.ModelLoader = (*Loader)(nil)

// LoadModel accepts a model name from the models directory ("e_coli_core"),
// a workspace path, or an http(s) URL.
func (l *Loader) LoadModel(ctx context.Context, location string) (*domain.Model, error) {
	location = l.Locate(location)

	b, err := l.src.Read(ctx, location)
	if err != nil {
		return nil, err
	}

	var cm cobraModel
	switch format(location, b) {
	case "yaml":
		cm, err = decodeYAML(b)
	default:
		cm, err = decodeJSON(b)
	}
	if err != nil {
		return nil, &domain.OpError{
			Op:   "modelfile.decode",
			Kind: domain.KindInvalidData,
			Path: location,
			Err:  fmt.Errorf("%w: %w", err, domain.ErrInvalidData),
		}
	}

	m, err := toDomain(cm)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "modelfile.validate",
			Kind: domain.KindInvalidData,
			Path: location,
			Err:  fmt.Errorf("%w: %w", err, domain.ErrInvalidData),
		}
	}
	if m.ID == "" {
		m.ID = baseName(location)
	}
	return m, nil
}

func (l *Loader) ListModels(root string) ([]domain.ModelRef, error) {
	dir := filepath.Join(root, l.modelsDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "modelfile.list",
			Kind: domain.KindNotFound,
			Path: dir,
			Err:  err,
		}
	}

	var refs []domain.ModelRef
	for _, e := range entries {
		if e.IsDir() || !isModelFile(e.Name()) {
			continue
		}
		refs = append(refs, domain.ModelRef{
			Name: baseName(e.Name()),
			Path: filepath.Join(dir, e.Name()),
		})
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

// Locate maps a bare model name to the first matching file in the models directory.
func (l *Loader) Locate(location string) string {
	location = strings.TrimSpace(location)
	if location == "" || strings.ContainsAny(location, `/\`) || strings.Contains(location, "://") || filepath.Ext(location) != "" {
		return location
	}
	for _, ext := range []string{".json", ".yml", ".yaml"} {
		rel := filepath.Join(l.modelsDir, location+ext)
		if _, err := os.Stat(filepath.Join(l.root, rel)); err == nil {
			return filepath.ToSlash(rel)
		} else if !errors.Is(err, fs.ErrNotExist) {
			break
		}
	}
	return location
}

func format(location string, b []byte) string {
	loc := strings.ToLower(location)
	if i := strings.IndexAny(loc, "?#"); i >= 0 && strings.Contains(loc, "://") {
		loc = loc[:i]
	}
	switch filepath.Ext(loc) {
	case ".yml", ".yaml":
		return "yaml"
	case ".json":
		return "json"
	}
	if t := bytes.TrimSpace(b); len(t) > 0 && t[0] == '{' {
		return "json"
	}
	return "yaml"
}

func isModelFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yml", ".yaml":
		return true
	}
	return false
}

func baseName(p string) string {
	b := filepath.Base(filepath.FromSlash(p))
	return strings.TrimSuffix(b, filepath.Ext(b))
}

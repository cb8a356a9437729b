package fsworkspace

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sammiviz/sammi/internal/domain"
	"github.com/sammiviz/sammi/internal/ports"
)

const embeddedTemplate = "templates/browser/index.html"

// TemplateSource reads the page template from the browser directory and falls
// back to the bundled one when the workspace has none.
type TemplateSource struct {
	path string
}

// NewTemplateSource points at <browserDir>/<name>.
func NewTemplateSource(browserDir, name string) *TemplateSource {
	if name == "" {
		name = "index.html"
	}
	return &TemplateSource{path: filepath.Join(browserDir, name)}
}

var _ ports.TemplateSource = (*TemplateSource)(nil)

func (s *TemplateSource) LoadTemplate() (string, error) {
	b, err := os.ReadFile(s.path)
	if err == nil {
		return string(b), nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", &domain.OpError{
			Op:   "fsworkspace.template",
			Kind: domain.KindExecution,
			Path: s.path,
			Err:  err,
		}
	}
	return DefaultTemplate()
}

// DefaultTemplate is the bundled browser page.
func DefaultTemplate() (string, error) {
	b, err := fs.ReadFile(templatesFS, embeddedTemplate)
	if err != nil {
		return "", &domain.OpError{
			Op:   "fsworkspace.template",
			Kind: domain.KindExecution,
			Path: embeddedTemplate,
			Err:  err,
		}
	}
	return string(b), nil
}

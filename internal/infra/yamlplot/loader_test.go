package yamlplot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sammiviz/sammi/internal/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLoadPlot_Valid(t *testing.T) {
	p := filepath.Join(t.TempDir(), "demo.yaml")
	writeFile(t, p, `
name: Demo
model: models/toy.json
select:
  field: subsystem
secondaries: ["^h_.$"]
`)

	spec, err := NewLoader().LoadPlot(p)
	if err != nil {
		t.Fatalf("LoadPlot error: %v", err)
	}
	if spec.Name != "Demo" {
		t.Fatalf("expected name=Demo, got=%s", spec.Name)
	}
	if spec.Select.Field != "subsystem" {
		t.Fatalf("expected field selection, got %+v", spec.Select)
	}
}

func TestLoadPlot_InvalidField(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, p, "model: models/toy.json\nselect:\n  field: pathway\n")

	_, err := NewLoader().LoadPlot(p)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid_config, got %v", err)
	}
	if !strings.Contains(err.Error(), "select.field") {
		t.Fatalf("expected field path in error, got %v", err)
	}
}

func TestListPlots_SortedWithFallbackNames(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "plots", "b.yaml"), "name: Alpha\nmodel: m.json\n")
	writeFile(t, filepath.Join(root, "plots", "zeta.yml"), "model: m.json\n")
	writeFile(t, filepath.Join(root, "plots", "notes.txt"), "x")

	refs, err := NewLoader().ListPlots(root)
	if err != nil {
		t.Fatalf("ListPlots error: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 plots, got %d", len(refs))
	}
	if refs[0].Name != "Alpha" || refs[1].Name != "zeta" {
		t.Fatalf("unexpected order/names: %+v", refs)
	}
}

func TestListPlots_MissingDir(t *testing.T) {
	_, err := NewLoader(WithPlotsDir("nope")).ListPlots(t.TempDir())
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "plots", "glycolysis.yaml")
	writeFile(t, path, "name: Upper glycolysis\nmodel: m.json\n")

	l := NewLoader()
	for _, q := range []string{"glycolysis", "Upper glycolysis"} {
		got, err := l.Find(root, q)
		if err != nil {
			t.Fatalf("Find(%q) error: %v", q, err)
		}
		if got != path {
			t.Fatalf("Find(%q) = %s, want %s", q, got, path)
		}
	}

	if _, err := l.Find(root, "missing"); !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
	if got, _ := l.Find(root, "other/spec.yaml"); got != filepath.Clean("other/spec.yaml") {
		t.Fatalf("expected paths to pass through, got %s", got)
	}
}

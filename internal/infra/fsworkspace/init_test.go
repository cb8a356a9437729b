package fsworkspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sammiviz/sammi/internal/domain"
)

func TestInitializer_Init_CreatesWorkspaceFiles(t *testing.T) {
	tmp := t.TempDir()

	i := NewInitializer()
	if err := i.Init(domain.WorkspaceSpec{Root: tmp}, false); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	assertFileExists(t, filepath.Join(tmp, "sammi.yaml"))
	assertFileExists(t, filepath.Join(tmp, "models", "toy.json"))
	assertFileExists(t, filepath.Join(tmp, "solutions", "toy_fba.json"))
	assertFileExists(t, filepath.Join(tmp, "plots", "01_whole_model.yaml"))
	assertFileExists(t, filepath.Join(tmp, "plots", "06_overlays.yaml"))
	assertFileExists(t, filepath.Join(tmp, "data", "expression.yaml"))
	assertFileExists(t, filepath.Join(tmp, "browser", "index.html"))
	assertFileExists(t, filepath.Join(tmp, ".sammi", "maps"))

	b, err := os.ReadFile(filepath.Join(tmp, "browser", "index.html"))
	if err != nil {
		t.Fatalf("read template: %v", err)
	}
	if !strings.Contains(string(b), domain.DefaultMarker) {
		t.Fatalf("expected template to carry the marker")
	}
}

func TestInitializer_Init_SkipsExistingFilesUnlessForce(t *testing.T) {
	tmp := t.TempDir()

	cfgPath := filepath.Join(tmp, "sammi.yaml")
	if err := os.WriteFile(cfgPath, []byte("custom\n"), 0o644); err != nil {
		t.Fatalf("write existing sammi.yaml: %v", err)
	}

	i := NewInitializer()

	if err := i.Init(domain.WorkspaceSpec{Root: tmp}, false); err != nil {
		t.Fatalf("Init (force=false) error: %v", err)
	}

	b, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("read sammi.yaml: %v", err)
	}
	if string(b) != "custom\n" {
		t.Fatalf("expected sammi.yaml preserved, got %q", string(b))
	}

	if err := i.Init(domain.WorkspaceSpec{Root: tmp}, true); err != nil {
		t.Fatalf("Init (force=true) error: %v", err)
	}

	b, err = os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("read sammi.yaml after force: %v", err)
	}
	if !strings.Contains(string(b), "sammi:") {
		t.Fatalf("expected sammi.yaml overwritten with template, got %q", string(b))
	}
}

func TestTemplateSource_PrefersWorkspaceFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("mine "+domain.DefaultMarker), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := NewTemplateSource(dir, "").LoadTemplate()
	if err != nil {
		t.Fatalf("LoadTemplate error: %v", err)
	}
	if !strings.HasPrefix(got, "mine ") {
		t.Fatalf("expected workspace template, got %q", got)
	}
}

func TestTemplateSource_FallsBackToBundled(t *testing.T) {
	got, err := NewTemplateSource(t.TempDir(), "index.html").LoadTemplate()
	if err != nil {
		t.Fatalf("LoadTemplate error: %v", err)
	}
	if !strings.Contains(got, domain.DefaultMarker) {
		t.Fatalf("expected bundled template with marker")
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file %s, stat err=%v", path, err)
	}
}

package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sammiviz/sammi/internal/domain"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func initWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	out, err := runCLI(t, "init", root)
	if err != nil {
		t.Fatalf("init failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Workspace ready") {
		t.Fatalf("unexpected init output:\n%s", out)
	}
	return root
}

// --- command structure ---

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	cmd := newRootCmd()
	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, expected := range []string{"plot", "open", "init", "maps", "models", "plots", "validate", "serve", "snapshot", "version"} {
		if !names[expected] {
			t.Errorf("expected subcommand %q to be registered", expected)
		}
	}
}

func TestPlotCmd_Flags(t *testing.T) {
	cmd := plotCmd(&globalFlags{})
	for _, flag := range []string{"model", "solution", "solution-path", "map", "field", "reactions", "secondary", "html", "no-open", "jscode", "watch"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected --%s flag on plot command", flag)
		}
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	cmd := newRootCmd()
	for _, flag := range []string{"workspace", "debug"} {
		if cmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("expected persistent --%s flag", flag)
		}
	}
}

func TestInitCmd_Flags(t *testing.T) {
	if initCmd().Flags().Lookup("force") == nil {
		t.Error("expected --force flag on init command")
	}
}

// --- resolveWorkspaceRoot ---

func TestResolveWorkspaceRoot_ExplicitPath(t *testing.T) {
	tmp := t.TempDir()
	got, err := resolveWorkspaceRoot(tmp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != tmp {
		t.Errorf("expected %q, got %q", tmp, got)
	}
}

func TestResolveWorkspaceRoot_RelativePath(t *testing.T) {
	got, err := resolveWorkspaceRoot(".")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("expected absolute path, got %q", got)
	}
}

// --- plot spec flags ---

func TestAdHocSpec_RequiresModel(t *testing.T) {
	pf := &plotFlags{}
	_, err := pf.adHocSpec()
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid config, got %v", err)
	}
}

func TestAdHocSpec_OneSelectionOnly(t *testing.T) {
	pf := &plotFlags{model: "toy", field: "subsystem", reactions: []string{"PGI"}}
	if _, err := pf.adHocSpec(); !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid config, got %v", err)
	}

	pf = &plotFlags{model: "toy", field: "colour"}
	if _, err := pf.adHocSpec(); !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid config for unknown field, got %v", err)
	}
}

func TestAdHocSpec_BuildsSpec(t *testing.T) {
	pf := &plotFlags{
		model:        "toy",
		solution:     "solutions/toy_fba.json",
		solutionPath: "$.fluxes",
		reactions:    []string{"PGI", "PFK"},
		secondaries:  []string{"^h_.$"},
		html:         "mine",
		noOpen:       true,
	}
	spec, err := pf.adHocSpec()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Model != "toy" || len(spec.Select.Reactions) != 2 {
		t.Fatalf("unexpected spec %+v", spec)
	}
	if spec.Solution == nil || spec.Solution.Path != "$.fluxes" {
		t.Fatalf("expected solution source, got %+v", spec.Solution)
	}
	if spec.Output.HTMLName != "mine" || spec.Output.Load == nil || *spec.Output.Load {
		t.Fatalf("unexpected output %+v", spec.Output)
	}
	if len(spec.Secondaries) != 1 {
		t.Fatalf("unexpected secondaries %v", spec.Secondaries)
	}
}

func TestOverride_AppendsSecondaries(t *testing.T) {
	pf := &plotFlags{secondaries: []string{"^b$"}, jscode: "x()"}
	base := domain.PlotSpec{Secondaries: []string{"^a$"}}

	got := pf.override(base)
	if strings.Join(got.Secondaries, ",") != "^a$,^b$" {
		t.Fatalf("unexpected secondaries %v", got.Secondaries)
	}
	if len(base.Secondaries) != 1 {
		t.Fatalf("override must not touch the input spec")
	}
	if got.Output.JSCode != "x()" || got.Output.Load != nil {
		t.Fatalf("unexpected output %+v", got.Output)
	}
}

// --- end to end on a demo workspace ---

func TestPlotFromSpecWritesMap(t *testing.T) {
	root := initWorkspace(t)

	out, err := runCLI(t, "-w", root, "plot", "02_subsystems", "--no-open")
	if err != nil {
		t.Fatalf("plot failed: %v\n%s", err, out)
	}
	want := filepath.Join("browser", "subsystems.html")
	if !strings.Contains(out, "Wrote "+want) {
		t.Fatalf("unexpected output:\n%s", out)
	}

	b, err := os.ReadFile(filepath.Join(root, want))
	if err != nil {
		t.Fatalf("read map: %v", err)
	}
	if !strings.Contains(string(b), "filterWrapper(e)") {
		t.Fatalf("expected a subgraph map")
	}

	out, err = runCLI(t, "-w", root, "maps", "list")
	if err != nil {
		t.Fatalf("maps list failed: %v", err)
	}
	if !strings.Contains(out, "subsystems.html") || !strings.Contains(out, "Subsystems") {
		t.Fatalf("expected map in listing:\n%s", out)
	}
}

func TestPlotAdHoc(t *testing.T) {
	root := initWorkspace(t)

	out, err := runCLI(t, "-w", root, "plot", "--model", "toy", "--field", "compartment", "--html", "comp", "--no-open")
	if err != nil {
		t.Fatalf("plot failed: %v\n%s", err, out)
	}
	if _, err := os.Stat(filepath.Join(root, "browser", "comp.html")); err != nil {
		t.Fatalf("expected comp.html: %v", err)
	}

	_, err = runCLI(t, "-w", root, "plot", "--no-open")
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid config without spec or model, got %v", err)
	}
}

func TestPlotRejectsTemplateName(t *testing.T) {
	root := initWorkspace(t)

	_, err := runCLI(t, "-w", root, "plot", "--model", "toy", "--html", "index.html", "--no-open")
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid config, got %v", err)
	}
}

func TestListings(t *testing.T) {
	root := initWorkspace(t)

	out, err := runCLI(t, "-w", root, "plots", "list")
	if err != nil || !strings.Contains(out, "Whole model") {
		t.Fatalf("plots list: %v\n%s", err, out)
	}

	out, err = runCLI(t, "-w", root, "models", "list")
	if err != nil || !strings.Contains(out, "- toy") {
		t.Fatalf("models list: %v\n%s", err, out)
	}

	out, err = runCLI(t, "-w", root, "models", "inspect", "toy", "--field", "subsystem")
	if err != nil {
		t.Fatalf("models inspect: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Citric Acid Cycle") || !strings.Contains(out, "subsystem: 5 subgraph(s)") {
		t.Fatalf("unexpected inspect output:\n%s", out)
	}
}

func TestValidateDemoPlots(t *testing.T) {
	root := initWorkspace(t)

	out, err := runCLI(t, "-w", root, "validate")
	if err != nil {
		t.Fatalf("validate failed: %v\n%s", err, out)
	}
	if strings.Count(out, "OK ") != 7 {
		t.Fatalf("expected 7 OK lines:\n%s", out)
	}
}

func TestValidateReportsBrokenSpec(t *testing.T) {
	root := initWorkspace(t)
	bad := filepath.Join(root, "plots", "broken.yaml")
	if err := os.WriteFile(bad, []byte("model: toy\nselect:\n  field: colour\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "-w", root, "validate", "plots/broken.yaml")
	if err == nil {
		t.Fatalf("expected failure:\n%s", out)
	}
	if !strings.Contains(out, "FAIL") || !strings.Contains(out, "select.field") {
		t.Fatalf("expected field path in output:\n%s", out)
	}
}

func TestOpenMissingMap(t *testing.T) {
	root := initWorkspace(t)

	_, err := runCLI(t, "-w", root, "open", "nope")
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "sammi ") {
		t.Fatalf("unexpected version output %q", out)
	}
}

func TestValidateReportsTemplateWithoutMarker(t *testing.T) {
	root := initWorkspace(t)
	page := filepath.Join(root, "browser", "index.html")
	if err := os.WriteFile(page, []byte("<html></html>"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "-w", root, "validate")
	if err == nil {
		t.Fatalf("expected failure:\n%s", out)
	}
	if !strings.Contains(out, "FAIL template") {
		t.Fatalf("expected template failure:\n%s", out)
	}
}

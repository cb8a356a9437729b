package workspace

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sammiviz/sammi/internal/domain"
	"github.com/sammiviz/sammi/internal/infra/fsworkspace"
)

type recordingOpener struct{ opened []string }

func (o *recordingOpener) Open(_ context.Context, target string) error {
	o.opened = append(o.opened, target)
	return nil
}

func newDemo(t *testing.T) (*Workspace, *recordingOpener) {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, fsworkspace.NewInitializer().Init(domain.WorkspaceSpec{Root: root}, false))

	op := &recordingOpener{}
	ws, err := Open(root, WithOpener(op))
	require.NoError(t, err)
	return ws, op
}

func TestDemoPlotsRender(t *testing.T) {
	ws, op := newDemo(t)

	refs, err := ws.Plots.ListPlots(ws.Root)
	require.NoError(t, err)
	require.Len(t, refs, 7)

	for _, ref := range refs {
		rec, err := ws.RenderPlot(context.Background(), ref.Path)
		require.NoError(t, err, "plot %s", ref.Name)

		b, err := os.ReadFile(rec.Path)
		require.NoError(t, err)
		html := string(b)
		assert.NotContains(t, html, domain.DefaultMarker, "plot %s", ref.Name)
		assert.Equal(t, ws.BrowserDir, filepath.Dir(rec.Path))
	}
	assert.Empty(t, op.opened, "RenderPlot never opens pages")

	maps, err := ws.Maps.ListMaps()
	require.NoError(t, err)
	assert.NotEmpty(t, maps)
}

func TestOverlayDemoContainsEveryReceiver(t *testing.T) {
	ws, _ := newDemo(t)

	rec, err := ws.RenderPlot(context.Background(), "06_overlays")
	require.NoError(t, err)

	b, err := os.ReadFile(rec.Path)
	require.NoError(t, err)
	for _, recv := range []string{
		"receivedTextFlux(dat)",
		"receivedTextSizeRxn(dat)",
		"receivedTextConcentration(dat)",
		"receivedTextSizeMet(dat)",
		"receivedTextWidth(dat)",
		"shelveList(",
		"filterWrapper(e)",
	} {
		assert.Contains(t, string(b), recv)
	}
}

func TestRenderSpecOpensWhenRequested(t *testing.T) {
	ws, op := newDemo(t)

	spec, err := ws.LoadPlot("Subsystems")
	require.NoError(t, err)

	rec, err := ws.RenderSpec(context.Background(), spec, nil)
	require.NoError(t, err)
	assert.Equal(t, "subsystems.html", rec.HTMLName)
	assert.Equal(t, []string{rec.Path}, op.opened)
}

func TestFindPlot(t *testing.T) {
	ws, _ := newDemo(t)

	byName, err := ws.FindPlot("Whole model")
	require.NoError(t, err)
	byStem, err := ws.FindPlot("01_whole_model")
	require.NoError(t, err)
	byPath, err := ws.FindPlot("plots/01_whole_model.yaml")
	require.NoError(t, err)

	assert.Equal(t, byName, byStem)
	assert.Equal(t, byName, byPath)

	_, err = ws.FindPlot("nope")
	assert.True(t, domain.IsKind(err, domain.KindNotFound), "got %v", err)

	_, err = ws.FindPlot("  ")
	assert.True(t, domain.IsKind(err, domain.KindInvalidConfig), "got %v", err)
}

func TestWatchFiles(t *testing.T) {
	ws, _ := newDemo(t)

	spec, err := ws.LoadPlot("06_overlays")
	require.NoError(t, err)

	files := ws.WatchFiles(spec)
	rel := make([]string, 0, len(files))
	for _, f := range files {
		r, err := filepath.Rel(ws.Root, f)
		require.NoError(t, err)
		rel = append(rel, filepath.ToSlash(r))
	}
	assert.Equal(t, []string{
		"plots/06_overlays.yaml",
		"models/toy.json",
		"solutions/toy_fba.json",
		"data/metabolomics.json",
		"data/expression.yaml",
	}, rel)
}

func TestOpenRejectsBadConfig(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "sammi.yaml"), []byte("sammi: [unclosed"), 0o644))

	_, err := Open(root)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "sammi.yaml") || domain.IsKind(err, domain.KindInvalidConfig))
}

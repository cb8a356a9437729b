package workspacefinder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sammiviz/sammi/internal/domain"
)

func writeConfig(t *testing.T, root, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(root, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFile), []byte(content), 0o644))
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ws")

	// Partial config (no paths/defaults)
	writeConfig(t, root, "sammi:\n  history:\n    enabled: false\n")

	cfg, err := LoadConfig(root)
	require.NoError(t, err)

	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, "browser", cfg.Browser.Dir)
	assert.Equal(t, "index.html", cfg.Browser.Template)
	assert.Equal(t, domain.DefaultMarker, cfg.Browser.Marker)
	assert.Equal(t, "models", cfg.Paths.ModelsDir)
	assert.Equal(t, "plots", cfg.Paths.PlotsDir)
	assert.Equal(t, "data", cfg.Paths.DataDir)
	assert.Equal(t, domain.DefaultHTMLName, cfg.Defaults.HTMLName)
	assert.True(t, cfg.Defaults.Open)
	assert.Equal(t, "127.0.0.1:8765", cfg.Serve.Addr)
}

func TestLoadConfig_ParsesValues(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `sammi:
  browser:
    dir: vendor/sammi
  defaults:
    html_name: latest
    open: false
  serve:
    addr: 0.0.0.0:9000
`)

	cfg, err := LoadConfig(root)
	require.NoError(t, err)

	assert.Equal(t, "vendor/sammi", cfg.Browser.Dir)
	assert.Equal(t, "latest.html", cfg.Defaults.HTMLName)
	assert.False(t, cfg.Defaults.Open)
	assert.Equal(t, "0.0.0.0:9000", cfg.Serve.Addr)
	assert.Equal(t, filepath.Join(root, "vendor/sammi"), BrowserDir(root, cfg))
}

func TestLoadConfig_RejectsIndexHTML(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "sammi:\n  defaults:\n    html_name: index.html\n")

	_, err := LoadConfig(root)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidConfig))
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestLoadConfig_DotenvOverrides(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "sammi: {}\n")
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"),
		[]byte("SAMMI_BROWSER_DIR=/opt/sammi\nSAMMI_NO_OPEN=1\n"), 0o644))

	cfg, err := LoadConfig(root)
	require.NoError(t, err)

	assert.Equal(t, "/opt/sammi", cfg.Browser.Dir)
	assert.False(t, cfg.Defaults.Open)
	assert.Equal(t, "/opt/sammi", BrowserDir(root, cfg))
}

func TestLoadConfig_ProcessEnvWins(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "sammi: {}\n")
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"),
		[]byte("SAMMI_SERVE_ADDR=127.0.0.1:1111\n"), 0o644))
	t.Setenv(EnvServeAddr, "127.0.0.1:2222")

	cfg, err := LoadConfig(root)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:2222", cfg.Serve.Addr)
}

package workspacefinder

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/sammiviz/sammi/internal/domain"
)

// Environment overrides, read from the process and from <root>/.env.
const (
	EnvBrowserDir = "SAMMI_BROWSER_DIR"
	EnvNoOpen     = "SAMMI_NO_OPEN"
	EnvServeAddr  = "SAMMI_SERVE_ADDR"
)

// LoadConfig loads sammi.yaml from the workspace root, applies defaults, then
// environment overrides. Process variables win over .env entries.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, ConfigFile)
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "workspacefinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	// Apply parsed values on top of defaults.
	s := y.Sammi
	setString(&cfg.Browser.Dir, s.Browser.Dir)
	setString(&cfg.Browser.Template, s.Browser.Template)
	setString(&cfg.Browser.Marker, s.Browser.Marker)
	setString(&cfg.Paths.ModelsDir, s.Paths.ModelsDir)
	setString(&cfg.Paths.PlotsDir, s.Paths.PlotsDir)
	setString(&cfg.Paths.DataDir, s.Paths.DataDir)
	setString(&cfg.Serve.Addr, s.Serve.Addr)
	if s.Defaults.HTMLName != "" {
		name, err := domain.NormalizeHTMLName(s.Defaults.HTMLName)
		if err != nil {
			return cfg, &domain.OpError{
				Op:   "workspacefinder.loadconfig",
				Kind: domain.KindInvalidConfig,
				Path: path,
				Err:  err,
			}
		}
		cfg.Defaults.HTMLName = name
	}
	if s.Defaults.Open != nil {
		cfg.Defaults.Open = *s.Defaults.Open
	}
	if s.History.Enabled != nil {
		cfg.History.Enabled = *s.History.Enabled
	}

	env, err := readDotenv(root)
	if err != nil {
		return cfg, err
	}
	applyEnv(&cfg, env)

	return cfg, nil
}

// BrowserDir resolves the browser directory against the workspace root.
func BrowserDir(root string, cfg domain.Config) string {
	if filepath.IsAbs(cfg.Browser.Dir) {
		return cfg.Browser.Dir
	}
	return filepath.Join(root, cfg.Browser.Dir)
}

func readDotenv(root string) (map[string]string, error) {
	path := filepath.Join(root, ".env")
	env, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, &domain.OpError{
			Op:   "workspacefinder.dotenv",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	return env, nil
}

func applyEnv(cfg *domain.Config, dotenv map[string]string) {
	get := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return strings.TrimSpace(v)
		}
		return strings.TrimSpace(dotenv[key])
	}

	setString(&cfg.Browser.Dir, get(EnvBrowserDir))
	setString(&cfg.Serve.Addr, get(EnvServeAddr))
	if v := get(EnvNoOpen); v != "" {
		if noOpen, err := strconv.ParseBool(v); err == nil && noOpen {
			cfg.Defaults.Open = false
		}
	}
}

func setString(dst *string, v string) {
	if strings.TrimSpace(v) != "" {
		*dst = strings.TrimSpace(v)
	}
}

type yamlConfig struct {
	Sammi struct {
		Browser struct {
			Dir      string `yaml:"dir"`
			Template string `yaml:"template"`
			Marker   string `yaml:"marker"`
		} `yaml:"browser"`

		Paths struct {
			ModelsDir string `yaml:"models_dir"`
			PlotsDir  string `yaml:"plots_dir"`
			DataDir   string `yaml:"data_dir"`
		} `yaml:"paths"`

		Defaults struct {
			HTMLName string `yaml:"html_name"`
			Open     *bool  `yaml:"open"`
		} `yaml:"defaults"`

		History struct {
			Enabled *bool `yaml:"enabled"`
		} `yaml:"history"`

		Serve struct {
			Addr string `yaml:"addr"`
		} `yaml:"serve"`
	} `yaml:"sammi"`
}

package domain

// DefaultMarker is the token in the browser template replaced by the generated code.
const DefaultMarker = "//MATLAB_CODE_HERE//"

// Config represents the sammi configuration loaded from sammi.yaml.
type Config struct {
	Browser  BrowserConfig
	Paths    PathsConfig
	Defaults DefaultsConfig
	History  HistoryConfig
	Serve    ServeConfig
}

// BrowserConfig locates the SAMMI browser assets and the page template among them.
type BrowserConfig struct {
	Dir      string
	Template string
	Marker   string
}

type PathsConfig struct {
	ModelsDir string
	PlotsDir  string
	DataDir   string
}

type DefaultsConfig struct {
	HTMLName string
	Open     bool
}

type HistoryConfig struct {
	Enabled bool
}

type ServeConfig struct {
	Addr string
}

// DefaultConfig provides sane defaults if sammi.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Browser: BrowserConfig{
			Dir:      "browser",
			Template: "index.html",
			Marker:   DefaultMarker,
		},
		Paths: PathsConfig{
			ModelsDir: "models",
			PlotsDir:  "plots",
			DataDir:   "data",
		},
		Defaults: DefaultsConfig{
			HTMLName: DefaultHTMLName,
			Open:     true,
		},
		History: HistoryConfig{Enabled: true},
		Serve:   ServeConfig{Addr: "127.0.0.1:8765"},
	}
}

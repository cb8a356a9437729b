package domain

// ValueSource points at a JSON document and a JSON path inside it.
// Location is a file path (workspace relative) or an http(s) URL.
type ValueSource struct {
	Location string
	Path     string
}

// SubgraphSpec is a subgraph as written in a plot spec, before flux sources are read.
type SubgraphSpec struct {
	Name       string
	Reactions  []string
	Flux       []float64
	FluxSource *ValueSource
}

// SelectionSpec holds at most one of its fields; all empty means the whole model.
type SelectionSpec struct {
	Map       string
	Field     string
	Reactions []string
	Subgraphs []SubgraphSpec
}

// OverlaySpec is a data overlay as written in a plot spec. Exactly one of
// Ref (a dataset name), Source (a JSON document) or the inline IDs/Values is set.
type OverlaySpec struct {
	Ref string

	Group      OverlayGroup
	Kind       OverlayKind
	Conditions []string

	IDs    []string
	Values [][]float64

	Source *ValueSource
}

// OutputSpec overrides the workspace output defaults.
type OutputSpec struct {
	HTMLName string
	Load     *bool
	JSCode   string
}

// PlotSpec describes one map: which model, which part of it, which data on top.
type PlotSpec struct {
	Name string
	Path string

	Model    string
	Solution *ValueSource

	Select      SelectionSpec
	Overlays    []OverlaySpec
	Secondaries []string
	Output      OutputSpec
}

// PlotRef is a lightweight reference to a plot spec on disk.
type PlotRef struct {
	Name string
	Path string
}

// PlotRequest is a fully resolved map request: everything is in memory.
type PlotRequest struct {
	Name string

	// ModelRef is the model location, kept for history only.
	ModelRef string
	Model    *Model

	Selection Selection
	// MapText is the saved map document when Selection is a MapFile.
	MapText string

	Overlays    []DataOverlay
	Secondaries []string
	Options     Options
}

package domain

import "time"

// WorkspaceSpec is the input of workspace initialization.
type WorkspaceSpec struct {
	Root string
}

// ModelRef is a lightweight reference to a model file on disk.
type ModelRef struct {
	Name string
	Path string
}

// DatasetRef is a lightweight reference to a dataset file on disk.
type DatasetRef struct {
	Name string
	Path string
}

// ModelSummary is a quick look at a model for listings and previews.
type ModelSummary struct {
	ID           string
	Name         string
	Reactions    int
	Metabolites  int
	Compartments []string
	Subsystems   []string
}

// MapPage is a rendered page ready to be stored.
type MapPage struct {
	HTMLName string
	Content  []byte

	Plot      string
	Model     string
	Selection string
	Subgraphs int
	Overlays  int
}

// MapRecord describes a stored page.
type MapRecord struct {
	ID        string
	HTMLName  string
	Path      string
	Plot      string
	Model     string
	Selection string
	Subgraphs int
	Overlays  int
	CreatedAt time.Time
}

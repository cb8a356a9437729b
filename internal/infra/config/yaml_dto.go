package config

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// YAMLFloats is a list of numbers where null marks a missing value (NaN).
// yaml.v3 drops null items from a plain []float64.
type YAMLFloats []float64

func (f *YAMLFloats) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: expected a list of numbers", n.Line)
	}
	out := make([]float64, 0, len(n.Content))
	for _, item := range n.Content {
		if item.Kind == yaml.ScalarNode && item.ShortTag() == "!!null" {
			out = append(out, math.NaN())
			continue
		}
		var v float64
		if err := item.Decode(&v); err != nil {
			return err
		}
		out = append(out, v)
	}
	*f = out
	return nil
}

type YAMLPlot struct {
	Name     string           `yaml:"name"`
	Model    string           `yaml:"model"`
	Solution *YAMLValueSource `yaml:"solution"`

	Select      YAMLSelect    `yaml:"select"`
	Overlays    []YAMLOverlay `yaml:"overlays"`
	Secondaries []string      `yaml:"secondaries"`
	Output      YAMLOutput    `yaml:"output"`
}

type YAMLValueSource struct {
	Location string `yaml:"location"`
	Path     string `yaml:"path"`
}

type YAMLSelect struct {
	Map       string         `yaml:"map"`
	Field     string         `yaml:"field"`
	Reactions []string       `yaml:"reactions"`
	Subgraphs []YAMLSubgraph `yaml:"subgraphs"`
}

type YAMLSubgraph struct {
	Name       string           `yaml:"name"`
	Reactions  []string         `yaml:"reactions"`
	Flux       YAMLFloats       `yaml:"flux"`
	FluxSource *YAMLValueSource `yaml:"flux_source"`
}

type YAMLOverlay struct {
	Ref string `yaml:"ref"`

	Group      string   `yaml:"group"`
	Kind       string   `yaml:"kind"`
	Conditions []string `yaml:"conditions"`

	IDs    []string     `yaml:"ids"`
	Values []YAMLFloats `yaml:"values"`

	Source *YAMLValueSource `yaml:"source"`
}

type YAMLOutput struct {
	HTML   string `yaml:"html"`
	Open   *bool  `yaml:"open"`
	JSCode string `yaml:"jscode"`
}

// YAMLDataset is a reusable overlay stored under the data directory.
type YAMLDataset struct {
	Name string `yaml:"name"`

	YAMLOverlay `yaml:",inline"`
}

package domain

import (
	"fmt"
	"math"
)

// Subgraph is a named subset of reactions, optionally annotated with flux values.
// A list of subgraphs partitions a model into separate maps in the browser.
type Subgraph struct {
	Name      string
	Reactions []string
	Flux      []float64
}

// NewSubgraph validates and builds a subgraph. A nil flux defaults to NaN for
// every reaction, which the browser draws without flux coloring.
func NewSubgraph(name string, reactions []string, flux []float64) (Subgraph, error) {
	if flux == nil {
		flux = make([]float64, len(reactions))
		for i := range flux {
			flux[i] = math.NaN()
		}
	}
	if len(flux) != len(reactions) {
		return Subgraph{}, invalidData("domain.subgraph",
			fmt.Sprintf("subgraph %q: number of flux values (%d) do not match reactions (%d)", name, len(flux), len(reactions)))
	}

	return Subgraph{
		Name:      name,
		Reactions: append([]string(nil), reactions...),
		Flux:      append([]float64(nil), flux...),
	}, nil
}

// HasFlux reports whether any flux value is set.
func (s Subgraph) HasFlux() bool {
	for _, f := range s.Flux {
		if !math.IsNaN(f) {
			return true
		}
	}
	return false
}

// UnionReactions returns the distinct reactions of all subgraphs in first-seen order.
func UnionReactions(subgraphs []Subgraph) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range subgraphs {
		for _, r := range s.Reactions {
			if seen[r] {
				continue
			}
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}

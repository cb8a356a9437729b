package modelfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/sammiviz/sammi/internal/domain"
)

// cobraModel mirrors the COBRA JSON/YAML model layout. Unknown keys
// (genes, annotation, notes, version) are ignored.
type cobraModel struct {
	ID           string            `json:"id" yaml:"id"`
	Name         string            `json:"name" yaml:"name"`
	Compartments map[string]string `json:"compartments" yaml:"compartments"`
	Metabolites  []cobraMetabolite `json:"metabolites" yaml:"metabolites"`
	Reactions    []cobraReaction   `json:"reactions" yaml:"reactions"`
}

type cobraMetabolite struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Formula     string   `json:"formula" yaml:"formula"`
	Compartment string   `json:"compartment" yaml:"compartment"`
	Charge      *float64 `json:"charge" yaml:"charge"`
}

type cobraReaction struct {
	ID                   string              `json:"id" yaml:"id"`
	Name                 string              `json:"name" yaml:"name"`
	Subsystem            string              `json:"subsystem" yaml:"subsystem"`
	GeneReactionRule     string              `json:"gene_reaction_rule" yaml:"gene_reaction_rule"`
	LowerBound           *float64            `json:"lower_bound" yaml:"lower_bound"`
	UpperBound           *float64            `json:"upper_bound" yaml:"upper_bound"`
	ObjectiveCoefficient float64             `json:"objective_coefficient" yaml:"objective_coefficient"`
	Metabolites          orderedCoefficients `json:"metabolites" yaml:"metabolites"`
}

// Bounds used when a reaction omits them, as COBRA tools do.
const (
	defaultLowerBound = 0
	defaultUpperBound = 1000
)

// orderedCoefficients keeps the file order of a {metabolite: coefficient} object.
type orderedCoefficients domain.Stoichiometry

func (o *orderedCoefficients) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*o = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("metabolites: expected an object")
	}

	var out orderedCoefficients
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := kt.(string)
		if !ok {
			return fmt.Errorf("metabolites: expected a metabolite id")
		}
		var v float64
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("metabolites.%s: %w", key, err)
		}
		out = append(out, domain.Coefficient{Metabolite: key, Value: v})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*o = out
	return nil
}

func (o *orderedCoefficients) UnmarshalYAML(n *yaml.Node) error {
	pairs, err := mappingPairs(n)
	if err != nil {
		return fmt.Errorf("metabolites: %w", err)
	}

	out := make(orderedCoefficients, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		var v float64
		if err := pairs[i+1].Decode(&v); err != nil {
			return fmt.Errorf("metabolites.%s: %w", pairs[i].Value, err)
		}
		out = append(out, domain.Coefficient{Metabolite: pairs[i].Value, Value: v})
	}
	*o = out
	return nil
}

// mappingPairs flattens a mapping or an !!omap sequence into key, value, key, value...
func mappingPairs(n *yaml.Node) ([]*yaml.Node, error) {
	switch n.Kind {
	case yaml.MappingNode:
		return n.Content, nil
	case yaml.SequenceNode:
		var out []*yaml.Node
		for _, item := range n.Content {
			if item.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("line %d: expected key: value items", item.Line)
			}
			out = append(out, item.Content...)
		}
		return out, nil
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("line %d: expected a mapping", n.Line)
}

func decodeJSON(b []byte) (cobraModel, error) {
	var m cobraModel
	err := json.Unmarshal(b, &m)
	return m, err
}

func decodeYAML(b []byte) (cobraModel, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(b, &root); err != nil {
		return cobraModel{}, err
	}
	if len(root.Content) == 0 {
		return cobraModel{}, fmt.Errorf("empty document")
	}

	// cobrapy writes ordered maps as !!omap sequences at every level.
	normalizeOmap(root.Content[0])

	var m cobraModel
	err := root.Content[0].Decode(&m)
	return m, err
}

func normalizeOmap(n *yaml.Node) {
	if n.Tag == "!!omap" && n.Kind == yaml.SequenceNode {
		pairs, err := mappingPairs(n)
		if err == nil {
			n.Kind = yaml.MappingNode
			n.Tag = "!!map"
			n.Content = pairs
		}
	}
	for _, c := range n.Content {
		normalizeOmap(c)
	}
}

func toDomain(cm cobraModel) (*domain.Model, error) {
	m := &domain.Model{
		ID:           cm.ID,
		Name:         cm.Name,
		Compartments: cm.Compartments,
		Metabolites:  make([]domain.Metabolite, 0, len(cm.Metabolites)),
		Reactions:    make([]domain.Reaction, 0, len(cm.Reactions)),
	}

	known := make(map[string]bool, len(cm.Metabolites))
	for i, met := range cm.Metabolites {
		if met.ID == "" {
			return nil, fmt.Errorf("metabolites[%d]: id is required", i)
		}
		if known[met.ID] {
			return nil, fmt.Errorf("metabolites[%d]: duplicate id %q", i, met.ID)
		}
		known[met.ID] = true

		dm := domain.Metabolite{
			ID:          met.ID,
			Name:        met.Name,
			Formula:     met.Formula,
			Compartment: met.Compartment,
		}
		if met.Charge != nil && !math.IsNaN(*met.Charge) {
			c := int(math.Round(*met.Charge))
			dm.Charge = &c
		}
		m.Metabolites = append(m.Metabolites, dm)
	}

	seen := make(map[string]bool, len(cm.Reactions))
	for i, r := range cm.Reactions {
		if r.ID == "" {
			return nil, fmt.Errorf("reactions[%d]: id is required", i)
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("reactions[%d]: duplicate id %q", i, r.ID)
		}
		seen[r.ID] = true

		for _, c := range r.Metabolites {
			if !known[c.Metabolite] {
				return nil, fmt.Errorf("reactions[%d] %s: unknown metabolite %q", i, r.ID, c.Metabolite)
			}
		}

		dr := domain.Reaction{
			ID:                   r.ID,
			Name:                 r.Name,
			Subsystem:            r.Subsystem,
			GeneReactionRule:     r.GeneReactionRule,
			LowerBound:           defaultLowerBound,
			UpperBound:           defaultUpperBound,
			ObjectiveCoefficient: r.ObjectiveCoefficient,
			Metabolites:          domain.Stoichiometry(r.Metabolites),
		}
		if r.LowerBound != nil {
			dr.LowerBound = *r.LowerBound
		}
		if r.UpperBound != nil {
			dr.UpperBound = *r.UpperBound
		}
		m.Reactions = append(m.Reactions, dr)
	}

	return m, nil
}

package domain

import (
	"fmt"
	"math"
	"sort"
)

// PartitionBy builds one subgraph per unique value of field. Reaction fields are
// looked up first, then metabolite fields. For a metabolite field each subgraph
// holds the reactions touching any metabolite with that value.
// Subgraphs are sorted by value; reactions keep model order.
func (m *Model) PartitionBy(field string) ([]Subgraph, error) {
	switch {
	case IsReactionField(field):
		return m.partitionReactions(field)
	case IsMetaboliteField(field):
		return m.partitionMetabolites(field)
	default:
		return nil, invalidConfig("domain.partition", fmt.Sprintf("unknown reaction or metabolite field %q", field))
	}
}

func (m *Model) partitionReactions(field string) ([]Subgraph, error) {
	groups := map[string][]string{}
	var values []FieldValue
	for _, r := range m.Reactions {
		v, _ := r.Field(field)
		key := v.String()
		if _, ok := groups[key]; !ok {
			values = append(values, v)
		}
		groups[key] = append(groups[key], r.ID)
	}
	return buildPartition(values, groups)
}

func (m *Model) partitionMetabolites(field string) ([]Subgraph, error) {
	byMet := map[string]string{}
	groups := map[string][]string{}
	var values []FieldValue
	for _, met := range m.Metabolites {
		v, _ := met.Field(field)
		key := v.String()
		byMet[met.ID] = key
		if _, ok := groups[key]; !ok {
			values = append(values, v)
			groups[key] = nil
		}
	}

	seen := map[string]map[string]bool{}
	for _, r := range m.Reactions {
		for _, st := range r.Metabolites {
			key, ok := byMet[st.Metabolite]
			if !ok {
				continue
			}
			if seen[key] == nil {
				seen[key] = map[string]bool{}
			}
			if seen[key][r.ID] {
				continue
			}
			seen[key][r.ID] = true
			groups[key] = append(groups[key], r.ID)
		}
	}
	return buildPartition(values, groups)
}

func buildPartition(values []FieldValue, groups map[string][]string) ([]Subgraph, error) {
	sortFieldValues(values)

	out := make([]Subgraph, 0, len(values))
	for _, v := range values {
		key := v.String()
		sg, err := NewSubgraph(key, groups[key], nil)
		if err != nil {
			return nil, err
		}
		out = append(out, sg)
	}
	return out, nil
}

func sortFieldValues(values []FieldValue) {
	sort.SliceStable(values, func(i, j int) bool {
		a, b := values[i], values[j]
		if a.Kind == FieldNumber && b.Kind == FieldNumber {
			return lessNumber(a.Num, b.Num)
		}
		if a.Kind == FieldBool && b.Kind == FieldBool {
			return !a.Bool && b.Bool
		}
		return a.String() < b.String()
	})
}

// lessNumber orders NaN last.
func lessNumber(a, b float64) bool {
	if math.IsNaN(a) {
		return false
	}
	if math.IsNaN(b) {
		return true
	}
	return a < b
}

// FieldValues lists the distinct values of a field, sorted as PartitionBy sorts them.
func (m *Model) FieldValues(field string) ([]string, error) {
	parts, err := m.PartitionBy(field)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, p.Name)
	}
	return out, nil
}

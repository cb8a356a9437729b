package domain

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Metabolite is a chemical species of the network.
type Metabolite struct {
	ID          string
	Name        string
	Formula     string
	Compartment string
	Charge      *int // Optional: nil when the model does not state it.
}

// Coefficient is one stoichiometric entry of a reaction.
// Negative values are consumed, positive values are produced.
type Coefficient struct {
	Metabolite string
	Value      float64
}

// Stoichiometry keeps the coefficients of a reaction in file order.
type Stoichiometry []Coefficient

// Get returns the coefficient for a metabolite and a boolean indicating if it exists.
func (s Stoichiometry) Get(metID string) (float64, bool) {
	for _, c := range s {
		if c.Metabolite == metID {
			return c.Value, true
		}
	}
	return 0, false
}

// Reaction is a single transformation of the network.
type Reaction struct {
	ID                   string
	Name                 string
	Subsystem            string
	GeneReactionRule     string
	LowerBound           float64
	UpperBound           float64
	ObjectiveCoefficient float64

	// Flux is set when a solution was applied to the model.
	Flux *float64

	Metabolites Stoichiometry
}

// Reversibility reports whether both flux directions are allowed.
func (r Reaction) Reversibility() bool {
	return r.LowerBound < 0 && r.UpperBound > 0
}

// Boundary reports whether the reaction exchanges a single metabolite with the outside.
func (r Reaction) Boundary() bool {
	return len(r.Metabolites) == 1
}

// Equation renders the reaction as "2 a + b --> c".
func (r Reaction) Equation() string {
	var reactants, products []string
	for _, c := range r.Metabolites {
		term := formatStoich(math.Abs(c.Value)) + c.Metabolite
		if c.Value < 0 {
			reactants = append(reactants, term)
		} else {
			products = append(products, term)
		}
	}

	arrow := "-->"
	switch {
	case r.Reversibility():
		arrow = "<=>"
	case r.LowerBound < 0 && r.UpperBound <= 0:
		arrow = "<--"
	}

	var b strings.Builder
	b.WriteString(strings.Join(reactants, " + "))
	if len(reactants) > 0 {
		b.WriteByte(' ')
	}
	b.WriteString(arrow)
	if len(products) > 0 {
		b.WriteByte(' ')
	}
	b.WriteString(strings.Join(products, " + "))
	return b.String()
}

func formatStoich(v float64) string {
	if v == 1 {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64) + " "
}

// Model is a metabolic network: metabolites, reactions and their stoichiometry.
type Model struct {
	ID           string
	Name         string
	Compartments map[string]string

	Metabolites []Metabolite
	Reactions   []Reaction
}

// HasFlux reports whether any reaction carries a flux value.
func (m *Model) HasFlux() bool {
	for _, r := range m.Reactions {
		if r.Flux != nil {
			return true
		}
	}
	return false
}

// Reaction returns the reaction with the given id.
func (m *Model) Reaction(id string) (Reaction, bool) {
	for _, r := range m.Reactions {
		if r.ID == id {
			return r, true
		}
	}
	return Reaction{}, false
}

// Metabolite returns the metabolite with the given id.
func (m *Model) Metabolite(id string) (Metabolite, bool) {
	for _, met := range m.Metabolites {
		if met.ID == id {
			return met, true
		}
	}
	return Metabolite{}, false
}

// ReactionIDs lists reaction ids in model order.
func (m *Model) ReactionIDs() []string {
	out := make([]string, 0, len(m.Reactions))
	for _, r := range m.Reactions {
		out = append(out, r.ID)
	}
	return out
}

// MetaboliteIDs lists metabolite ids in model order.
func (m *Model) MetaboliteIDs() []string {
	out := make([]string, 0, len(m.Metabolites))
	for _, met := range m.Metabolites {
		out = append(out, met.ID)
	}
	return out
}

// ApplyFluxes sets Flux on every reaction found in fluxes and returns how many matched.
func (m *Model) ApplyFluxes(fluxes map[string]float64) int {
	n := 0
	for i := range m.Reactions {
		v, ok := fluxes[m.Reactions[i].ID]
		if !ok {
			continue
		}
		m.Reactions[i].Flux = &v
		n++
	}
	return n
}

// Subset returns a copy of the model holding only the listed reactions (in model
// order) and the metabolites that still take part in at least one of them.
// Unknown ids are ignored; the receiver is left untouched.
func (m *Model) Subset(ids []string) *Model {
	keep := make(map[string]bool, len(ids))
	for _, id := range ids {
		keep[id] = true
	}

	out := &Model{
		ID:           m.ID,
		Name:         m.Name,
		Compartments: m.Compartments,
	}

	used := map[string]bool{}
	for _, r := range m.Reactions {
		if !keep[r.ID] {
			continue
		}
		c := r
		c.Metabolites = append(Stoichiometry(nil), r.Metabolites...)
		out.Reactions = append(out.Reactions, c)
		for _, st := range r.Metabolites {
			used[st.Metabolite] = true
		}
	}

	for _, met := range m.Metabolites {
		if used[met.ID] {
			out.Metabolites = append(out.Metabolites, met)
		}
	}
	return out
}

// MetaboliteReactions indexes, per metabolite id, the reactions it takes part in (model order).
func (m *Model) MetaboliteReactions() map[string][]string {
	idx := map[string][]string{}
	for _, r := range m.Reactions {
		for _, st := range r.Metabolites {
			idx[st.Metabolite] = append(idx[st.Metabolite], r.ID)
		}
	}
	return idx
}

// Summary counts reactions and metabolites and lists distinct compartments and subsystems.
func (m *Model) Summary() ModelSummary {
	s := ModelSummary{
		ID:          m.ID,
		Name:        m.Name,
		Reactions:   len(m.Reactions),
		Metabolites: len(m.Metabolites),
	}

	comps := map[string]bool{}
	for _, met := range m.Metabolites {
		if met.Compartment != "" {
			comps[met.Compartment] = true
		}
	}
	subs := map[string]bool{}
	for _, r := range m.Reactions {
		if r.Subsystem != "" {
			subs[r.Subsystem] = true
		}
	}

	s.Compartments = sortedKeys(comps)
	s.Subsystems = sortedKeys(subs)
	return s
}

func sortedKeys(in map[string]bool) []string {
	out := make([]string, 0, len(in))
	for k := range in {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

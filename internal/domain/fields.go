package domain

import (
	"math"
	"strconv"
)

// FieldKind is the primitive type of an exported attribute.
type FieldKind int

const (
	FieldString FieldKind = iota
	FieldNumber
	FieldBool
)

// FieldValue is a primitive attribute value of a reaction or metabolite.
type FieldValue struct {
	Kind FieldKind
	Str  string
	Num  float64
	Bool bool
}

func stringField(s string) FieldValue  { return FieldValue{Kind: FieldString, Str: s} }
func numberField(n float64) FieldValue { return FieldValue{Kind: FieldNumber, Num: n} }
func boolField(b bool) FieldValue      { return FieldValue{Kind: FieldBool, Bool: b} }

func optionalInt(p *int) FieldValue {
	if p == nil {
		return numberField(math.NaN())
	}
	return numberField(float64(*p))
}

// String renders the value as a grouping key.
func (v FieldValue) String() string {
	switch v.Kind {
	case FieldNumber:
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	case FieldBool:
		return strconv.FormatBool(v.Bool)
	default:
		return v.Str
	}
}

// ReactionFields are the reaction attributes exported to the browser, after "id".
var ReactionFields = []string{
	"name",
	"subsystem",
	"gene_reaction_rule",
	"lower_bound",
	"upper_bound",
	"objective_coefficient",
	"reversibility",
	"boundary",
	"reaction",
}

// MetaboliteFields are the metabolite attributes exported to the browser, after "id".
var MetaboliteFields = []string{
	"name",
	"formula",
	"compartment",
	"charge",
}

// Field returns a named attribute of the reaction.
func (r Reaction) Field(name string) (FieldValue, bool) {
	switch name {
	case "id":
		return stringField(r.ID), true
	case "name":
		return stringField(r.Name), true
	case "subsystem":
		return stringField(r.Subsystem), true
	case "gene_reaction_rule":
		return stringField(r.GeneReactionRule), true
	case "lower_bound":
		return numberField(r.LowerBound), true
	case "upper_bound":
		return numberField(r.UpperBound), true
	case "objective_coefficient":
		return numberField(r.ObjectiveCoefficient), true
	case "reversibility":
		return boolField(r.Reversibility()), true
	case "boundary":
		return boolField(r.Boundary()), true
	case "reaction":
		return stringField(r.Equation()), true
	case "flux":
		if r.Flux == nil {
			return numberField(math.NaN()), true
		}
		return numberField(*r.Flux), true
	default:
		return FieldValue{}, false
	}
}

// Field returns a named attribute of the metabolite.
func (m Metabolite) Field(name string) (FieldValue, bool) {
	switch name {
	case "id":
		return stringField(m.ID), true
	case "name":
		return stringField(m.Name), true
	case "formula":
		return stringField(m.Formula), true
	case "compartment":
		return stringField(m.Compartment), true
	case "charge":
		return optionalInt(m.Charge), true
	default:
		return FieldValue{}, false
	}
}

// IsReactionField reports whether name is a reaction attribute.
func IsReactionField(name string) bool {
	_, ok := Reaction{}.Field(name)
	return ok
}

// IsMetaboliteField reports whether name is a metabolite attribute.
func IsMetaboliteField(name string) bool {
	_, ok := Metabolite{}.Field(name)
	return ok
}

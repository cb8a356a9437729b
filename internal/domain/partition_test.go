package domain

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func subgraphNames(in []Subgraph) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, s.Name)
	}
	return out
}

func TestPartitionByReactionField(t *testing.T) {
	parts, err := toyModel().PartitionBy("subsystem")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff := cmp.Diff([]string{"Exchange", "Glycolysis", "Transport"}, subgraphNames(parts)); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"HEX1", "PGI"}, parts[1].Reactions); diff != "" {
		t.Fatalf("glycolysis reactions mismatch (-want +got):\n%s", diff)
	}
	for _, f := range parts[1].Flux {
		if !math.IsNaN(f) {
			t.Fatalf("expected NaN flux for partition subgraphs, got %v", f)
		}
	}
}

func TestPartitionByMetaboliteField(t *testing.T) {
	parts, err := toyModel().PartitionBy("compartment")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Subgraph{
		{Name: "c", Reactions: []string{"GLCpts", "HEX1", "PGI"}},
		{Name: "e", Reactions: []string{"EX_glc", "GLCpts"}},
	}
	opt := cmp.FilterPath(func(p cmp.Path) bool { return p.Last().String() == ".Flux" }, cmp.Ignore())
	if diff := cmp.Diff(want, parts, opt); diff != "" {
		t.Fatalf("partition mismatch (-want +got):\n%s", diff)
	}
}

func TestPartitionByNumericFieldSortsNumerically(t *testing.T) {
	values, err := toyModel().FieldValues("charge")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"-4", "-3", "-2", "0", "1", "NaN"}, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestPartitionByBoolField(t *testing.T) {
	parts, err := toyModel().PartitionBy("boundary")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"false", "true"}, subgraphNames(parts)); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"EX_glc"}, parts[1].Reactions); diff != "" {
		t.Fatalf("boundary reactions mismatch (-want +got):\n%s", diff)
	}
}

func TestPartitionByUnknownField(t *testing.T) {
	_, err := toyModel().PartitionBy("pathway")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !IsKind(err, KindInvalidConfig) {
		t.Fatalf("expected KindInvalidConfig, got %v", err)
	}
}

func TestUnionReactions(t *testing.T) {
	a, _ := NewSubgraph("a", []string{"PGI", "HEX1"}, nil)
	b, _ := NewSubgraph("b", []string{"HEX1", "GLCpts"}, nil)

	got := UnionReactions([]Subgraph{a, b})
	if diff := cmp.Diff([]string{"PGI", "HEX1", "GLCpts"}, got); diff != "" {
		t.Fatalf("union mismatch (-want +got):\n%s", diff)
	}
}

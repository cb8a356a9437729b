package serialize

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sammiviz/sammi/internal/domain"
)

func intPtr(v int) *int { return &v }

func tinyModel() *domain.Model {
	return &domain.Model{
		ID: "tiny",
		Metabolites: []domain.Metabolite{
			{ID: "a", Name: "A", Formula: "C", Compartment: "c", Charge: intPtr(0)},
			{ID: "b", Name: "B", Compartment: "c"},
			{ID: "x", Name: "X", Compartment: "e"},
		},
		Reactions: []domain.Reaction{
			{
				ID: "R1", Name: "r one", Subsystem: "S",
				UpperBound: 1000,
				Metabolites: domain.Stoichiometry{
					{Metabolite: "a", Value: -1},
					{Metabolite: "b", Value: 1},
				},
			},
			{
				ID: "EX_x", Name: "x exchange", Subsystem: "Exchange",
				LowerBound: math.Inf(-1), UpperBound: math.Inf(1),
				Metabolites: domain.Stoichiometry{
					{Metabolite: "x", Value: -1},
				},
			},
		},
	}
}

const (
	metA  = `{"id":"a","name":"A","formula":"C","compartment":"c","charge":0}`
	metB  = `{"id":"b","name":"B","formula":"","compartment":"c","charge":NaN}`
	metX  = `{"id":"x","name":"X","formula":"","compartment":"e","charge":NaN}`
	rxnR1 = `{"id":"R1","name":"r one","subsystem":"S","gene_reaction_rule":"","lower_bound":0,"upper_bound":1000,` +
		`"objective_coefficient":0,"reversibility":false,"boundary":false,"reaction":"a --> b","metabolites":{"a":-1,"b":1}}`
	rxnEX = `{"id":"EX_x","name":"x exchange","subsystem":"Exchange","gene_reaction_rule":"","lower_bound":-Infinity,"upper_bound":Infinity,` +
		`"objective_coefficient":0,"reversibility":true,"boundary":true,"reaction":"x <=>","metabolites":{"x":-1}}`
)

func TestGraphJSON(t *testing.T) {
	want := `{"metabolites":[` + metA + `,` + metB + `,` + metX + `],"reactions":[` + rxnR1 + `,` + rxnEX + `]}`
	if diff := cmp.Diff(want, GraphJSON(tinyModel())); diff != "" {
		t.Fatalf("graph mismatch (-want +got):\n%s", diff)
	}
}

func TestGraphJSONIncludesFluxWhenSolved(t *testing.T) {
	m := tinyModel()
	m.ApplyFluxes(map[string]float64{"R1": 2.5})

	got := GraphJSON(m)
	if !strings.Contains(got, `"reaction":"a --> b","flux":2.5,"metabolites"`) {
		t.Fatalf("expected flux on R1, got %s", got)
	}
	if !strings.Contains(got, `"reaction":"x <=>","flux":NaN,"metabolites"`) {
		t.Fatalf("expected NaN flux on EX_x, got %s", got)
	}
}

func TestGraphJSONEscapesStrings(t *testing.T) {
	m := &domain.Model{
		Metabolites: []domain.Metabolite{{ID: "m", Name: `</script><b>"q"`}},
	}
	got := GraphJSON(m)
	if strings.Contains(got, "</script>") {
		t.Fatalf("expected script tag to be escaped, got %s", got)
	}
	if !strings.Contains(got, `\"q\"`) {
		t.Fatalf("expected quotes to be escaped, got %s", got)
	}
}

func TestParseVector(t *testing.T) {
	s1, _ := domain.NewSubgraph("TCA cycle", []string{"CS", "ACONTa"}, []float64{0.5, math.NaN()})
	s2, _ := domain.NewSubgraph("Empty", nil, nil)

	want := `[["TCA cycle",["CS","0.5"],["ACONTa","NaN"]],["Empty"]]`
	if diff := cmp.Diff(want, ParseVector([]domain.Subgraph{s1, s2})); diff != "" {
		t.Fatalf("parse vector mismatch (-want +got):\n%s", diff)
	}
}

func TestDataVector(t *testing.T) {
	d, err := domain.NewDataOverlay(domain.GroupReactions, domain.KindColor,
		[][]float64{{1, math.NaN()}, {-0.25, 3e6}},
		[]string{"R1", "EX_x"},
		[]string{"c1", "c2"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `[["c1","c2"],["R1","1","NaN"],["EX_x","-0.25","3e+06"]]`
	if diff := cmp.Diff(want, DataVector(d)); diff != "" {
		t.Fatalf("data vector mismatch (-want +got):\n%s", diff)
	}
}

func TestStructParseSubsetsModel(t *testing.T) {
	s, _ := domain.NewSubgraph("only R1", []string{"R1"}, []float64{1})

	got := StructParse(tinyModel(), []domain.Subgraph{s})
	want := `graph = {"metabolites":[` + metA + `,` + metB + `],"reactions":[` + rxnR1 + `]};` +
		"\n" + `e = [["only R1",["R1","1"]]];` + "\nfilterWrapper(e)"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("struct parse mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildSelections(t *testing.T) {
	whole := "e = " + GraphJSON(tinyModel()) + ";\nreceivedJSONwrapper(e);"
	onlyR1 := `e = {"metabolites":[` + metA + `,` + metB + `],"reactions":[` + rxnR1 + `]};` + "\nreceivedJSONwrapper(e);"

	cases := []struct {
		name string
		in   Input
		want string
		subs int
	}{
		{"nil selection", Input{Model: tinyModel()}, whole, 0},
		{"whole model", Input{Model: tinyModel(), Selection: domain.WholeModel{}}, whole, 0},
		{"empty reaction list", Input{Model: tinyModel(), Selection: domain.ReactionList{}}, whole, 0},
		{"reaction list", Input{Model: tinyModel(), Selection: domain.ReactionList{IDs: []string{"R1", "nope"}}}, onlyR1, 0},
		{"empty subgraphs", Input{Model: tinyModel(), Selection: domain.SubgraphList{}}, whole, 0},
		{
			"map file",
			Input{Selection: domain.MapFile{Path: "maps/saved.json"}, MapText: " {\"nodes\":[]}\n"},
			"e = {\"nodes\":[]};\nreceivedTextSammi(JSON.stringify(e));",
			0,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res, err := Build(c.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(c.want, res.Code); diff != "" {
				t.Fatalf("code mismatch (-want +got):\n%s", diff)
			}
			if res.Subgraphs != c.subs {
				t.Fatalf("expected %d subgraphs, got %d", c.subs, res.Subgraphs)
			}
		})
	}
}

func TestBuildFieldPartition(t *testing.T) {
	res, err := Build(Input{Model: tinyModel(), Selection: domain.FieldPartition{Field: "subsystem"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Subgraphs != 2 {
		t.Fatalf("expected 2 subgraphs, got %d", res.Subgraphs)
	}
	if !strings.HasPrefix(res.Code, "graph = ") || !strings.HasSuffix(res.Code, "filterWrapper(e)") {
		t.Fatalf("expected struct parse output, got %q", res.Code)
	}
	if !strings.Contains(res.Code, `e = [["Exchange",["EX_x","NaN"]],["S",["R1","NaN"]]]`) {
		t.Fatalf("expected sorted partition vector, got %q", res.Code)
	}
}

func TestBuildOverlaysSecondariesAndCode(t *testing.T) {
	color, _ := domain.NewDataOverlay(domain.GroupReactions, domain.KindColor, [][]float64{{1}}, []string{"R1"}, []string{"c1"})
	width, _ := domain.NewDataOverlay(domain.GroupLinks, domain.KindSize, [][]float64{{2}}, []string{"R1"}, []string{"c1"})
	conc, _ := domain.NewDataOverlay(domain.GroupMetabolites, domain.KindColor, [][]float64{{3}}, []string{"a"}, []string{"c1"})

	res, err := Build(Input{
		Model:       tinyModel(),
		Selection:   domain.ReactionList{IDs: []string{"R1"}},
		Overlays:    []domain.DataOverlay{color, width, conc},
		Secondaries: []string{`^h_.$`, `^atp_\w$`},
		JSCode:      "defineFluxColorVectors();",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tail := "receivedJSONwrapper(e);" +
		";\ndat = [[\"c1\"],[\"R1\",\"1\"]];\nreceivedTextFlux(dat)" +
		";\ndat = [[\"c1\"],[\"R1\",\"2\"]];\nreceivedTextWidth(dat)" +
		";\ndat = [[\"c1\"],[\"a\",\"3\"]];\nreceivedTextConcentration(dat)" +
		";\nshelveList(\"(?:^h_.$)|(?:^atp_\\\\w$)\");" +
		"defineFluxColorVectors();"
	if !strings.HasSuffix(res.Code, tail) {
		t.Fatalf("unexpected tail:\n%s", res.Code)
	}
}

func TestBuildErrors(t *testing.T) {
	cases := []struct {
		name string
		in   Input
		kind domain.ErrorKind
	}{
		{"missing model", Input{Selection: domain.WholeModel{}}, domain.KindInvalidConfig},
		{"bad map text", Input{Selection: domain.MapFile{Path: "x.json"}, MapText: "{nope"}, domain.KindInvalidData},
		{"unknown field", Input{Model: tinyModel(), Selection: domain.FieldPartition{Field: "pathway"}}, domain.KindInvalidConfig},
		{"bad secondary", Input{Model: tinyModel(), Secondaries: []string{"("}}, domain.KindInvalidConfig},
		{"inline flag secondary", Input{Model: tinyModel(), Secondaries: []string{"(?i)^H_"}}, domain.KindInvalidConfig},
		{"links color", Input{Model: tinyModel(), Overlays: []domain.DataOverlay{{Group: domain.GroupLinks, Kind: domain.KindColor}}}, domain.KindInvalidData},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Build(c.in)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !domain.IsKind(err, c.kind) {
				t.Fatalf("expected %s, got %v", c.kind, err)
			}
		})
	}
}

func TestShelvePattern(t *testing.T) {
	got, err := ShelvePattern([]string{"^h_.$", "^h2o_.$"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "(?:^h_.$)|(?:^h2o_.$)" {
		t.Fatalf("unexpected pattern %q", got)
	}
}

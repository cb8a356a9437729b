package serialize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sammiviz/sammi/internal/domain"
)

// Input is everything needed to build the page snippet.
type Input struct {
	Model     *domain.Model
	Selection domain.Selection

	// MapText is the saved map document for domain.MapFile selections.
	MapText string

	Overlays    []domain.DataOverlay
	Secondaries []string
	JSCode      string
}

// Result is the built snippet plus a few facts for logs and history.
type Result struct {
	Code      string
	Subgraphs int
}

// StructParse restricts the model to the reactions named by the subgraphs, drops
// metabolites left without reactions, and emits the graph plus the parse vector
// handed to filterWrapper.
func StructParse(m *domain.Model, subgraphs []domain.Subgraph) string {
	sub := m.Subset(domain.UnionReactions(subgraphs))
	return "graph = " + GraphJSON(sub) + ";\ne = " + ParseVector(subgraphs) + ";\nfilterWrapper(e)"
}

// Build assembles the selection, overlay, shelving and custom code parts in that order.
func Build(in Input) (Result, error) {
	const op = "serialize.build"

	if in.Model == nil {
		if _, ok := in.Selection.(domain.MapFile); !ok {
			return Result{}, &domain.OpError{
				Op:   op,
				Kind: domain.KindInvalidConfig,
				Err:  fmt.Errorf("a model is required: %w", domain.ErrInvalidConfig),
			}
		}
	}

	var res Result
	var b strings.Builder

	switch sel := in.Selection.(type) {
	case nil, domain.WholeModel:
		b.WriteString(wholeModel(in.Model))

	case domain.MapFile:
		text := strings.TrimSpace(in.MapText)
		if !json.Valid([]byte(text)) {
			return Result{}, &domain.OpError{
				Op:   op,
				Kind: domain.KindInvalidData,
				Path: sel.Path,
				Err:  fmt.Errorf("map file is not valid JSON: %w", domain.ErrInvalidData),
			}
		}
		b.WriteString("e = " + text + ";\nreceivedTextSammi(JSON.stringify(e));")

	case domain.FieldPartition:
		parts, err := in.Model.PartitionBy(sel.Field)
		if err != nil {
			return Result{}, err
		}
		res.Subgraphs = len(parts)
		b.WriteString(StructParse(in.Model, parts))

	case domain.ReactionList:
		m := in.Model
		if len(sel.IDs) > 0 {
			m = m.Subset(sel.IDs)
		}
		b.WriteString(wholeModel(m))

	case domain.SubgraphList:
		if len(sel.Subgraphs) == 0 {
			b.WriteString(wholeModel(in.Model))
			break
		}
		res.Subgraphs = len(sel.Subgraphs)
		b.WriteString(StructParse(in.Model, sel.Subgraphs))

	default:
		return Result{}, &domain.OpError{
			Op:   op,
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("unsupported selection %T: %w", sel, domain.ErrInvalidConfig),
		}
	}

	for _, d := range in.Overlays {
		recv := d.Receiver()
		if recv == "" {
			return Result{}, &domain.OpError{
				Op:   op,
				Kind: domain.KindInvalidData,
				Err:  fmt.Errorf("no receiver for %s %s overlay: %w", d.Group, d.Kind, domain.ErrInvalidData),
			}
		}
		b.WriteString(";\ndat = ")
		b.WriteString(DataVector(d))
		b.WriteString(";\n")
		b.WriteString(recv)
		b.WriteString("(dat)")
	}

	if len(in.Secondaries) > 0 {
		pattern, err := ShelvePattern(in.Secondaries)
		if err != nil {
			return Result{}, err
		}
		b.WriteString(";\nshelveList(")
		b.WriteString(jsString(pattern))
		b.WriteString(");")
	}

	b.WriteString(in.JSCode)

	res.Code = b.String()
	return res, nil
}

// ShelvePattern joins secondary-metabolite patterns into one alternation.
// Every pattern must pass domain.CheckShelvePattern on its own.
func ShelvePattern(patterns []string) (string, error) {
	for i, p := range patterns {
		if err := domain.CheckShelvePattern(p); err != nil {
			return "", &domain.OpError{
				Op:   "serialize.secondaries",
				Kind: domain.KindInvalidConfig,
				Err:  fmt.Errorf("secondaries[%d] %q: %v: %w", i, p, err, domain.ErrInvalidConfig),
			}
		}
	}
	return "(?:" + strings.Join(patterns, ")|(?:") + ")", nil
}

func wholeModel(m *domain.Model) string {
	return "e = " + GraphJSON(m) + ";\nreceivedJSONwrapper(e);"
}

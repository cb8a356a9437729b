package extract

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	"github.com/sammiviz/sammi/internal/domain"
)

// Table evaluates a JSONPath expression on a JSON document and reads the result as
// {id: number | [numbers]}. Ids come back sorted, one row per id.
//
// null, "NaN" and other unparsable leaves become NaN; anything that is not an
// object of numbers is an error.
func Table(body []byte, expr string) ([]string, [][]float64, error) {
	const op = "extract.table"

	val, err := eval(op, body, expr)
	if err != nil {
		return nil, nil, err
	}

	obj, ok := val.(map[string]any)
	if !ok {
		return nil, nil, fail(op, fmt.Sprintf("%s: expected an object of id -> value, got %s", expr, typeName(val)))
	}
	if len(obj) == 0 {
		return nil, nil, fail(op, fmt.Sprintf("%s: no value found", expr))
	}

	ids := make([]string, 0, len(obj))
	for k := range obj {
		ids = append(ids, k)
	}
	sort.Strings(ids) // stable output for tests/UI

	rows := make([][]float64, 0, len(ids))
	for _, id := range ids {
		row, err := toRow(obj[id])
		if err != nil {
			return nil, nil, fail(op, fmt.Sprintf("%s: value of %q: %v", expr, id, err))
		}
		rows = append(rows, row)
	}
	return ids, rows, nil
}

// Numbers is Table for single-valued documents such as flux solutions.
func Numbers(body []byte, expr string) (map[string]float64, error) {
	const op = "extract.numbers"

	ids, rows, err := Table(body, expr)
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(ids))
	for i, id := range ids {
		if len(rows[i]) != 1 {
			return nil, fail(op, fmt.Sprintf("%s: value of %q must be a single number", expr, id))
		}
		out[id] = rows[i][0]
	}
	return out, nil
}

// Lookup picks values for ids in order. Ids without a value get NaN.
func Lookup(values map[string]float64, ids []string) []float64 {
	out := make([]float64, len(ids))
	for i, id := range ids {
		v, ok := values[id]
		if !ok {
			v = math.NaN()
		}
		out[i] = v
	}
	return out
}

func eval(op string, body []byte, expr string) (any, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		expr = "$"
	}

	doc, err := parseJSON(body)
	if err != nil {
		return nil, fail(op, fmt.Sprintf("document is not valid JSON: %v", err))
	}

	val, err := jsonpath.Get(expr, doc)
	if err != nil {
		return nil, fail(op, fmt.Sprintf("%s: jsonpath error: %v", expr, err))
	}

	// Wildcards and filters return a slice; a single match is unwrapped.
	if arr, ok := val.([]any); ok && len(arr) == 1 {
		if _, isObj := arr[0].(map[string]any); isObj {
			val = arr[0]
		}
	}
	return val, nil
}

func parseJSON(body []byte) (any, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func toRow(v any) ([]float64, error) {
	if arr, ok := v.([]any); ok {
		row := make([]float64, 0, len(arr))
		for i, e := range arr {
			f, err := toNumber(e)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			row = append(row, f)
		}
		return row, nil
	}

	f, err := toNumber(v)
	if err != nil {
		return nil, err
	}
	return []float64{f}, nil
}

func toNumber(v any) (float64, error) {
	switch t := v.(type) {
	case nil:
		return math.NaN(), nil
	case float64:
		return t, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return math.NaN(), nil
		}
		return f, nil
	default:
		return 0, fmt.Errorf("expected a number, got %s", typeName(v))
	}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "bool"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func fail(op, msg string) error {
	return &domain.OpError{
		Op:   op,
		Kind: domain.KindInvalidData,
		Err:  fmt.Errorf("%s: %w", msg, domain.ErrInvalidData),
	}
}

package serialize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/sammiviz/sammi/internal/domain"
)

// GraphJSON renders the whole model as the object read by the page's model loader:
// {"metabolites":[...],"reactions":[...]}. Objects start with "id" and then
// follow domain.MetaboliteFields / domain.ReactionFields.
func GraphJSON(m *domain.Model) string {
	var b strings.Builder
	b.Grow(256 * (len(m.Reactions) + len(m.Metabolites)))

	b.WriteString(`{"metabolites":[`)
	for i, met := range m.Metabolites {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(`{"id":`)
		b.WriteString(jsString(met.ID))
		for _, f := range domain.MetaboliteFields {
			v, _ := met.Field(f)
			writeField(&b, f, v)
		}
		b.WriteByte('}')
	}

	b.WriteString(`],"reactions":[`)
	withFlux := m.HasFlux()
	for i, r := range m.Reactions {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(`{"id":`)
		b.WriteString(jsString(r.ID))
		for _, f := range domain.ReactionFields {
			v, _ := r.Field(f)
			writeField(&b, f, v)
		}
		if withFlux {
			v, _ := r.Field("flux")
			writeField(&b, "flux", v)
		}

		b.WriteString(`,"metabolites":{`)
		for j, c := range r.Metabolites {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(jsString(c.Metabolite))
			b.WriteByte(':')
			b.WriteString(jsNumber(c.Value))
		}
		b.WriteString("}}")
	}
	b.WriteString("]}")

	return b.String()
}

func writeField(b *strings.Builder, name string, v domain.FieldValue) {
	b.WriteByte(',')
	b.WriteString(jsString(name))
	b.WriteByte(':')
	switch v.Kind {
	case domain.FieldNumber:
		b.WriteString(jsNumber(v.Num))
	case domain.FieldBool:
		b.WriteString(strconv.FormatBool(v.Bool))
	default:
		b.WriteString(jsString(v.Str))
	}
}

// jsString quotes s as a JSON string. HTML-significant characters are escaped
// so the snippet cannot close the surrounding <script> element.
func jsString(s string) string {
	out, err := json.Marshal(s)
	if err != nil {
		// json.Marshal never fails on a string.
		return `""`
	}
	return string(out)
}

// jsNumber formats v as a JavaScript number literal.
func jsNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	default:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
}

package serialize

import (
	"strings"

	"github.com/sammiviz/sammi/internal/domain"
)

// ParseVector renders subgraphs as [["name",["rxn","flux"],...],...],
// the input of the page's filterWrapper.
func ParseVector(subgraphs []domain.Subgraph) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, s := range subgraphs {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('[')
		b.WriteString(jsString(s.Name))
		for j, r := range s.Reactions {
			b.WriteString(`,[`)
			b.WriteString(jsString(r))
			b.WriteByte(',')
			b.WriteString(quotedNumber(s.Flux[j]))
			b.WriteByte(']')
		}
		b.WriteByte(']')
	}
	b.WriteByte(']')
	return b.String()
}

// DataVector renders an overlay as [["c1","c2"],["id","v1","v2"],...].
func DataVector(d domain.DataOverlay) string {
	var b strings.Builder
	b.WriteString("[[")
	for i, c := range d.Conditions {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(jsString(c))
	}
	b.WriteByte(']')

	for i, id := range d.IDs {
		b.WriteString(",[")
		b.WriteString(jsString(id))
		for _, v := range d.Values[i] {
			b.WriteByte(',')
			b.WriteString(quotedNumber(v))
		}
		b.WriteByte(']')
	}
	b.WriteByte(']')
	return b.String()
}

func quotedNumber(v float64) string {
	return `"` + jsNumber(v) + `"`
}

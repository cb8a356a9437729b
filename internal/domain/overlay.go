package domain

import "fmt"

// OverlayGroup is the part of the visualization a data overlay maps onto.
type OverlayGroup string

const (
	GroupReactions   OverlayGroup = "reactions"
	GroupMetabolites OverlayGroup = "metabolites"
	GroupLinks       OverlayGroup = "links"
)

// OverlayKind is the visual channel a data overlay drives.
type OverlayKind string

const (
	KindColor OverlayKind = "color"
	KindSize  OverlayKind = "size"
)

// DataOverlay maps per-condition values onto reactions, metabolites or links.
// Values has one row per id and one column per condition.
type DataOverlay struct {
	Group      OverlayGroup
	Kind       OverlayKind
	Values     [][]float64
	IDs        []string
	Conditions []string
}

// NewDataOverlay validates and builds a data overlay.
func NewDataOverlay(group OverlayGroup, kind OverlayKind, values [][]float64, ids, conditions []string) (DataOverlay, error) {
	const op = "domain.overlay"

	switch group {
	case GroupReactions, GroupMetabolites, GroupLinks:
	default:
		return DataOverlay{}, invalidData(op, "group must be 'reactions', 'metabolites', or 'links'")
	}

	switch kind {
	case KindColor, KindSize:
	default:
		return DataOverlay{}, invalidData(op, "kind must be 'color' or 'size'")
	}

	if group == GroupLinks && kind == KindColor {
		return DataOverlay{}, invalidData(op, "link data does not work with color (link colors are based on reactions node)")
	}

	if len(values) != len(ids) {
		return DataOverlay{}, invalidData(op, fmt.Sprintf("number of %s do not match data size", group))
	}
	for _, row := range values {
		if len(row) != len(conditions) {
			return DataOverlay{}, invalidData(op, "number of conditions do not match data size")
		}
	}

	rows := make([][]float64, len(values))
	for i, row := range values {
		rows[i] = append([]float64(nil), row...)
	}

	return DataOverlay{
		Group:      group,
		Kind:       kind,
		Values:     rows,
		IDs:        append([]string(nil), ids...),
		Conditions: append([]string(nil), conditions...),
	}, nil
}

// Receiver names the browser-side function that consumes this overlay.
func (d DataOverlay) Receiver() string {
	switch {
	case d.Group == GroupReactions && d.Kind == KindColor:
		return "receivedTextFlux"
	case d.Group == GroupReactions && d.Kind == KindSize:
		return "receivedTextSizeRxn"
	case d.Group == GroupMetabolites && d.Kind == KindColor:
		return "receivedTextConcentration"
	case d.Group == GroupMetabolites && d.Kind == KindSize:
		return "receivedTextSizeMet"
	case d.Group == GroupLinks && d.Kind == KindSize:
		return "receivedTextWidth"
	default:
		return ""
	}
}

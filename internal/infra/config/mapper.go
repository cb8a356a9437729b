package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sammiviz/sammi/internal/domain"
)

// MapPlot validates a plot spec DTO and converts it to the domain form.
// Errors name the offending field, e.g. select.subgraphs[1].flux.
func MapPlot(path string, yp YAMLPlot) (domain.PlotSpec, error) {
	name := strings.TrimSpace(yp.Name)
	if name == "" {
		name = baseName(path)
	}

	if strings.TrimSpace(yp.Model) == "" {
		return domain.PlotSpec{}, invalidField(path, "model", "model is required")
	}

	spec := domain.PlotSpec{
		Name:        name,
		Path:        path,
		Model:       strings.TrimSpace(yp.Model),
		Secondaries: yp.Secondaries,
	}

	if yp.Solution != nil {
		src, err := mapSource(path, "solution", yp.Solution)
		if err != nil {
			return domain.PlotSpec{}, err
		}
		spec.Solution = src
	}

	sel, err := mapSelect(path, yp.Select)
	if err != nil {
		return domain.PlotSpec{}, err
	}
	spec.Select = sel

	for i, o := range yp.Overlays {
		ov, err := mapOverlay(path, fmt.Sprintf("overlays[%d]", i), o, true)
		if err != nil {
			return domain.PlotSpec{}, err
		}
		spec.Overlays = append(spec.Overlays, ov)
	}

	for i, p := range yp.Secondaries {
		if strings.TrimSpace(p) == "" {
			return domain.PlotSpec{}, invalidField(path, fmt.Sprintf("secondaries[%d]", i), "pattern is empty")
		}
		if err := domain.CheckShelvePattern(p); err != nil {
			return domain.PlotSpec{}, invalidField(path, fmt.Sprintf("secondaries[%d]", i), err.Error())
		}
	}

	out, err := mapOutput(path, yp.Output)
	if err != nil {
		return domain.PlotSpec{}, err
	}
	spec.Output = out

	return spec, nil
}

// MapDataset validates a dataset DTO. Datasets cannot reference other datasets.
func MapDataset(path string, yd YAMLDataset) (domain.OverlaySpec, error) {
	if strings.TrimSpace(yd.Ref) != "" {
		return domain.OverlaySpec{}, invalidField(path, "ref", "a dataset cannot reference another dataset")
	}
	return mapOverlay(path, "", yd.YAMLOverlay, false)
}

func mapSelect(path string, ys YAMLSelect) (domain.SelectionSpec, error) {
	set := 0
	for _, ok := range []bool{
		strings.TrimSpace(ys.Map) != "",
		strings.TrimSpace(ys.Field) != "",
		len(ys.Reactions) > 0,
		len(ys.Subgraphs) > 0,
	} {
		if ok {
			set++
		}
	}
	if set > 1 {
		return domain.SelectionSpec{}, invalidField(path, "select", "use only one of map, field, reactions or subgraphs")
	}

	field := strings.TrimSpace(ys.Field)
	if field != "" && !domain.IsReactionField(field) && !domain.IsMetaboliteField(field) {
		return domain.SelectionSpec{}, invalidField(path, "select.field", fmt.Sprintf("unknown reaction or metabolite field %q", field))
	}

	sel := domain.SelectionSpec{
		Map:       strings.TrimSpace(ys.Map),
		Field:     field,
		Reactions: ys.Reactions,
	}

	for i, sg := range ys.Subgraphs {
		prefix := fmt.Sprintf("select.subgraphs[%d]", i)
		if strings.TrimSpace(sg.Name) == "" {
			return domain.SelectionSpec{}, invalidField(path, prefix+".name", "subgraph name is required")
		}
		if sg.Flux != nil && sg.FluxSource != nil {
			return domain.SelectionSpec{}, invalidField(path, prefix, "use either flux or flux_source")
		}
		if sg.Flux != nil && len(sg.Flux) != len(sg.Reactions) {
			return domain.SelectionSpec{}, invalidField(path, prefix+".flux",
				fmt.Sprintf("got %d values for %d reactions", len(sg.Flux), len(sg.Reactions)))
		}

		spec := domain.SubgraphSpec{
			Name:      sg.Name,
			Reactions: sg.Reactions,
			Flux:      []float64(sg.Flux),
		}
		if sg.FluxSource != nil {
			src, err := mapSource(path, prefix+".flux_source", sg.FluxSource)
			if err != nil {
				return domain.SelectionSpec{}, err
			}
			spec.FluxSource = src
		}
		sel.Subgraphs = append(sel.Subgraphs, spec)
	}

	return sel, nil
}

func mapOverlay(path, prefix string, yo YAMLOverlay, allowRef bool) (domain.OverlaySpec, error) {
	at := func(f string) string {
		if prefix == "" {
			return f
		}
		return prefix + "." + f
	}

	if ref := strings.TrimSpace(yo.Ref); ref != "" && allowRef {
		if yo.Source != nil || len(yo.IDs) > 0 || len(yo.Values) > 0 {
			return domain.OverlaySpec{}, invalidField(path, at("ref"), "ref cannot be combined with inline values or a source")
		}
		return domain.OverlaySpec{Ref: ref}, nil
	}

	group := domain.OverlayGroup(strings.ToLower(strings.TrimSpace(yo.Group)))
	switch group {
	case domain.GroupReactions, domain.GroupMetabolites, domain.GroupLinks:
	default:
		return domain.OverlaySpec{}, invalidField(path, at("group"), "group must be 'reactions', 'metabolites', or 'links'")
	}

	kind := domain.OverlayKind(strings.ToLower(strings.TrimSpace(yo.Kind)))
	switch kind {
	case domain.KindColor, domain.KindSize:
	default:
		return domain.OverlaySpec{}, invalidField(path, at("kind"), "kind must be 'color' or 'size'")
	}

	ov := domain.OverlaySpec{
		Group:      group,
		Kind:       kind,
		Conditions: yo.Conditions,
	}

	if yo.Source != nil {
		if len(yo.IDs) > 0 || len(yo.Values) > 0 {
			return domain.OverlaySpec{}, invalidField(path, at("source"), "source cannot be combined with inline values")
		}
		src, err := mapSource(path, at("source"), yo.Source)
		if err != nil {
			return domain.OverlaySpec{}, err
		}
		ov.Source = src
		return ov, nil
	}

	if len(yo.IDs) == 0 {
		return domain.OverlaySpec{}, invalidField(path, at("ids"), "ids are required without a source")
	}
	if len(yo.Values) != len(yo.IDs) {
		return domain.OverlaySpec{}, invalidField(path, at("values"),
			fmt.Sprintf("number of %s do not match data size", group))
	}
	for i, row := range yo.Values {
		if len(row) != len(yo.Conditions) {
			return domain.OverlaySpec{}, invalidField(path, at(fmt.Sprintf("values[%d]", i)),
				"number of conditions do not match data size")
		}
	}

	ov.IDs = yo.IDs
	ov.Values = make([][]float64, len(yo.Values))
	for i, row := range yo.Values {
		ov.Values[i] = []float64(row)
	}
	return ov, nil
}

func mapSource(path, field string, ys *YAMLValueSource) (*domain.ValueSource, error) {
	loc := strings.TrimSpace(ys.Location)
	if loc == "" {
		return nil, invalidField(path, field+".location", "location is required")
	}
	return &domain.ValueSource{Location: loc, Path: strings.TrimSpace(ys.Path)}, nil
}

func mapOutput(path string, yo YAMLOutput) (domain.OutputSpec, error) {
	out := domain.OutputSpec{Load: yo.Open, JSCode: yo.JSCode}
	if strings.TrimSpace(yo.HTML) == "" {
		return out, nil
	}
	name, err := domain.NormalizeHTMLName(yo.HTML)
	if err != nil {
		return domain.OutputSpec{}, invalidField(path, "output.html", cause(err))
	}
	out.HTMLName = name
	return out, nil
}

func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// cause strips the op prefix from domain errors.
func cause(err error) string {
	var oe *domain.OpError
	if errors.As(err, &oe) && oe.Err != nil {
		return strings.TrimSuffix(oe.Err.Error(), ": "+domain.ErrInvalidConfig.Error())
	}
	return err.Error()
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "config.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}

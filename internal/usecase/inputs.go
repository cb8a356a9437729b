package usecase

import "github.com/sammiviz/sammi/internal/domain"

// SpecInputs lists what a plot spec reads, as written in the file.
type SpecInputs struct {
	Spec      string
	Model     string
	Documents []string
	Datasets  []string
}

// InputsOf collects the spec file, model, documents and dataset refs of a plot spec.
// Locations repeat only once.
func InputsOf(spec domain.PlotSpec) SpecInputs {
	in := SpecInputs{Spec: spec.Path, Model: spec.Model}

	seen := map[string]bool{}
	addDoc := func(loc string) {
		if loc == "" || seen[loc] {
			return
		}
		seen[loc] = true
		in.Documents = append(in.Documents, loc)
	}

	if spec.Solution != nil {
		addDoc(spec.Solution.Location)
	}
	addDoc(spec.Select.Map)
	for _, sg := range spec.Select.Subgraphs {
		if sg.FluxSource != nil {
			addDoc(sg.FluxSource.Location)
		}
	}
	for _, ov := range spec.Overlays {
		if ov.Source != nil {
			addDoc(ov.Source.Location)
		}
		if ov.Ref != "" && !seen["ref:"+ov.Ref] {
			seen["ref:"+ov.Ref] = true
			in.Datasets = append(in.Datasets, ov.Ref)
		}
	}
	return in
}

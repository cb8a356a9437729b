package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/sammiviz/sammi/internal/domain"
)

// --- fakes shared by usecase tests ---

type fakeTemplates struct {
	page string
	err  error
}

func (f fakeTemplates) LoadTemplate() (string, error) { return f.page, f.err }

type fakeStore struct {
	saved    []domain.MapPage
	pages    map[string]string
	saveErr  error
	resolved string
}

func (s *fakeStore) SaveMap(p domain.MapPage) (domain.MapRecord, error) {
	if s.saveErr != nil {
		return domain.MapRecord{}, s.saveErr
	}
	s.saved = append(s.saved, p)
	return domain.MapRecord{
		ID:        "map-1",
		HTMLName:  p.HTMLName,
		Path:      "/ws/browser/" + p.HTMLName,
		Plot:      p.Plot,
		Model:     p.Model,
		Selection: p.Selection,
		Subgraphs: p.Subgraphs,
		Overlays:  p.Overlays,
	}, nil
}

func (s *fakeStore) ListMaps() ([]domain.MapRecord, error) { return nil, nil }

func (s *fakeStore) Resolve(name string) (string, error) {
	html, err := domain.NormalizeHTMLName(name)
	if err != nil {
		return "", err
	}
	if p, ok := s.pages[html]; ok {
		s.resolved = p
		return p, nil
	}
	return "", &domain.OpError{Op: "fake.resolve", Kind: domain.KindNotFound, Err: domain.ErrNotFound}
}

type fakeOpener struct {
	opened []string
	err    error
}

func (o *fakeOpener) Open(_ context.Context, target string) error {
	o.opened = append(o.opened, target)
	return o.err
}

type fakePlots struct {
	spec domain.PlotSpec
	err  error
}

func (f fakePlots) LoadPlot(string) (domain.PlotSpec, error)   { return f.spec, f.err }
func (f fakePlots) ListPlots(string) ([]domain.PlotRef, error) { return nil, nil }

type fakeModels struct {
	build func() *domain.Model
	err   error
	last  string
}

func (f *fakeModels) LoadModel(_ context.Context, location string) (*domain.Model, error) {
	f.last = location
	if f.err != nil {
		return nil, f.err
	}
	return f.build(), nil
}

func (f *fakeModels) ListModels(string) ([]domain.ModelRef, error) { return nil, nil }

type fakeDatasets struct {
	sets map[string]domain.OverlaySpec
}

func (f fakeDatasets) LoadDataset(name string) (domain.OverlaySpec, error) {
	if ds, ok := f.sets[name]; ok {
		return ds, nil
	}
	return domain.OverlaySpec{}, &domain.OpError{Op: "fake.dataset", Kind: domain.KindNotFound, Err: domain.ErrNotFound}
}

func (f fakeDatasets) ListDatasets(string) ([]domain.DatasetRef, error) { return nil, nil }

type fakeDocs struct {
	mu    sync.Mutex
	docs  map[string]string
	reads map[string]int
}

func newFakeDocs(docs map[string]string) *fakeDocs {
	return &fakeDocs{docs: docs, reads: map[string]int{}}
}

func (f *fakeDocs) Read(_ context.Context, location string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads[location]++
	d, ok := f.docs[location]
	if !ok {
		return nil, &domain.OpError{Op: "fake.read", Kind: domain.KindNotFound, Path: location, Err: errors.New("missing")}
	}
	return []byte(d), nil
}

// tinyModel: a -> b (R1), b -> c (R2), exchange of a (EX_a).
func tinyModel() *domain.Model {
	return &domain.Model{
		ID: "tiny",
		Metabolites: []domain.Metabolite{
			{ID: "a", Compartment: "c"},
			{ID: "b", Compartment: "c"},
			{ID: "c", Compartment: "e"},
		},
		Reactions: []domain.Reaction{
			{ID: "R1", Subsystem: "S1", UpperBound: 1000, Metabolites: domain.Stoichiometry{{Metabolite: "a", Value: -1}, {Metabolite: "b", Value: 1}}},
			{ID: "R2", Subsystem: "S2", UpperBound: 1000, Metabolites: domain.Stoichiometry{{Metabolite: "b", Value: -1}, {Metabolite: "c", Value: 1}}},
			{ID: "EX_a", Subsystem: "S1", LowerBound: -10, UpperBound: 1000, Metabolites: domain.Stoichiometry{{Metabolite: "a", Value: -1}}},
		},
	}
}

package usecase

import (
	"context"

	"github.com/sammiviz/sammi/internal/domain"
	"github.com/sammiviz/sammi/internal/ports"
)

// InspectModel loads a model and summarizes it for listings and previews.
type InspectModel struct {
	models ports.ModelLoader
}

func NewInspectModel(ml ports.ModelLoader) *InspectModel {
	return &InspectModel{models: ml}
}

// ModelReport is a model summary plus the values a field partition would use.
type ModelReport struct {
	Location string
	Summary  domain.ModelSummary
	// Partition holds the subgraph names for the requested field, if any.
	Partition []string
}

func (uc *InspectModel) Execute(ctx context.Context, location, field string) (ModelReport, error) {
	m, err := uc.models.LoadModel(ctx, location)
	if err != nil {
		return ModelReport{}, err
	}

	rep := ModelReport{Location: location, Summary: m.Summary()}
	if field == "" {
		return rep, nil
	}
	rep.Partition, err = m.FieldValues(field)
	if err != nil {
		return ModelReport{}, err
	}
	return rep, nil
}

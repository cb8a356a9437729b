package ports

import (
	"context"

	"github.com/sammiviz/sammi/internal/domain"
)

// ModelLoader loads metabolic models from a source (e.g., filesystem).
type ModelLoader interface {
	LoadModel(ctx context.Context, location string) (*domain.Model, error)
	ListModels(root string) ([]domain.ModelRef, error)
}

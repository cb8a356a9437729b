package ports

import "github.com/sammiviz/sammi/internal/domain"

// DatasetLoader resolves named overlay datasets.
type DatasetLoader interface {
	LoadDataset(nameOrPath string) (domain.OverlaySpec, error)
	ListDatasets(root string) ([]domain.DatasetRef, error)
}

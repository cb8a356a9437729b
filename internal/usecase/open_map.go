package usecase

import (
	"context"

	"github.com/sammiviz/sammi/internal/ports"
)

// OpenMap shows a previously written page.
type OpenMap struct {
	store  ports.MapStore
	opener ports.Opener
}

func NewOpenMap(ms ports.MapStore, op ports.Opener) *OpenMap {
	return &OpenMap{store: ms, opener: op}
}

// Execute resolves a page name (".html" optional) inside the browser directory
// and opens it. It returns the resolved path.
func (uc *OpenMap) Execute(ctx context.Context, name string) (string, error) {
	path, err := uc.store.Resolve(name)
	if err != nil {
		return "", err
	}
	return path, uc.opener.Open(ctx, path)
}

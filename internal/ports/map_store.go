package ports

import "github.com/sammiviz/sammi/internal/domain"

// MapStore persists rendered pages next to the browser assets.
type MapStore interface {
	SaveMap(page domain.MapPage) (domain.MapRecord, error)
	ListMaps() ([]domain.MapRecord, error)
	// Resolve returns the absolute path of a stored page.
	Resolve(htmlName string) (string, error)
}

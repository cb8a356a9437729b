package template

import (
	"fmt"
	"strings"

	"github.com/sammiviz/sammi/internal/domain"
)

// Inject replaces every occurrence of marker in page with code.
// It returns an error if the page has no marker or the marker is empty.
func Inject(page, marker, code string) (string, error) {
	const op = "template.inject"

	if strings.TrimSpace(marker) == "" {
		return "", &domain.OpError{
			Op:   op,
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("empty injection marker: %w", domain.ErrInvalidConfig),
		}
	}

	n := strings.Count(page, marker)
	if n == 0 {
		return "", &domain.OpError{
			Op:   op,
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("template has no %q marker: %w", marker, domain.ErrInvalidConfig),
		}
	}

	var out strings.Builder
	out.Grow(len(page) + n*(len(code)-len(marker)))

	rest := page
	for {
		i := strings.Index(rest, marker)
		if i == -1 {
			out.WriteString(rest)
			return out.String(), nil
		}
		out.WriteString(rest[:i])
		out.WriteString(code)
		rest = rest[i+len(marker):]
	}
}

// HasMarker reports whether page can receive injected code.
func HasMarker(page, marker string) bool {
	return marker != "" && strings.Contains(page, marker)
}

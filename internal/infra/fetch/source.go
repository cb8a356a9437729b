package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/sammiviz/sammi/internal/domain"
	"github.com/sammiviz/sammi/internal/ports"
)

// DefaultMaxBytes caps a single document. Genome-scale models are a few tens of MB.
const DefaultMaxBytes int64 = 256 << 20

// Source reads documents from the workspace or over http(s).
type Source struct {
	root     string
	client   *http.Client
	maxBytes int64
}

type Option func(*Source)

func WithClient(c *http.Client) Option {
	return func(s *Source) { s.client = c }
}

func WithMaxBytes(n int64) Option {
	return func(s *Source) { s.maxBytes = n }
}

// NewSource resolves relative file locations against root.
func NewSource(root string, opts ...Option) *Source {
	s := &Source{
		root:     root,
		maxBytes: DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = NewClient(DefaultClientConfig())
	}
	return s
}

var _ ports.DocumentSource = (*Source)(nil)

// IsURL reports whether location is fetched over http(s).
func IsURL(location string) bool {
	l := strings.ToLower(strings.TrimSpace(location))
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

func (s *Source) Read(ctx context.Context, location string) ([]byte, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, &domain.OpError{
			Op:   "fetch.read",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("empty location: %w", domain.ErrInvalidConfig),
		}
	}
	if IsURL(location) {
		return s.get(ctx, location)
	}
	return s.readFile(location)
}

// Path resolves a file location against the workspace root.
func (s *Source) Path(location string) string {
	if filepath.IsAbs(location) {
		return filepath.Clean(location)
	}
	return filepath.Join(s.root, filepath.FromSlash(location))
}

func (s *Source) readFile(location string) ([]byte, error) {
	path := s.Path(location)
	f, err := os.Open(path)
	if err != nil {
		kind := domain.KindExecution
		if errors.Is(err, fs.ErrNotExist) {
			kind = domain.KindNotFound
		}
		return nil, &domain.OpError{Op: "fetch.file", Kind: kind, Path: path, Err: err}
	}
	defer f.Close()

	return s.readAll(f, path, "fetch.file")
}

func (s *Source) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &domain.OpError{Op: "fetch.http", Kind: domain.KindInvalidConfig, Path: url, Err: err}
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.5")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &domain.OpError{Op: "fetch.http", Kind: domain.KindExecution, Path: url, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &domain.OpError{
			Op:   "fetch.http",
			Kind: domain.KindNotFound,
			Path: url,
			Err:  fmt.Errorf("status %d: %w", resp.StatusCode, domain.ErrNotFound),
		}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &domain.OpError{
			Op:   "fetch.http",
			Kind: domain.KindExecution,
			Path: url,
			Err:  fmt.Errorf("status %d: %w", resp.StatusCode, domain.ErrExecution),
		}
	}

	return s.readAll(resp.Body, url, "fetch.http")
}

func (s *Source) readAll(r io.Reader, where, op string) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, &domain.OpError{Op: op, Kind: domain.KindExecution, Path: where, Err: err}
	}
	if int64(len(b)) > s.maxBytes {
		return nil, &domain.OpError{
			Op:   op,
			Kind: domain.KindInvalidData,
			Path: where,
			Err:  fmt.Errorf("document larger than %d bytes: %w", s.maxBytes, domain.ErrInvalidData),
		}
	}
	return b, nil
}

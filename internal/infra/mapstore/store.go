package mapstore

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sammiviz/sammi/internal/domain"
	"github.com/sammiviz/sammi/internal/ports"
)

// HistoryDir holds index.jsonl, relative to the workspace root.
const HistoryDir = ".sammi/maps"

const indexFile = "index.jsonl"

// Store writes pages into the browser directory, where their relative
// script and style references resolve, and keeps a JSONL history.
type Store struct {
	// mu orders renames and history appends between concurrent saves.
	mu sync.Mutex

	rootDir    string
	browserDir string
	template   string
	writeIndex bool
	now        func() time.Time
	newID      func() string
}

type Option func(*Store)

// WithIndex enables the history file .sammi/maps/index.jsonl.
func WithIndex(enabled bool) Option {
	return func(s *Store) { s.writeIndex = enabled }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDs replaces uuid generation, for tests.
func WithIDs(next func() string) Option {
	return func(s *Store) { s.newID = next }
}

// New builds a store for a workspace. browserDir is absolute or relative to root.
func New(root, browserDir string, cfg domain.Config, opts ...Option) *Store {
	if !filepath.IsAbs(browserDir) {
		browserDir = filepath.Join(root, browserDir)
	}
	tmpl := cfg.Browser.Template
	if strings.TrimSpace(tmpl) == "" {
		tmpl = "index.html"
	}

	s := &Store{
		rootDir:    root,
		browserDir: browserDir,
		template:   tmpl,
		writeIndex: cfg.History.Enabled,
		now:        time.Now,
		newID:      func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.MapStore = (*Store)(nil)

// BrowserDir is where pages are written.
func (s *Store) BrowserDir() string { return s.browserDir }

func (s *Store) SaveMap(page domain.MapPage) (domain.MapRecord, error) {
	name, err := domain.NormalizeHTMLName(page.HTMLName)
	if err != nil {
		return domain.MapRecord{}, err
	}
	if strings.EqualFold(name, s.template) {
		return domain.MapRecord{}, &domain.OpError{
			Op:   "mapstore.save",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("output file cannot overwrite the template %s: %w", s.template, domain.ErrInvalidConfig),
		}
	}

	if err := os.MkdirAll(s.browserDir, 0o755); err != nil {
		return domain.MapRecord{}, &domain.OpError{
			Op:   "mapstore.mkdir",
			Kind: domain.KindExecution,
			Path: s.browserDir,
			Err:  err,
		}
	}

	path := filepath.Join(s.browserDir, name)

	tmp, err := writeTemp(s.browserDir, name, page.Content)
	if err != nil {
		return domain.MapRecord{}, &domain.OpError{
			Op:   "mapstore.write",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  err,
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return domain.MapRecord{}, &domain.OpError{
			Op:   "mapstore.rename",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	rec := domain.MapRecord{
		ID:        s.newID(),
		HTMLName:  name,
		Path:      path,
		Plot:      page.Plot,
		Model:     page.Model,
		Selection: page.Selection,
		Subgraphs: page.Subgraphs,
		Overlays:  page.Overlays,
		CreatedAt: s.now().UTC(),
	}

	if s.writeIndex {
		if err := s.appendIndex(rec); err != nil {
			return rec, &domain.OpError{
				Op:   "mapstore.index",
				Kind: domain.KindExecution,
				Path: s.indexPath(),
				Err:  err,
			}
		}
	}

	return rec, nil
}

// writeTemp writes content to a fresh temp file next to the page, so
// concurrent saves of one page never share a temp file.
func writeTemp(dir, name string, content []byte) (string, error) {
	f, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return filepath.Join(dir, name), err
	}
	tmp := f.Name()

	_, werr := f.Write(content)
	cerr := f.Close()
	if err := errors.Join(werr, cerr); err != nil {
		_ = os.Remove(tmp)
		return tmp, err
	}
	// Pages are served and opened by other processes.
	if err := os.Chmod(tmp, 0o644); err != nil {
		_ = os.Remove(tmp)
		return tmp, err
	}
	return tmp, nil
}

// ListMaps returns pages in the browser directory, newest first. Pages with a
// history entry carry its details; other pages get their file time only.
func (s *Store) ListMaps() ([]domain.MapRecord, error) {
	entries, err := os.ReadDir(s.browserDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &domain.OpError{
			Op:   "mapstore.list",
			Kind: domain.KindExecution,
			Path: s.browserDir,
			Err:  err,
		}
	}

	history, err := s.readIndex()
	if err != nil {
		return nil, err
	}

	var out []domain.MapRecord
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.EqualFold(name, s.template) || !strings.EqualFold(filepath.Ext(name), ".html") {
			continue
		}

		if rec, ok := history[name]; ok {
			rec.Path = filepath.Join(s.browserDir, name)
			out = append(out, rec)
			continue
		}

		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, domain.MapRecord{
			HTMLName:  name,
			Path:      filepath.Join(s.browserDir, name),
			CreatedAt: info.ModTime().UTC(),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].HTMLName < out[j].HTMLName
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) Resolve(htmlName string) (string, error) {
	name, err := domain.NormalizeHTMLName(htmlName)
	if err != nil {
		return "", err
	}
	path := filepath.Join(s.browserDir, name)
	if _, err := os.Stat(path); err != nil {
		return "", &domain.OpError{
			Op:   "mapstore.resolve",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  fmt.Errorf("map %s: %w", name, domain.ErrNotFound),
		}
	}
	return path, nil
}

type indexLine struct {
	ID        string    `json:"id"`
	File      string    `json:"file"`
	Plot      string    `json:"plot,omitempty"`
	Model     string    `json:"model,omitempty"`
	Selection string    `json:"selection,omitempty"`
	Subgraphs int       `json:"subgraphs,omitempty"`
	Overlays  int       `json:"overlays,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Store) indexPath() string {
	return filepath.Join(s.rootDir, filepath.FromSlash(HistoryDir), indexFile)
}

func (s *Store) appendIndex(rec domain.MapRecord) error {
	line, err := json.Marshal(indexLine{
		ID:        rec.ID,
		File:      rec.HTMLName,
		Plot:      rec.Plot,
		Model:     rec.Model,
		Selection: rec.Selection,
		Subgraphs: rec.Subgraphs,
		Overlays:  rec.Overlays,
		CreatedAt: rec.CreatedAt,
	})
	if err != nil {
		return err
	}

	path := s.indexPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(line, '\n'))
	return err
}

// readIndex returns the latest history entry per file. Broken lines are skipped.
func (s *Store) readIndex() (map[string]domain.MapRecord, error) {
	out := map[string]domain.MapRecord{}

	b, err := os.ReadFile(s.indexPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return out, nil
		}
		return nil, &domain.OpError{
			Op:   "mapstore.index",
			Kind: domain.KindExecution,
			Path: s.indexPath(),
			Err:  err,
		}
	}

	sc := bufio.NewScanner(bytes.NewReader(b))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		var l indexLine
		if err := json.Unmarshal(sc.Bytes(), &l); err != nil || l.File == "" {
			continue
		}
		out[l.File] = domain.MapRecord{
			ID:        l.ID,
			HTMLName:  l.File,
			Plot:      l.Plot,
			Model:     l.Model,
			Selection: l.Selection,
			Subgraphs: l.Subgraphs,
			Overlays:  l.Overlays,
			CreatedAt: l.CreatedAt,
		}
	}
	return out, nil
}

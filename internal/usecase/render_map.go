package usecase

import (
	"context"
	"io"
	"log/slog"

	"github.com/sammiviz/sammi/internal/app/template"
	"github.com/sammiviz/sammi/internal/domain"
	"github.com/sammiviz/sammi/internal/ports"
	"github.com/sammiviz/sammi/internal/usecase/serialize"
)

// RenderMap turns a resolved plot request into a page in the browser directory
// and optionally opens it.
type RenderMap struct {
	templates ports.TemplateSource
	store     ports.MapStore
	opener    ports.Opener
	marker    string
	log       *slog.Logger
}

type RenderOption func(*RenderMap)

// WithMarker overrides the template token replaced by the generated code.
func WithMarker(marker string) RenderOption {
	return func(uc *RenderMap) {
		if marker != "" {
			uc.marker = marker
		}
	}
}

func WithRenderLogger(log *slog.Logger) RenderOption {
	return func(uc *RenderMap) {
		if log != nil {
			uc.log = log
		}
	}
}

func NewRenderMap(ts ports.TemplateSource, ms ports.MapStore, op ports.Opener, opts ...RenderOption) *RenderMap {
	uc := &RenderMap{
		templates: ts,
		store:     ms,
		opener:    op,
		marker:    domain.DefaultMarker,
		log:       discardLogger(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute builds the snippet, splices it into the template, stores the page and,
// when req.Options.Load is set, opens it. The stored record is returned even when
// opening fails.
func (uc *RenderMap) Execute(ctx context.Context, req domain.PlotRequest) (domain.MapRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.MapRecord{}, err
	}

	sel := domain.SelectionName(req.Selection)
	uc.log.Info("render.start",
		"plot", req.Name,
		"model", req.ModelRef,
		"selection", sel,
		"overlays", len(req.Overlays),
		"html", req.Options.HTMLName,
	)

	res, err := serialize.Build(serialize.Input{
		Model:       req.Model,
		Selection:   req.Selection,
		MapText:     req.MapText,
		Overlays:    req.Overlays,
		Secondaries: req.Secondaries,
		JSCode:      req.Options.JSCode,
	})
	if err != nil {
		uc.log.Warn("render.failed", "plot", req.Name, "err", err)
		return domain.MapRecord{}, err
	}

	page, err := uc.templates.LoadTemplate()
	if err != nil {
		return domain.MapRecord{}, err
	}

	html, err := template.Inject(page, uc.marker, res.Code)
	if err != nil {
		return domain.MapRecord{}, err
	}

	htmlName := req.Options.HTMLName
	if htmlName == "" {
		htmlName = domain.DefaultHTMLName
	}

	rec, err := uc.store.SaveMap(domain.MapPage{
		HTMLName:  htmlName,
		Content:   []byte(html),
		Plot:      req.Name,
		Model:     req.ModelRef,
		Selection: sel,
		Subgraphs: res.Subgraphs,
		Overlays:  len(req.Overlays),
	})
	if err != nil {
		return domain.MapRecord{}, err
	}
	uc.log.Info("map.saved", "html", rec.HTMLName, "path", rec.Path, "bytes", len(html))

	if !req.Options.Load || uc.opener == nil {
		return rec, nil
	}
	if err := uc.opener.Open(ctx, rec.Path); err != nil {
		uc.log.Warn("map.open_failed", "path", rec.Path, "err", err)
		return rec, err
	}
	uc.log.Debug("map.opened", "path", rec.Path)
	return rec, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

package httpserve

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sammiviz/sammi/internal/domain"
	"github.com/sammiviz/sammi/internal/ports"
)

// MapsPrefix is where the browser directory is served.
const MapsPrefix = "/maps"

// RenderFunc renders a plot spec by name and returns the stored page.
type RenderFunc func(ctx context.Context, plot string) (domain.MapRecord, error)

// PlotLister lists plot specs in a workspace.
type PlotLister interface {
	ListPlots(root string) ([]domain.PlotRef, error)
}

type Deps struct {
	Root       string
	BrowserDir string
	Maps       ports.MapStore
	Plots      PlotLister
	Render     RenderFunc
	Logger     *slog.Logger
}

// Server exposes generated maps and a small JSON API over HTTP.
type Server struct {
	deps Deps
	log  *slog.Logger
}

func NewServer(deps Deps) *Server {
	log := deps.Logger
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Server{deps: deps, log: log}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.accessLog())

	r.Static(MapsPrefix, s.deps.BrowserDir)
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, MapsPrefix+"/")
	})

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	api.GET("/maps", s.ListMaps)
	api.GET("/plots", s.ListPlots)
	api.POST("/plots/:name/render", s.RenderPlot)

	return r
}

type mapJSON struct {
	ID        string    `json:"id,omitempty"`
	HTMLName  string    `json:"html"`
	URL       string    `json:"url"`
	Plot      string    `json:"plot,omitempty"`
	Model     string    `json:"model,omitempty"`
	Selection string    `json:"selection,omitempty"`
	Subgraphs int       `json:"subgraphs"`
	Overlays  int       `json:"overlays"`
	CreatedAt time.Time `json:"created_at"`
}

func toMapJSON(rec domain.MapRecord) mapJSON {
	return mapJSON{
		ID:        rec.ID,
		HTMLName:  rec.HTMLName,
		URL:       MapsPrefix + "/" + rec.HTMLName,
		Plot:      rec.Plot,
		Model:     rec.Model,
		Selection: rec.Selection,
		Subgraphs: rec.Subgraphs,
		Overlays:  rec.Overlays,
		CreatedAt: rec.CreatedAt,
	}
}

func (s *Server) ListMaps(c *gin.Context) {
	recs, err := s.deps.Maps.ListMaps()
	if err != nil {
		s.fail(c, err)
		return
	}
	out := make([]mapJSON, 0, len(recs))
	for _, r := range recs {
		out = append(out, toMapJSON(r))
	}
	c.JSON(http.StatusOK, gin.H{"maps": out})
}

func (s *Server) ListPlots(c *gin.Context) {
	refs, err := s.deps.Plots.ListPlots(s.deps.Root)
	if err != nil {
		s.fail(c, err)
		return
	}
	type plotJSON struct {
		Name string `json:"name"`
		Path string `json:"path"`
	}
	out := make([]plotJSON, 0, len(refs))
	for _, r := range refs {
		out = append(out, plotJSON{Name: r.Name, Path: r.Path})
	}
	c.JSON(http.StatusOK, gin.H{"plots": out})
}

func (s *Server) RenderPlot(c *gin.Context) {
	name := c.Param("name")
	rec, err := s.deps.Render(c.Request.Context(), name)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"map": toMapJSON(rec)})
}

func (s *Server) fail(c *gin.Context, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("serve.request_failed", "path", c.Request.URL.Path, "err", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// StatusFor maps error kinds to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case domain.IsKind(err, domain.KindNotFound):
		return http.StatusNotFound
	case domain.IsKind(err, domain.KindInvalidConfig), domain.IsKind(err, domain.KindInvalidData):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("serve.request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"ms", time.Since(start).Milliseconds(),
		)
	}
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.SetupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("serve.start", "addr", addr, "dir", s.deps.BrowserDir)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return &domain.OpError{Op: "serve.listen", Kind: domain.KindExecution, Err: err}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return &domain.OpError{Op: "serve.shutdown", Kind: domain.KindExecution, Err: err}
	}
	<-errCh
	s.log.Info("serve.stopped")
	return nil
}

package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sammiviz/sammi/internal/app/workspace"
	"github.com/sammiviz/sammi/internal/domain"
	"github.com/sammiviz/sammi/internal/infra/logger"
	"github.com/sammiviz/sammi/internal/infra/watch"
)

type plotFlags struct {
	model        string
	solution     string
	solutionPath string
	mapFile      string
	field        string
	reactions    []string
	secondaries  []string
	html         string
	noOpen       bool
	jscode       string
	watch        bool
}

func plotCmd(flags *globalFlags) *cobra.Command {
	pf := &plotFlags{}

	c := &cobra.Command{
		Use:   "plot [plot]",
		Short: "Render a map from a plot spec, or from flags when no spec is given",
		Example: `  sammi plot 02_subsystems
  sammi plot plots/06_overlays.yaml --no-open
  sammi plot --model toy --field compartment --html compartments
  sammi plot --model toy --reactions PGI,PFK,FBA --secondary '^h_.$'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(flags)
			if err != nil {
				return err
			}

			var specArg string
			if len(args) == 1 {
				specArg = args[0]
			}
			load := func() (domain.PlotSpec, error) {
				if specArg == "" {
					return pf.adHocSpec()
				}
				spec, err := ws.LoadPlot(specArg)
				if err != nil {
					return domain.PlotSpec{}, err
				}
				return pf.override(spec), nil
			}

			spec, err := load()
			if err != nil {
				return err
			}
			if err := renderOnce(cmd.Context(), cmd.OutOrStdout(), ws, spec, nil); err != nil {
				return err
			}
			if !pf.watch {
				return nil
			}
			return watchSpec(cmd.Context(), cmd.OutOrStdout(), ws, spec, load)
		},
	}

	f := c.Flags()
	f.StringVarP(&pf.model, "model", "m", "", "Model name, path or URL (ad-hoc mode)")
	f.StringVar(&pf.solution, "solution", "", "JSON document with reaction fluxes")
	f.StringVar(&pf.solutionPath, "solution-path", "$.fluxes", "JSONPath of the {reaction: flux} object in --solution")
	f.StringVar(&pf.mapFile, "map", "", "Load a saved SAMMI map file instead of the model")
	f.StringVarP(&pf.field, "field", "f", "", "One subgraph per value of a reaction or metabolite field")
	f.StringSliceVarP(&pf.reactions, "reactions", "r", nil, "Only draw these reactions")
	f.StringSliceVarP(&pf.secondaries, "secondary", "s", nil, "Regex of metabolites to shelve (repeatable)")
	f.StringVar(&pf.html, "html", "", "Output page name (default from sammi.yaml)")
	f.BoolVar(&pf.noOpen, "no-open", false, "Write the page without opening a browser")
	f.StringVar(&pf.jscode, "jscode", "", "JavaScript appended after the generated code")
	f.BoolVar(&pf.watch, "watch", false, "Re-render when the plot spec or its inputs change")
	return c
}

// adHocSpec builds a spec from flags alone.
func (pf *plotFlags) adHocSpec() (domain.PlotSpec, error) {
	if strings.TrimSpace(pf.model) == "" {
		return domain.PlotSpec{}, &domain.OpError{
			Op:   "cli.plot",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("a plot spec or --model is required: %w", domain.ErrInvalidConfig),
		}
	}

	set := 0
	for _, ok := range []bool{pf.mapFile != "", pf.field != "", len(pf.reactions) > 0} {
		if ok {
			set++
		}
	}
	if set > 1 {
		return domain.PlotSpec{}, &domain.OpError{
			Op:   "cli.plot",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("use only one of --map, --field or --reactions: %w", domain.ErrInvalidConfig),
		}
	}
	if pf.field != "" && !domain.IsReactionField(pf.field) && !domain.IsMetaboliteField(pf.field) {
		return domain.PlotSpec{}, &domain.OpError{
			Op:   "cli.plot",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("unknown reaction or metabolite field %q: %w", pf.field, domain.ErrInvalidConfig),
		}
	}

	spec := domain.PlotSpec{
		Name:  "adhoc",
		Model: pf.model,
		Select: domain.SelectionSpec{
			Map:       pf.mapFile,
			Field:     pf.field,
			Reactions: pf.reactions,
		},
	}
	if pf.solution != "" {
		spec.Solution = &domain.ValueSource{Location: pf.solution, Path: pf.solutionPath}
	}
	return pf.override(spec), nil
}

// override applies output and secondary flags on top of a spec.
func (pf *plotFlags) override(spec domain.PlotSpec) domain.PlotSpec {
	if len(pf.secondaries) > 0 {
		spec.Secondaries = append(append([]string(nil), spec.Secondaries...), pf.secondaries...)
	}
	if pf.html != "" {
		spec.Output.HTMLName = pf.html
	}
	if pf.noOpen {
		no := false
		spec.Output.Load = &no
	}
	if pf.jscode != "" {
		spec.Output.JSCode = pf.jscode
	}
	return spec
}

func renderOnce(ctx context.Context, out io.Writer, ws *workspace.Workspace, spec domain.PlotSpec, adjust func(*domain.PlotRequest)) error {
	rec, err := ws.RenderSpec(ctx, spec, adjust)
	if rec.Path != "" {
		fmt.Fprintf(out, "Wrote %s\n", relTo(ws.Root, rec.Path))
	}
	return err
}

// watchSpec re-renders on changes until ctx is done. Re-renders never open a
// browser; the page already open can be reloaded.
func watchSpec(ctx context.Context, out io.Writer, ws *workspace.Workspace, spec domain.PlotSpec, load func() (domain.PlotSpec, error)) error {
	noOpen := func(r *domain.PlotRequest) { r.Options.Load = false }

	w, err := watch.New(ws.WatchFiles(spec), func(ctx context.Context, changed []string) {
		fresh, err := load()
		if err != nil {
			fmt.Fprintf(out, "Reload failed: %v\n", err)
			return
		}
		if err := renderOnce(ctx, out, ws, fresh, noOpen); err != nil {
			fmt.Fprintf(out, "Render failed: %v\n", err)
			logger.L().Warn("watch.render_failed", "err", err, "changed", changed)
		}
	})
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Stop()

	fmt.Fprintf(out, "Watching %d file(s), ctrl+c to stop\n", len(w.Files()))
	<-ctx.Done()
	return nil
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sammiviz/sammi/internal/app/template"
	"github.com/sammiviz/sammi/internal/usecase"
)

func validateCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [plot...]",
		Short: "Resolve plot specs and build their code without writing maps",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(flags)
			if err != nil {
				return err
			}

			paths := make([]string, 0, len(args))
			if len(args) == 0 {
				refs, err := ws.Plots.ListPlots(ws.Root)
				if err != nil {
					return err
				}
				for _, r := range refs {
					paths = append(paths, r.Path)
				}
			}
			for _, a := range args {
				p, err := ws.FindPlot(a)
				if err != nil {
					return err
				}
				paths = append(paths, p)
			}

			uc := usecase.NewValidatePlot(ws.Resolver())
			out := cmd.OutOrStdout()
			failed := 0

			page, err := ws.Templates.LoadTemplate()
			if err != nil {
				return err
			}
			if !template.HasMarker(page, ws.Config.Browser.Marker) {
				failed++
				fmt.Fprintf(out, "FAIL template: no %q marker\n", ws.Config.Browser.Marker)
			}

			for _, p := range paths {
				check, err := uc.Execute(cmd.Context(), p)
				if err != nil {
					failed++
					fmt.Fprintf(out, "FAIL %s: %v\n", relTo(ws.Root, p), err)
					continue
				}
				fmt.Fprintf(out, "OK   %s  (%s, %d subgraph(s), %d overlay(s) -> %s)\n",
					relTo(ws.Root, p), check.Selection, check.Subgraphs, check.Overlays, check.HTMLName)
			}

			if failed > 0 {
				return fmt.Errorf("validation failed (%d of %d check(s))", failed, len(paths)+1)
			}
			return nil
		},
	}
}

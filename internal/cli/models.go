package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sammiviz/sammi/internal/usecase"
)

func modelsCmd(flags *globalFlags) *cobra.Command {
	c := &cobra.Command{
		Use:   "models",
		Short: "Models in the workspace",
	}
	c.AddCommand(modelsListCmd(flags), modelsInspectCmd(flags))
	return c
}

func modelsListCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List model files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(flags)
			if err != nil {
				return err
			}

			refs, err := ws.Models.ListModels(ws.Root)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(refs) == 0 {
				fmt.Fprintln(out, "(no models found)")
				return nil
			}
			fmt.Fprintf(out, "Workspace: %s\n\n", ws.Root)
			for _, r := range refs {
				fmt.Fprintf(out, "- %s  (%s)\n", r.Name, relTo(ws.Root, r.Path))
			}
			return nil
		},
	}
}

func modelsInspectCmd(flags *globalFlags) *cobra.Command {
	var field string

	c := &cobra.Command{
		Use:   "inspect <model>",
		Short: "Summarize a model and preview a field partition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(flags)
			if err != nil {
				return err
			}

			rep, err := usecase.NewInspectModel(ws.Models).Execute(cmd.Context(), args[0], field)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			s := rep.Summary
			fmt.Fprintf(out, "Model:        %s\n", s.ID)
			if s.Name != "" {
				fmt.Fprintf(out, "Name:         %s\n", s.Name)
			}
			fmt.Fprintf(out, "Reactions:    %d\n", s.Reactions)
			fmt.Fprintf(out, "Metabolites:  %d\n", s.Metabolites)
			fmt.Fprintf(out, "Compartments: %s\n", strings.Join(s.Compartments, ", "))
			fmt.Fprintf(out, "Subsystems:   %d\n", len(s.Subsystems))
			for _, sub := range s.Subsystems {
				fmt.Fprintf(out, "  - %s\n", sub)
			}
			if field != "" {
				fmt.Fprintf(out, "\n%s: %d subgraph(s)\n", field, len(rep.Partition))
				for _, p := range rep.Partition {
					fmt.Fprintf(out, "  - %s\n", p)
				}
			}
			return nil
		},
	}

	c.Flags().StringVarP(&field, "field", "f", "", "Reaction or metabolite field to partition by")
	return c
}

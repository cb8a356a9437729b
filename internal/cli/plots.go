package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func plotsCmd(flags *globalFlags) *cobra.Command {
	c := &cobra.Command{
		Use:   "plots",
		Short: "Plot specs in the workspace",
	}
	c.AddCommand(plotsListCmd(flags))
	return c
}

func plotsListCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List plot specs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(flags)
			if err != nil {
				return err
			}

			refs, err := ws.Plots.ListPlots(ws.Root)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(refs) == 0 {
				fmt.Fprintln(out, "(no plot specs found)")
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

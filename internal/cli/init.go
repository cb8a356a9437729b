package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sammiviz/sammi/internal/infra/fsworkspace"
	"github.com/sammiviz/sammi/internal/usecase"
)

func initCmd() *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a workspace with a toy model and demo plot specs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			root, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("invalid workspace path: %w", err)
			}

			if err := usecase.NewInitWorkspace(fsworkspace.NewInitializer()).Execute(root, force); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Workspace ready at %s\n\n", root)
			fmt.Fprintln(out, "Next:")
			fmt.Fprintln(out, "  sammi plots list")
			fmt.Fprintln(out, "  sammi plot 02_subsystems")
			return nil
		},
	}

	c.Flags().BoolVar(&force, "force", false, "Overwrite existing files with the bundled ones")
	return c
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sammiviz/sammi/internal/usecase"
)

func openCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "open <map>",
		Short: "Open a generated map in the browser (\".html\" optional)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(flags)
			if err != nil {
				return err
			}

			path, err := usecase.NewOpenMap(ws.Maps, ws.Opener).Execute(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Opened %s\n", relTo(ws.Root, path))
			return nil
		},
	}
}

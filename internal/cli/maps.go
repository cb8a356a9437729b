package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func mapsCmd(flags *globalFlags) *cobra.Command {
	c := &cobra.Command{
		Use:   "maps",
		Short: "Generated maps in the browser directory",
	}
	c.AddCommand(mapsListCmd(flags))
	return c
}

func mapsListCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List generated maps, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(flags)
			if err != nil {
				return err
			}

			recs, err := ws.Maps.ListMaps()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(recs) == 0 {
				fmt.Fprintln(out, "(no maps found)")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "MAP\tPLOT\tSELECTION\tCREATED")
			for _, r := range recs {
				created := "-"
				if !r.CreatedAt.IsZero() {
					created = r.CreatedAt.Local().Format("2006-01-02 15:04")
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.HTMLName, dash(r.Plot), dash(r.Selection), created)
			}
			return tw.Flush()
		},
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

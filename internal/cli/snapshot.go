package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sammiviz/sammi/internal/infra/browser"
)

func snapshotCmd(flags *globalFlags) *cobra.Command {
	var out string
	var width, height int
	var settle time.Duration

	c := &cobra.Command{
		Use:   "snapshot <map>",
		Short: "Save a PNG of a generated map using headless Chrome",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(flags)
			if err != nil {
				return err
			}

			page, err := ws.Maps.Resolve(args[0])
			if err != nil {
				return err
			}
			if out == "" {
				out = strings.TrimSuffix(page, filepath.Ext(page)) + ".png"
			}

			s := browser.NewSnapshotter()
			if width > 0 {
				s.Width = int64(width)
			}
			if height > 0 {
				s.Height = int64(height)
			}
			if settle > 0 {
				s.Settle = settle
			}

			if err := s.Capture(cmd.Context(), page, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", relTo(ws.Root, out))
			return nil
		},
	}

	c.Flags().StringVarP(&out, "out", "o", "", "PNG path (default: next to the map)")
	c.Flags().IntVar(&width, "width", 0, "Viewport width in pixels")
	c.Flags().IntVar(&height, "height", 0, "Viewport height in pixels")
	c.Flags().DurationVar(&settle, "settle", 0, "Time to let the map lay itself out before the capture")
	return c
}

package cli

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/sammiviz/sammi/internal/infra/httpserve"
	"github.com/sammiviz/sammi/internal/infra/logger"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var addr string

	c := &cobra.Command{
		Use:   "serve",
		Short: "Serve generated maps and a JSON API over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(flags)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = ws.Config.Serve.Addr
			}
			if !flags.debug {
				gin.SetMode(gin.ReleaseMode)
			}

			srv := httpserve.NewServer(httpserve.Deps{
				Root:       ws.Root,
				BrowserDir: ws.BrowserDir,
				Maps:       ws.Maps,
				Plots:      ws.Plots,
				Render:     ws.RenderPlot,
				Logger:     logger.L(),
			})

			fmt.Fprintf(cmd.OutOrStdout(), "Serving %s on http://%s%s/\n", relTo(ws.Root, ws.BrowserDir), addr, httpserve.MapsPrefix)
			return srv.Run(cmd.Context(), addr)
		},
	}

	c.Flags().StringVar(&addr, "addr", "", "Listen address (default from sammi.yaml serve.addr)")
	return c
}

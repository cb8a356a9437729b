package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sammiviz/sammi/internal/infra/fsworkspace"
	"github.com/sammiviz/sammi/internal/infra/logger"
	"github.com/sammiviz/sammi/internal/infra/workspacefinder"
	"github.com/sammiviz/sammi/internal/ui/tui"
)

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

type globalFlags struct {
	debug     bool
	workspace string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	var cleanup func() error

	cmd := &cobra.Command{
		Use:          "sammi",
		Short:        "sammi: build SAMMI metabolic maps from models and plot specs",
		SilenceUsage: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			// The TUI owns the terminal, so only plain commands echo warnings.
			if c == c.Root() {
				cleanup = setupLogger(flags, nil, true)
				return nil
			}
			cleanup = setupLogger(flags, c.ErrOrStderr(), false)
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if cleanup != nil {
				_ = cleanup()
			}
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			deps := tui.Deps{
				WorkspaceLocator:     workspacefinder.NewFinder(),
				WorkspaceInitializer: fsworkspace.NewInitializer(),
				Logger:               logger.L(),
				Debug:                flags.debug,
			}
			return tui.Run(deps)
		},
	}

	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable verbose logging to .sammi/logs/sammi.log")
	cmd.PersistentFlags().StringVarP(&flags.workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")

	cmd.AddCommand(
		plotCmd(flags),
		openCmd(flags),
		initCmd(),
		mapsCmd(flags),
		modelsCmd(flags),
		plotsCmd(flags),
		validateCmd(flags),
		serveCmd(flags),
		snapshotCmd(flags),
		versionCmd(),
	)
	return cmd
}

// setupLogger logs into the workspace when one is found. Only the TUI falls
// back to the working directory.
func setupLogger(flags *globalFlags, echo io.Writer, fallbackToWD bool) func() error {
	logRoot, err := resolveWorkspaceRoot(flags.workspace)
	if err != nil || logRoot == "" {
		if !fallbackToWD {
			return nil
		}
		wd, werr := os.Getwd()
		if werr != nil {
			wd = "."
		}
		logRoot, _ = filepath.Abs(wd)
	}

	cleanup, _ := logger.Setup(logger.Config{Root: logRoot, Debug: flags.debug, Echo: echo})
	return cleanup
}

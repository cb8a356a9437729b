package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sammiviz/sammi/internal/app/workspace"
	"github.com/sammiviz/sammi/internal/infra/logger"
	"github.com/sammiviz/sammi/internal/infra/workspacefinder"
)

func loadWorkspace(flags *globalFlags, opts ...workspace.Option) (*workspace.Workspace, error) {
	root, err := resolveWorkspaceRoot(flags.workspace)
	if err != nil {
		return nil, err
	}
	opts = append([]workspace.Option{workspace.WithLogger(logger.L())}, opts...)
	return workspace.Open(root, opts...)
}

func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	locator := workspacefinder.NewFinder()
	root, err := locator.FindRoot(wd)
	if err != nil {
		return "", fmt.Errorf("workspace not found from %q (tip: run `sammi init`): %w", wd, err)
	}
	return root, nil
}

func relTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

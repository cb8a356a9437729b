package tui

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sammiviz/sammi/internal/domain"
)

var reLine = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)

func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var oe *domain.OpError
	if errors.As(err, &oe) {
		switch oe.Kind {

		case domain.KindNotFound:
			switch {
			case strings.HasPrefix(oe.Op, "yamlplot"):
				return "Plot not found"
			case strings.HasPrefix(oe.Op, "mapstore"):
				return "Map not found"
			case strings.HasPrefix(oe.Op, "modelfile"), strings.HasPrefix(oe.Op, "fetch"), strings.HasPrefix(oe.Op, "yamldata"):
				if oe.Path != "" {
					return "File not found: " + filepath.Base(oe.Path)
				}
				return "File not found"
			case strings.HasPrefix(oe.Op, "workspacefinder"):
				return "Workspace not found"
			}
			return "Not found"

		case domain.KindInvalidConfig:
			base := "config"
			if strings.TrimSpace(oe.Path) != "" {
				base = filepath.Base(oe.Path)
			}

			line := extractLine(err.Error())
			if line != "" {
				return "Invalid YAML at " + base + " line " + line
			}

			if looksLikeYAMLProblem(err.Error()) {
				return "Invalid YAML at " + base
			}
			if oe.Err != nil {
				return "Invalid config: " + oe.Err.Error()
			}
			return "Invalid config"

		case domain.KindInvalidData:
			if oe.Err != nil {
				return "Invalid model or data: " + oe.Err.Error()
			}
			return "Invalid model or data"

		case domain.KindExecution:
			if strings.HasPrefix(oe.Op, "browser") {
				return "Could not open browser"
			}
			return "Unexpected error (see logs)"

		default:
			return "Unexpected error (see logs)"
		}
	}

	if looksLikeYAMLProblem(err.Error()) {
		line := extractLine(err.Error())
		if line != "" {
			return "Invalid YAML line " + line
		}
		return "Invalid YAML"
	}

	return "Unexpected error (see logs)"
}

func looksLikeYAMLProblem(s string) bool {
	ls := strings.ToLower(s)
	return strings.Contains(ls, "yaml:") || strings.Contains(ls, "did not find expected") || strings.Contains(ls, "cannot unmarshal")
}

func extractLine(s string) string {
	m := reLine.FindStringSubmatch(s)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}

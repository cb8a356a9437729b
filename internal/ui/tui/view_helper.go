package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sammiviz/sammi/internal/domain"
	"github.com/sammiviz/sammi/internal/usecase"
)

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

func mapDescription(r domain.MapRecord) string {
	var parts []string
	if r.Plot != "" {
		parts = append(parts, r.Plot)
	}
	if r.Selection != "" {
		parts = append(parts, r.Selection)
	}
	if r.Overlays > 0 {
		parts = append(parts, fmt.Sprintf("%d overlay(s)", r.Overlays))
	}
	if !r.CreatedAt.IsZero() {
		parts = append(parts, r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	if len(parts) == 0 {
		return "(not in history)"
	}
	return strings.Join(parts, " • ")
}

func renderModelReport(rep usecase.ModelReport) string {
	s := rep.Summary

	var b strings.Builder
	b.WriteString("Model: ")
	b.WriteString(s.ID)
	if s.Name != "" && s.Name != s.ID {
		b.WriteString(" (")
		b.WriteString(s.Name)
		b.WriteString(")")
	}
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Reactions:    %d\n", s.Reactions)
	fmt.Fprintf(&b, "Metabolites:  %d\n", s.Metabolites)
	fmt.Fprintf(&b, "Compartments: %s\n\n", strings.Join(s.Compartments, ", "))

	b.WriteString("Subsystems:\n")
	if len(rep.Partition) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, p := range rep.Partition {
		label := p
		if label == "" {
			label = "(empty)"
		}
		b.WriteString("  - ")
		b.WriteString(label)
		b.WriteString("\n")
	}
	return b.String()
}

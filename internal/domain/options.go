package domain

import (
	"strings"
)

// DefaultHTMLName is the page written when no name is given.
const DefaultHTMLName = "index_load.html"

// Options controls where a map is written and what happens after.
type Options struct {
	// HTMLName is the page written next to the browser template. An existing
	// page with the same name is overwritten.
	HTMLName string

	// Load opens the page in a browser once written.
	Load bool

	// JSCode is extra JavaScript run after the model is loaded.
	JSCode string
}

// DefaultOptions returns index_load.html, opened on write, no extra code.
func DefaultOptions() Options {
	return Options{HTMLName: DefaultHTMLName, Load: true}
}

// NewOptions validates and builds output options. An empty htmlName falls back
// to DefaultHTMLName and a missing ".html" suffix is appended.
func NewOptions(htmlName string, load bool, jscode string) (Options, error) {
	name, err := NormalizeHTMLName(htmlName)
	if err != nil {
		return Options{}, err
	}
	return Options{HTMLName: name, Load: load, JSCode: jscode}, nil
}

// NormalizeHTMLName validates a page name and appends ".html" when missing.
func NormalizeHTMLName(htmlName string) (string, error) {
	const op = "domain.options"

	name := strings.TrimSpace(htmlName)
	if name == "" {
		return DefaultHTMLName, nil
	}
	if strings.EqualFold(name, "index.html") || strings.EqualFold(name, "index") {
		return "", invalidConfig(op, "output file cannot be named index.html")
	}
	if strings.ContainsAny(name, `/\`) {
		return "", invalidConfig(op, "output file must be a bare file name")
	}
	if !strings.HasSuffix(strings.ToLower(name), ".html") {
		name += ".html"
	}
	return name, nil
}

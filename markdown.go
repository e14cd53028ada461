package main

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
)

func isMarkdown(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// renderMarkdown returns glamour-rendered terminal output for the provided
// Markdown, falling back to the raw text when rendering fails.
func renderMarkdown(content string, wrap int) string {
	if wrap < 0 {
		wrap = 0
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return content
	}
	out, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return out
}

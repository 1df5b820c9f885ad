package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders model-written Markdown for the terminal, wrapped
// to width. Rendering errors fall back to the raw text.
func RenderMarkdown(md string, width int) string {
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

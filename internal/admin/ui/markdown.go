package ui

import (
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders md for out. Non-terminal output gets the plain
// "notty" style so piping to a file stays readable.
func RenderMarkdown(out io.Writer, md string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}

	style := glamour.WithStandardStyle("notty")
	if IsTerminal(out) {
		style = glamour.WithAutoStyle()
	}

	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return "", err
	}

	rendered, err := r.Render(md)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(rendered, "\n") + "\n", nil
}

// MarkdownField returns the first string field in data that looks like the
// entry body, checked in order: body, content, markdown, description.
func MarkdownField(data map[string]any) (string, bool) {
	for _, key := range []string{"body", "content", "markdown", "description"} {
		if v, ok := data[key].(string); ok && strings.TrimSpace(v) != "" {
			return v, true
		}
	}
	return "", false
}

// Package preview shows a rendered report in the terminal.
package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Render converts Markdown to styled terminal output. style is a glamour
// standard style name ("auto" picks one from the terminal background); a
// width of 0 disables word-wrap.
func Render(md, style string, width int) (string, error) {
	if strings.TrimSpace(md) == "" {
		return md, nil
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

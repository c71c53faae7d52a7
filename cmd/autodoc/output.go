package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/ormasoftchile/autodoc/pkg/report"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// summaryWidth bounds the description shown per play.
const summaryWidth = 60

// printError writes a failure as "error: <message>".
func printError(w io.Writer, err error) {
	fmt.Fprintln(w, failStyle.Render("error: "+err.Error()))
}

func printSummary(w io.Writer, res *report.Result) {
	fmt.Fprintln(w, okStyle.Render(fmt.Sprintf("✓ wrote %s (%d play(s))", res.OutputPath, len(res.Plays))))
	for _, p := range res.Plays {
		desc := runewidth.Truncate(p.Description, summaryWidth, "...")
		fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("  - %s  [%s]", desc, p.Hosts)))
	}
}

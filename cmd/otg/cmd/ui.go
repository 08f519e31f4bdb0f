package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorDim    = lipgloss.Color("240")

	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
)

func printTitle(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleTitle.Render(fmt.Sprintf(format, args...)))
}

// printField writes an indented "label: value" line.
func printField(w io.Writer, label string, value any) {
	fmt.Fprintf(w, "  %s %v\n", styleDim.Render(fmt.Sprintf("%-12s", label+":")), value)
}

func printOK(w io.Writer, msg string) {
	fmt.Fprintln(w, styleSuccess.Render("✓ ")+msg)
}

func printWarn(w io.Writer, msg string) {
	fmt.Fprintln(w, styleWarning.Render("! ")+msg)
}

func printFail(w io.Writer, msg string) {
	fmt.Fprintln(w, styleError.Render("✗ ")+msg)
}

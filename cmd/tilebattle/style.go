package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// styles holds the lipgloss styles used for command output. When stdout is
// not a terminal every style renders plain text.
type styles struct {
	title lipgloss.Style
	label lipgloss.Style
	good  lipgloss.Style
	bad   lipgloss.Style
	dim   lipgloss.Style
	board lipgloss.Style
}

func newStyles() styles {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		plain := lipgloss.NewStyle()
		return styles{title: plain, label: plain, good: plain, bad: plain, dim: plain, board: plain}
	}
	return styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")),
		label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
		good: lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")),
		bad: lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")),
		dim: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		board: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 1),
	}
}

// terminalWidth returns the stdout width, or fallback when it is unknown.
func terminalWidth(fallback int) int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return fallback
}

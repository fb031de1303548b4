package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	hashStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// useColor decides whether styled output is wanted: an explicit config
// toggle wins, otherwise follow the terminal.
func useColor(cfg Config) bool {
	if cfg.Color != nil {
		return *cfg.Color
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

func styled(style lipgloss.Style, text string, color bool) string {
	if !color {
		return text
	}
	return style.Render(text)
}

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Base styles for scribeflow TUI components
var (
	// Header style for titles and section headers
	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	// Success style for positive feedback
	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// Error style for error messages
	StyleError = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	// Muted style for secondary text
	StyleMuted = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// Subtle style for hints and descriptions
	StyleSubtle = lipgloss.NewStyle().
			Foreground(ColorSubtle).
			Italic(true)
)

const logoASCII = `
               _ _          __ _
 ___  ___ _ __(_) |__   ___/ _| | _____      __
/ __|/ __| '__| | '_ \ / _ \ |_| |/ _ \ \ /\ / /
\__ \ (__| |  | | |_) |  __/  _| | (_) \ V  V /
|___/\___|_|  |_|_.__/ \___|_| |_|\___/ \_/\_/  `

// Logo returns the scribeflow ASCII art
func Logo() string {
	return StyleHeader.Render(strings.Trim(logoASCII, "\n"))
}

// ColorEnabled reports whether the terminal supports colored output.
func ColorEnabled() bool {
	return termenv.DefaultOutput().Profile != termenv.Ascii
}

// Package style renders fpsync's terminal output: run separators,
// command echoes, and the highlight filter over rsync's itemized
// change lines.
package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// Styles used across fpsync output
var (
	// CommandStyle renders echoed command lines
	CommandStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	// NewerStyle highlights itemize lines for freshly transferred files
	NewerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)

	// ErrorStyle renders fatal diagnostics
	ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// Colorized reports whether styled output should go to f. NO_COLOR,
// pipes, and dumb terminals all disable styling.
func Colorized(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	return termenv.ColorProfile() != termenv.Ascii
}

// Separator returns the visual rule printed before each command
func Separator(title string) string {
	section := pterm.DefaultSection.WithLevel(2)
	return section.Sprint(title)
}

// Command returns a styled command echo line
func Command(cmdline string, colorized bool) string {
	if !colorized {
		return cmdline
	}
	return CommandStyle.Render(cmdline)
}

// Error returns a styled fatal diagnostic
func Error(msg string, colorized bool) string {
	if !colorized {
		return msg
	}
	return ErrorStyle.Render(msg)
}

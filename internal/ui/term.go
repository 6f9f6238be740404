package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	colorJob      = color.New(color.FgCyan, color.Bold)
	colorExternal = color.New(color.FgGreen)
	colorHeader   = color.New(color.Bold)
	colorWarn     = color.New(color.FgYellow)
	colorMuted    = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

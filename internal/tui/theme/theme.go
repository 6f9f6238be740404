// Package theme provides color themes for the TUI.
package theme

import (
	"embed"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// Theme holds all colors for a TUI theme.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`           // Base background
	BgHighlight string `toml:"bg_highlight"` // Blocks, subtle highlight
	BgSelection string `toml:"bg_selection"` // Cursor, selection
	Fg          string `toml:"fg"`           // Primary foreground
	FgMuted     string `toml:"fg_muted"`     // Past items, muted elements
	Accent      string `toml:"accent"`       // Title, borders
	Job         string `toml:"job"`          // Shop job blocks
	External    string `toml:"external"`     // External calendar blocks
	Current     string `toml:"current"`      // In-progress job accent
	Warning     string `toml:"warning"`      // Warnings, drag mode
}

// Color returns a lipgloss.Color for the given hex string.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

// Load loads a theme by name from embedded files.
// Falls back to mocha if the theme is not found.
func Load(name string) (*Theme, error) {
	if name == "" {
		name = "mocha"
	}
	name = strings.ToLower(name)

	path := "embedded/" + name + ".toml"
	data, err := embeddedThemes.ReadFile(path)
	if err != nil {
		if name != "mocha" {
			return Load("mocha")
		}
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}

	return &t, nil
}

// Available returns a list of available theme names.
func Available() []string {
	return []string{"mocha", "latte"}
}

// IsAvailable reports whether a theme name is available.
func IsAvailable(name string) bool {
	name = strings.ToLower(name)
	for _, themeName := range Available() {
		if themeName == name {
			return true
		}
	}
	return false
}

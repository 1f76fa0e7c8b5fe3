// Package styles defines the visual styling for envtmpl's terminal output.
//
// Styles use semantic names and adaptive colors that adjust to light and dark
// terminal themes. They are declared in the embedded styles.yaml.
package styles

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML
type StyleDef struct {
	Bold         bool   `yaml:"bold,omitempty"`
	Italic       bool   `yaml:"italic,omitempty"`
	Underline    bool   `yaml:"underline,omitempty"`
	Foreground   string `yaml:"foreground,omitempty"`
	Background   string `yaml:"background,omitempty"`
	Width        int    `yaml:"width,omitempty"`
	MarginBottom int    `yaml:"marginBottom,omitempty"`
	PaddingLeft  int    `yaml:"paddingLeft,omitempty"`
}

// Config represents the complete styles configuration
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// StyleRegistry maps semantic names to lipgloss styles
var StyleRegistry map[string]lipgloss.Style

var colors map[string]lipgloss.AdaptiveColor

//go:embed styles.yaml
var embeddedStyles []byte

// Names every caller may rely on.
var requiredStyles = []string{
	"Header", "Success", "Error", "Warning", "Info", "Bold", "Italic",
	"Muted", "FilePath", "Arrow", "FuncName", "FuncArity", "DryRunBanner", "Detail",
}

func init() {
	if err := LoadStylesFromData(embeddedStyles); err != nil {
		initDefaultStyles()
	}
}

// initDefaultStyles keeps the program usable if the embedded file is broken
func initDefaultStyles() {
	colors = make(map[string]lipgloss.AdaptiveColor)
	StyleRegistry = make(map[string]lipgloss.Style)
	for _, name := range requiredStyles {
		StyleRegistry[name] = lipgloss.NewStyle()
	}
}

// LoadStyles loads style configuration from a YAML file
func LoadStyles(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read styles file %s: %w", path, err)
	}
	return LoadStylesFromData(data)
}

// LoadStylesFromData loads style configuration from byte data
func LoadStylesFromData(data []byte) error {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse styles data: %w", err)
	}

	newColors := make(map[string]lipgloss.AdaptiveColor, len(config.Colors))
	for name, def := range config.Colors {
		newColors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	registry := make(map[string]lipgloss.Style, len(config.Styles))
	for name, def := range config.Styles {
		registry[name] = buildStyle(def, newColors)
	}

	colors = newColors
	StyleRegistry = registry
	return nil
}

// buildStyle constructs a lipgloss style from a style definition
func buildStyle(def StyleDef, palette map[string]lipgloss.AdaptiveColor) lipgloss.Style {
	style := lipgloss.NewStyle()

	if def.Bold {
		style = style.Bold(true)
	}
	if def.Italic {
		style = style.Italic(true)
	}
	if def.Underline {
		style = style.Underline(true)
	}
	if color, ok := palette[def.Foreground]; ok {
		style = style.Foreground(color)
	}
	if color, ok := palette[def.Background]; ok {
		style = style.Background(color)
	}
	if def.Width > 0 {
		style = style.Width(def.Width)
	}
	if def.MarginBottom > 0 {
		style = style.MarginBottom(def.MarginBottom)
	}
	if def.PaddingLeft > 0 {
		style = style.PaddingLeft(def.PaddingLeft)
	}

	return style
}

// GetStyle safely retrieves a style from the registry
func GetStyle(name string) lipgloss.Style {
	if style, ok := StyleRegistry[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// Color returns a named palette color.
func Color(name string) (lipgloss.AdaptiveColor, bool) {
	c, ok := colors[name]
	return c, ok
}

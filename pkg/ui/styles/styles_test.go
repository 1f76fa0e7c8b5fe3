package styles_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talss89/envtmpl/pkg/ui/styles"
)

func TestEmbeddedStylesLoaded(t *testing.T) {
	for _, name := range []string{
		"Header", "Success", "Error", "Warning", "Info", "Bold", "Italic",
		"Muted", "FilePath", "Arrow", "FuncName", "FuncArity", "DryRunBanner", "Detail",
	} {
		_, ok := styles.StyleRegistry[name]
		assert.True(t, ok, "style %s should exist", name)
	}

	assert.True(t, styles.GetStyle("Error").GetBold())
	assert.Equal(t, 16, styles.GetStyle("FuncName").GetWidth())

	c, ok := styles.Color("error")
	require.True(t, ok)
	assert.Equal(t, "#FF6B6B", c.Dark)
}

func TestGetStyleUnknown(t *testing.T) {
	assert.Equal(t, "x", styles.GetStyle("NoSuchStyle").Render("x"))
}

func TestLoadStyles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "styles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
colors:
  accent:
    light: "#000000"
    dark: "#FFFFFF"
styles:
  Custom:
    italic: true
    foreground: accent
`), 0644))

	original := styles.StyleRegistry
	defer func() { styles.StyleRegistry = original }()

	require.NoError(t, styles.LoadStyles(path))
	custom := styles.GetStyle("Custom")
	assert.True(t, custom.GetItalic())
	assert.Equal(t, lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}, custom.GetForeground())

	assert.Error(t, styles.LoadStyles(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, styles.LoadStylesFromData([]byte("styles: [not, a, map]")))
}

package topics

import (
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
)

// GlamourRenderer renders markdown topics with glamour. Other topics are
// written verbatim.
type GlamourRenderer struct {
	// Style is a glamour style name or path. Empty picks one from the
	// terminal background.
	Style string
	// Width wraps lines. 0 keeps glamour's default.
	Width int
	// Plain reports whether w must not receive colour. Such writers get the
	// "notty" style whatever Style says.
	Plain func(w io.Writer) bool
}

// NewGlamourRenderer returns a renderer that styles topics for terminals and
// falls back to plain markdown for everything else.
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Plain: NoColor}
}

// NoColor is true when NO_COLOR is set or w is not a terminal.
func NoColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return true
	}
	return !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
}

func (r *GlamourRenderer) Render(w io.Writer, content, ext string) error {
	if ext != ".md" {
		_, err := io.WriteString(w, content)
		return err
	}

	renderer, err := glamour.NewTermRenderer(r.options(w)...)
	if err != nil {
		_, err = io.WriteString(w, content)
		return err
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		rendered = content
	}
	_, err = io.WriteString(w, rendered)
	return err
}

func (r *GlamourRenderer) options(w io.Writer) []glamour.TermRendererOption {
	var options []glamour.TermRendererOption
	switch {
	case r.Plain != nil && r.Plain(w):
		options = append(options, glamour.WithStylePath("notty"))
	case r.Style != "":
		options = append(options, glamour.WithStylePath(r.Style))
	default:
		options = append(options, glamour.WithAutoStyle())
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}
	return options
}

// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/talss89/envtmpl/pkg/ui/display"
	"github.com/talss89/envtmpl/pkg/ui/styles"
	"github.com/talss89/envtmpl/pkg/ui/text"
)

// Renderer provides styled terminal output
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{output: w}, nil
}

// RenderProgress renders a file line with styled paths.
func (r *Renderer) RenderProgress(p display.Progress) error {
	line := fmt.Sprintf("%s %s %s %s",
		styles.GetStyle("FilePath").Render(p.Input),
		styles.GetStyle("Arrow").Render("→"),
		styles.GetStyle("FilePath").Render(p.Output),
		styles.GetStyle("Muted").Render(fmt.Sprintf("(%d bytes)", p.Bytes)),
	)
	if p.DryRun {
		line += " " + styles.GetStyle("DryRunBanner").Render("[dry run]")
	}
	_, err := fmt.Fprintln(r.output, line)
	return err
}

// RenderSummary renders the totals with a success or dry-run style.
func (r *Renderer) RenderSummary(s display.Summary) error {
	style := styles.GetStyle("Success")
	verb := "Rendered"
	if s.DryRun {
		style = styles.GetStyle("DryRunBanner")
		verb = "Would render"
	}
	files := "files"
	if s.Files == 1 {
		files = "file"
	}
	targets := "targets"
	if s.Targets == 1 {
		targets = "target"
	}
	_, err := fmt.Fprintln(r.output, style.Render(fmt.Sprintf("%s %d %s from %d %s", verb, s.Files, files, s.Targets, targets)))
	return err
}

// RenderFuncs renders the catalog as aligned columns.
func (r *Renderer) RenderFuncs(entries []display.FuncEntry) error {
	if _, err := fmt.Fprintln(r.output, styles.GetStyle("Header").Render("Template functions")); err != nil {
		return err
	}
	for _, e := range entries {
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			styles.GetStyle("FuncName").Render(e.Name),
			styles.GetStyle("FuncArity").Render(e.Arity),
			e.Summary,
		)
		if _, err := fmt.Fprintln(r.output, row); err != nil {
			return err
		}
	}
	return nil
}

// RenderError renders an error with appropriate formatting
func (r *Renderer) RenderError(err error) error {
	info := display.NewErrorInfo(err)
	if _, werr := fmt.Fprintln(r.output, styles.GetStyle("Error").Render("Error: ")+info.Message); werr != nil {
		return werr
	}
	for _, line := range text.DetailLines(info) {
		if _, werr := fmt.Fprintln(r.output, styles.GetStyle("Detail").Render(line)); werr != nil {
			return werr
		}
	}
	return nil
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, styles.GetStyle("Info").Render(msg))
	return err
}

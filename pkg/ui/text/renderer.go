// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"sort"

	"github.com/talss89/envtmpl/pkg/ui/display"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderProgress prints "input -> output".
func (r *Renderer) RenderProgress(p display.Progress) error {
	suffix := ""
	if p.DryRun {
		suffix = " [dry run]"
	}
	_, err := fmt.Fprintf(r.output, "%s -> %s%s\n", p.Input, p.Output, suffix)
	return err
}

// RenderSummary prints the totals line.
func (r *Renderer) RenderSummary(s display.Summary) error {
	verb := "Rendered"
	if s.DryRun {
		verb = "Would render"
	}
	_, err := fmt.Fprintf(r.output, "%s %s from %s\n", verb, plural(s.Files, "file"), plural(s.Targets, "target"))
	return err
}

// RenderFuncs prints one function per line.
func (r *Renderer) RenderFuncs(entries []display.FuncEntry) error {
	for _, e := range entries {
		if _, err := fmt.Fprintf(r.output, "%-16s %-6s %s\n", e.Name, e.Arity, e.Summary); err != nil {
			return err
		}
	}
	return nil
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	info := display.NewErrorInfo(err)
	if _, werr := fmt.Fprintf(r.output, "Error: %s\n", info.Message); werr != nil {
		return werr
	}
	for _, line := range DetailLines(info) {
		if _, werr := fmt.Fprintf(r.output, "  %s\n", line); werr != nil {
			return werr
		}
	}
	return nil
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

// DetailLines formats error details as "key: value" lines in key order. The
// code is already part of the message.
func DetailLines(info display.ErrorInfo) []string {
	var lines []string
	keys := make([]string, 0, len(info.Details))
	for k := range info.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %v", k, info.Details[k]))
	}
	return lines
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

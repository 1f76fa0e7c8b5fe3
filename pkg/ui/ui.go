// Package ui provides a unified interface for rendering output in different formats.
// It supports terminal (rich), text (plain), and JSON output formats.
package ui

import (
	"io"
	"os"

	"github.com/talss89/envtmpl/pkg/errors"
	"github.com/talss89/envtmpl/pkg/ui/display"
	"github.com/talss89/envtmpl/pkg/ui/json"
	"github.com/talss89/envtmpl/pkg/ui/terminal"
	"github.com/talss89/envtmpl/pkg/ui/text"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderProgress reports a single rendered file
	RenderProgress(p display.Progress) error

	// RenderSummary reports the totals of a run
	RenderSummary(s display.Summary) error

	// RenderFuncs lists template functions
	RenderFuncs(entries []display.FuncEntry) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a new renderer based on the specified format.
// It automatically detects terminal capabilities when format is Auto.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		// Buffers and pipes handed in by callers get plain text
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		return terminal.New(output)
	case FormatText:
		return text.New(output)
	case FormatJSON:
		return json.New(output)
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}

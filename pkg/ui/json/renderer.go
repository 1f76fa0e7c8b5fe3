// Package json provides machine-readable JSON output, one object per line.
package json

import (
	"encoding/json"
	"io"

	"github.com/talss89/envtmpl/pkg/ui/display"
)

// Renderer provides JSON output for machine consumption
type Renderer struct {
	encoder *json.Encoder
}

// New creates a new JSON renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{encoder: json.NewEncoder(output)}, nil
}

type event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// RenderProgress emits a "file" event.
func (r *Renderer) RenderProgress(p display.Progress) error {
	return r.encoder.Encode(event{Event: "file", Data: p})
}

// RenderSummary emits a "summary" event.
func (r *Renderer) RenderSummary(s display.Summary) error {
	return r.encoder.Encode(event{Event: "summary", Data: s})
}

// RenderFuncs emits the catalog as a single array.
func (r *Renderer) RenderFuncs(entries []display.FuncEntry) error {
	if entries == nil {
		entries = []display.FuncEntry{}
	}
	return r.encoder.Encode(entries)
}

// RenderError renders an error as JSON, with its code and details when known
func (r *Renderer) RenderError(err error) error {
	return r.encoder.Encode(display.NewErrorInfo(err))
}

// RenderMessage renders a simple message as JSON
func (r *Renderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": msg})
}

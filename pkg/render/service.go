// Package render turns template text into output by combining an Engine,
// the function catalog and a freshly built context.
package render

import (
	"bytes"

	"github.com/rs/zerolog"

	"github.com/talss89/envtmpl/pkg/funcs"
	"github.com/talss89/envtmpl/pkg/renderctx"
	"github.com/talss89/envtmpl/pkg/value"
)

// CallHook observes every template function call. args is nil when the
// arguments could not be converted.
type CallHook func(name string, args []value.Value, result value.Value, err error)

// Service renders one template at a time. It holds no state between calls.
type Service struct {
	Engine  Engine
	Context renderctx.Builder
	Hook    CallHook
}

// Render parses text, builds a new context and executes. Output is returned
// only when the whole template succeeded.
func (s Service) Render(name, text string) (string, error) {
	engine := s.Engine
	if engine == nil {
		engine = NewTextEngine()
	}

	compiled, err := engine.Parse(name, text, funcs.Catalog(), s.Hook)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := compiled.Execute(&buf, s.Context.Build()); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// LogHook traces successful calls and logs failures at debug level.
func LogHook(logger zerolog.Logger) CallHook {
	return func(name string, args []value.Value, result value.Value, err error) {
		strs := make([]string, len(args))
		for i, a := range args {
			strs[i] = a.String()
		}
		if err != nil {
			logger.Debug().
				Err(err).
				Str("func", name).
				Strs("args", strs).
				Msg("Template function failed")
			return
		}
		logger.Trace().
			Str("func", name).
			Strs("args", strs).
			Str("result", result.String()).
			Msg("Template function called")
	}
}

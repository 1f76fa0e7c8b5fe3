package render

import (
	"io"
	"text/template"

	"github.com/talss89/envtmpl/pkg/errors"
	"github.com/talss89/envtmpl/pkg/funcs"
	"github.com/talss89/envtmpl/pkg/value"
)

// Engine parses template text with a function catalog attached.
type Engine interface {
	Parse(name, text string, catalog []funcs.Func, hook CallHook) (Compiled, error)
}

// Compiled is a parsed template ready to execute.
type Compiled interface {
	Execute(w io.Writer, data any) error
}

// MissingKey modes understood by text/template.
const (
	MissingKeyDefault = "default"
	MissingKeyZero    = "zero"
	MissingKeyError   = "error"
)

// Option configures a TextEngine.
type Option func(*TextEngine)

// WithDelims replaces the default "{{" and "}}" action delimiters. Empty
// values keep the default for that side.
func WithDelims(left, right string) Option {
	return func(e *TextEngine) {
		e.left, e.right = left, right
	}
}

// WithMissingKey sets how a lookup of an absent map key behaves.
func WithMissingKey(mode string) Option {
	return func(e *TextEngine) {
		e.missingKey = mode
	}
}

// TextEngine is the text/template implementation of Engine.
type TextEngine struct {
	left       string
	right      string
	missingKey string
}

// NewTextEngine creates an engine with text/template's default behaviour
// unless options say otherwise.
func NewTextEngine(opts ...Option) *TextEngine {
	e := &TextEngine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Parse compiles text. Every catalog function is exposed under its name.
func (e *TextEngine) Parse(name, text string, catalog []funcs.Func, hook CallHook) (Compiled, error) {
	switch e.missingKey {
	case "", MissingKeyDefault, MissingKeyZero, MissingKeyError:
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown missing key mode %q", e.missingKey).
			WithDetail("template", name)
	}

	fm := make(template.FuncMap, len(catalog))
	for _, f := range catalog {
		fm[f.Name] = adapt(f, hook)
	}

	tmpl := template.New(name).Funcs(fm)
	if e.left != "" || e.right != "" {
		tmpl = tmpl.Delims(e.left, e.right)
	}
	if e.missingKey != "" {
		tmpl = tmpl.Option("missingkey=" + e.missingKey)
	}

	parsed, err := tmpl.Parse(text)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplateParse, "failed to parse template %s", name).
			WithDetail("template", name)
	}
	return &compiledText{tmpl: parsed}, nil
}

type compiledText struct {
	tmpl *template.Template
}

func (c *compiledText) Execute(w io.Writer, data any) error {
	if err := c.tmpl.Execute(w, data); err != nil {
		return errors.Wrapf(err, errors.ErrTemplateExec, "failed to render template %s", c.tmpl.Name()).
			WithDetail("template", c.tmpl.Name())
	}
	return nil
}

// adapt turns a catalog entry into the shape text/template calls. The
// engine wraps returned errors with %w, so the function's code survives.
func adapt(f funcs.Func, hook CallHook) func(args ...any) (any, error) {
	return func(args ...any) (any, error) {
		vals := make([]value.Value, len(args))
		for i, arg := range args {
			v, err := value.FromAny(arg)
			if err != nil {
				err = errors.Wrapf(err, errors.GetErrorCode(err), "%s: argument %d", f.Name, i+1).
					WithDetail("func", f.Name)
				if hook != nil {
					hook(f.Name, nil, nil, err)
				}
				return nil, err
			}
			vals[i] = v
		}

		result, err := f.Call(vals)
		if hook != nil {
			hook(f.Name, vals, result, err)
		}
		if err != nil {
			return nil, err
		}
		return value.ToAny(result), nil
	}
}


package funcs

import (
	"strings"

	"github.com/talss89/envtmpl/pkg/value"
)

// list returns its arguments as a Sequence.
func list(args []value.Value) (value.Value, error) {
	seq := make(value.Sequence, len(args))
	copy(seq, args)
	return seq, nil
}

// has reports whether the Sequence in the second argument holds a value
// structurally equal to the first.
func has(args []value.Value) (value.Value, error) {
	seq, ok := args[1].(value.Sequence)
	if !ok {
		return nil, kindError("has", 1, "a list", args[1])
	}
	for _, elem := range seq {
		if value.Equal(elem, args[0]) {
			return value.Bool(true), nil
		}
	}
	return value.Bool(false), nil
}

// compact keeps the non-empty strings of a list. Every other element,
// including absent values, is dropped so that
// {{ compact (list .Env.A .Env.B) }} works when a variable is unset.
func compact(args []value.Value) (value.Value, error) {
	seq, ok := args[0].(value.Sequence)
	if !ok {
		return nil, kindError("compact", 0, "a list", args[0])
	}
	out := make(value.Sequence, 0, len(seq))
	for _, elem := range seq {
		if str, ok := elem.(value.String); ok && str != "" {
			out = append(out, str)
		}
	}
	return out, nil
}

// splitList splits the subject (second argument) on the delimiter (first).
// An empty subject yields an empty list rather than [""].
func splitList(args []value.Value) (value.Value, error) {
	delim, subject, err := delimAndSubject("splitList", args)
	if err != nil {
		return nil, err
	}
	if subject == "" {
		return value.Sequence{}, nil
	}
	parts := strings.Split(subject, delim)
	seq := make(value.Sequence, len(parts))
	for i, p := range parts {
		seq[i] = value.String(p)
	}
	return seq, nil
}

// dict pairs up its arguments. Keys that are not strings are rendered the
// way a template would print them.
func dict(args []value.Value) (value.Value, error) {
	m := make(value.Mapping, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		m[args[i].String()] = args[i+1]
	}
	return m, nil
}

package funcs

import (
	"strings"

	"github.com/talss89/envtmpl/pkg/value"
)

// defaultFn is written for pipelines: {{ .Env.PORT | default "8080" }}
// passes the fallback first and the piped value last.
func defaultFn(args []value.Value) (value.Value, error) {
	if _, absent := args[1].(value.NoValue); absent {
		return args[0], nil
	}
	return args[1], nil
}

// isTrue treats "false" (any case), "0" and "" as false. Every other string
// is true and every non-string is false.
func isTrue(args []value.Value) (value.Value, error) {
	s, ok := args[0].(value.String)
	if !ok {
		return value.Bool(false), nil
	}
	switch {
	case s == "", s == "0", strings.EqualFold(string(s), "false"):
		return value.Bool(false), nil
	default:
		return value.Bool(true), nil
	}
}

// ternary selects the first argument when the third is true.
func ternary(args []value.Value) (value.Value, error) {
	cond, ok := args[2].(value.Bool)
	if !ok {
		return nil, kindError("ternary", 2, "a bool", args[2])
	}
	if cond {
		return args[0], nil
	}
	return args[1], nil
}

package funcs

import (
	"path/filepath"
	"strings"

	"github.com/talss89/envtmpl/pkg/value"
)

var shellQuoter = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`, "`", "\\`")

// lower returns the lowercased string.
func lower(args []value.Value) (value.Value, error) {
	s, err := stringArg("lower", args, 0)
	if err != nil {
		return nil, err
	}
	return value.String(strings.ToLower(s)), nil
}

// upper returns the uppercased string.
func upper(args []value.Value) (value.Value, error) {
	s, err := stringArg("upper", args, 0)
	if err != nil {
		return nil, err
	}
	return value.String(strings.ToUpper(s)), nil
}

// quote wraps s in double quotes, escaping the characters a POSIX shell
// still interprets inside them.
func quote(args []value.Value) (value.Value, error) {
	s, err := stringArg("quote", args, 0)
	if err != nil {
		return nil, err
	}
	return value.String(`"` + shellQuoter.Replace(s) + `"`), nil
}

// trimAll strips one delimiter from the start and one from the end.
func trimAll(args []value.Value) (value.Value, error) {
	delim, subject, err := delimAndSubject("trimAll", args)
	if err != nil {
		return nil, err
	}
	return value.String(strings.TrimSuffix(strings.TrimPrefix(subject, delim), delim)), nil
}

func trimPrefix(args []value.Value) (value.Value, error) {
	delim, subject, err := delimAndSubject("trimPrefix", args)
	if err != nil {
		return nil, err
	}
	return value.String(strings.TrimPrefix(subject, delim)), nil
}

func trimSuffix(args []value.Value) (value.Value, error) {
	delim, subject, err := delimAndSubject("trimSuffix", args)
	if err != nil {
		return nil, err
	}
	return value.String(strings.TrimSuffix(subject, delim)), nil
}

func hasPrefix(args []value.Value) (value.Value, error) {
	prefix, subject, err := delimAndSubject("hasPrefix", args)
	if err != nil {
		return nil, err
	}
	return value.Bool(strings.HasPrefix(subject, prefix)), nil
}

func hasSuffix(args []value.Value) (value.Value, error) {
	suffix, subject, err := delimAndSubject("hasSuffix", args)
	if err != nil {
		return nil, err
	}
	return value.Bool(strings.HasSuffix(subject, suffix)), nil
}

// clean resolves "." and ".." segments without touching the filesystem.
// An empty path stays empty.
func clean(args []value.Value) (value.Value, error) {
	p, err := stringArg("clean", args, 0)
	if err != nil {
		return nil, err
	}
	if p == "" {
		return value.String(""), nil
	}
	return value.String(filepath.Clean(p)), nil
}

// nospace removes ASCII spaces only; tabs and newlines are kept.
func nospace(args []value.Value) (value.Value, error) {
	s, err := stringArg("nospace", args, 0)
	if err != nil {
		return nil, err
	}
	return value.String(strings.ReplaceAll(s, " ", "")), nil
}

// replace takes (subject, find, replacement) and replaces every occurrence:
// {{ replace .Env.HOST "." "-" }}.
func replace(args []value.Value) (value.Value, error) {
	subject, err := stringArg("replace", args, 0)
	if err != nil {
		return nil, err
	}
	find, err := stringArg("replace", args, 1)
	if err != nil {
		return nil, err
	}
	replacement, err := stringArg("replace", args, 2)
	if err != nil {
		return nil, err
	}
	return value.String(strings.ReplaceAll(subject, find, replacement)), nil
}

// empty is true for the empty string. It follows sprig in also treating an
// absent or nil value as empty, so {{ if empty .Env.UNSET }} holds. Numbers,
// booleans and collections are never empty.
func empty(args []value.Value) (value.Value, error) {
	switch v := args[0].(type) {
	case value.String:
		return value.Bool(v == ""), nil
	case value.NoValue, value.Nil:
		return value.Bool(true), nil
	default:
		return value.Bool(false), nil
	}
}

func delimAndSubject(name string, args []value.Value) (string, string, error) {
	delim, err := stringArg(name, args, 0)
	if err != nil {
		return "", "", err
	}
	subject, err := stringArg(name, args, 1)
	if err != nil {
		return "", "", err
	}
	return delim, subject, nil
}

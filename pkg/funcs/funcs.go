package funcs

import (
	"fmt"

	"github.com/talss89/envtmpl/pkg/errors"
	"github.com/talss89/envtmpl/pkg/value"
)

// Variadic marks a Func without an upper bound on its argument count.
const Variadic = -1

// Func is one entry of the template function catalog.
type Func struct {
	Name    string
	Summary string
	MinArgs int
	MaxArgs int
	// EvenArgs requires an even argument count on top of the bounds.
	EvenArgs bool

	fn func(args []value.Value) (value.Value, error)
}

// Call checks the argument count and invokes the function.
func (f Func) Call(args []value.Value) (value.Value, error) {
	if err := f.checkArity(len(args)); err != nil {
		return nil, err
	}
	return f.fn(args)
}

// Usage describes the accepted argument count, e.g. "2", "1+" or "even".
func (f Func) Usage() string {
	switch {
	case f.EvenArgs:
		return "even"
	case f.MaxArgs == Variadic:
		return fmt.Sprintf("%d+", f.MinArgs)
	case f.MinArgs == f.MaxArgs:
		return fmt.Sprintf("%d", f.MinArgs)
	default:
		return fmt.Sprintf("%d-%d", f.MinArgs, f.MaxArgs)
	}
}

func (f Func) checkArity(n int) error {
	if n >= f.MinArgs && (f.MaxArgs == Variadic || n <= f.MaxArgs) && (!f.EvenArgs || n%2 == 0) {
		return nil
	}

	var msg string
	switch {
	case f.EvenArgs:
		msg = fmt.Sprintf("%s expects an even number of arguments, got %d", f.Name, n)
	case f.MaxArgs == Variadic:
		msg = fmt.Sprintf("%s expects at least %d arguments, got %d", f.Name, f.MinArgs, n)
	case f.MinArgs == f.MaxArgs:
		msg = fmt.Sprintf("%s expects exactly %d arguments, got %d", f.Name, f.MinArgs, n)
	default:
		msg = fmt.Sprintf("%s expects %d to %d arguments, got %d", f.Name, f.MinArgs, f.MaxArgs, n)
	}
	return errors.New(errors.ErrFuncArity, msg).WithDetail("func", f.Name)
}

// Catalog returns the fixed function catalog in registration order.
func Catalog() []Func {
	return []Func{
		{Name: "default", Summary: "second argument unless it has no value, else the first", MinArgs: 2, MaxArgs: 2, fn: defaultFn},
		{Name: "atoi", Summary: "parse a string as a 64-bit integer", MinArgs: 1, MaxArgs: 1, fn: atoi},
		{Name: "semverCompare", Summary: "match a version against a semantic version constraint", MinArgs: 2, MaxArgs: 2, fn: semverCompare},
		{Name: "list", Summary: "collect the arguments into a list", MinArgs: 0, MaxArgs: Variadic, fn: list},
		{Name: "has", Summary: "whether a list contains a value", MinArgs: 2, MaxArgs: 2, fn: has},
		{Name: "lower", Summary: "lowercase a string", MinArgs: 1, MaxArgs: 1, fn: lower},
		{Name: "upper", Summary: "uppercase a string", MinArgs: 1, MaxArgs: 1, fn: upper},
		{Name: "isTrue", Summary: "false for \"false\", \"0\", \"\" and non-strings, true otherwise", MinArgs: 1, MaxArgs: 1, fn: isTrue},
		{Name: "quote", Summary: "double-quote a string for a shell", MinArgs: 1, MaxArgs: 1, fn: quote},
		{Name: "trimAll", Summary: "strip a delimiter from both ends", MinArgs: 2, MaxArgs: 2, fn: trimAll},
		{Name: "trimPrefix", Summary: "strip a leading delimiter", MinArgs: 2, MaxArgs: 2, fn: trimPrefix},
		{Name: "trimSuffix", Summary: "strip a trailing delimiter", MinArgs: 2, MaxArgs: 2, fn: trimSuffix},
		{Name: "clean", Summary: "lexically clean a path", MinArgs: 1, MaxArgs: 1, fn: clean},
		{Name: "max", Summary: "largest number among the arguments", MinArgs: 1, MaxArgs: Variadic, fn: maxFn},
		{Name: "min", Summary: "smallest number among the arguments", MinArgs: 1, MaxArgs: Variadic, fn: minFn},
		{Name: "add", Summary: "integer addition", MinArgs: 2, MaxArgs: 2, fn: add},
		{Name: "add1", Summary: "increment an integer", MinArgs: 1, MaxArgs: 1, fn: add1},
		{Name: "div", Summary: "integer division", MinArgs: 2, MaxArgs: 2, fn: div},
		{Name: "sub", Summary: "integer subtraction", MinArgs: 2, MaxArgs: 2, fn: sub},
		{Name: "compact", Summary: "drop empty strings from a list", MinArgs: 1, MaxArgs: 1, fn: compact},
		{Name: "splitList", Summary: "split a string into a list", MinArgs: 2, MaxArgs: 2, fn: splitList},
		{Name: "nospace", Summary: "remove all spaces", MinArgs: 1, MaxArgs: 1, fn: nospace},
		{Name: "replace", Summary: "replace every occurrence of a substring", MinArgs: 3, MaxArgs: 3, fn: replace},
		{Name: "toString", Summary: "format a number as a string", MinArgs: 1, MaxArgs: 1, fn: toString},
		{Name: "hasPrefix", Summary: "whether a string starts with a prefix", MinArgs: 2, MaxArgs: 2, fn: hasPrefix},
		{Name: "hasSuffix", Summary: "whether a string ends with a suffix", MinArgs: 2, MaxArgs: 2, fn: hasSuffix},
		{Name: "empty", Summary: "whether a string is empty or the value is absent", MinArgs: 1, MaxArgs: 1, fn: empty},
		{Name: "ternary", Summary: "first argument if the condition is true, else the second", MinArgs: 3, MaxArgs: 3, fn: ternary},
		{Name: "dict", Summary: "build a mapping from key/value pairs", MinArgs: 0, MaxArgs: Variadic, EvenArgs: true, fn: dict},
		{Name: "urlParse", Summary: "split a URL into its parts", MinArgs: 1, MaxArgs: 1, fn: urlParse},
	}
}

// Lookup returns the catalog entry with the given name.
func Lookup(name string) (Func, bool) {
	for _, f := range Catalog() {
		if f.Name == name {
			return f, true
		}
	}
	return Func{}, false
}

// Validate rejects catalogs that define the same name twice.
func Validate(catalog []Func) error {
	seen := make(map[string]struct{}, len(catalog))
	for _, f := range catalog {
		if _, dup := seen[f.Name]; dup {
			return errors.Newf(errors.ErrInternal, "function %q registered twice", f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}

func kindError(name string, pos int, want string, got value.Value) error {
	return errors.Newf(errors.ErrFuncKind, "%s: argument %d must be %s, got %s", name, pos+1, want, got.Kind()).
		WithDetail("func", name)
}

func valueError(name string, err error, format string, args ...interface{}) error {
	if err != nil {
		return errors.Wrapf(err, errors.ErrFuncValue, format, args...).WithDetail("func", name)
	}
	return errors.Newf(errors.ErrFuncValue, format, args...).WithDetail("func", name)
}

func stringArg(name string, args []value.Value, pos int) (string, error) {
	s, ok := args[pos].(value.String)
	if !ok {
		return "", kindError(name, pos, "a string", args[pos])
	}
	return string(s), nil
}

func intArg(name string, args []value.Value, pos int) (int64, error) {
	n, ok := args[pos].(value.Number)
	if !ok || !n.IsInt() {
		return 0, kindError(name, pos, "an integer", args[pos])
	}
	i, _ := n.Int64()
	return i, nil
}

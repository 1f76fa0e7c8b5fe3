package funcs

import (
	"math"
	"strconv"

	"github.com/talss89/envtmpl/pkg/value"
)

// atoi parses a base-10 integer with an optional sign.
func atoi(args []value.Value) (value.Value, error) {
	s, err := stringArg("atoi", args, 0)
	if err != nil {
		return nil, err
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, valueError("atoi", err, "atoi: cannot convert %q to an integer", s)
	}
	return value.Int(i), nil
}

func add(args []value.Value) (value.Value, error) {
	a, b, err := intPair("add", args)
	if err != nil {
		return nil, err
	}
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return nil, valueError("add", nil, "add: %d + %d overflows", a, b)
	}
	return value.Int(a + b), nil
}

func add1(args []value.Value) (value.Value, error) {
	a, err := intArg("add1", args, 0)
	if err != nil {
		return nil, err
	}
	if a == math.MaxInt64 {
		return nil, valueError("add1", nil, "add1: %d + 1 overflows", a)
	}
	return value.Int(a + 1), nil
}

func sub(args []value.Value) (value.Value, error) {
	a, b, err := intPair("sub", args)
	if err != nil {
		return nil, err
	}
	if (b < 0 && a > math.MaxInt64+b) || (b > 0 && a < math.MinInt64+b) {
		return nil, valueError("sub", nil, "sub: %d - %d overflows", a, b)
	}
	return value.Int(a - b), nil
}

// div truncates toward zero.
func div(args []value.Value) (value.Value, error) {
	a, b, err := intPair("div", args)
	if err != nil {
		return nil, err
	}
	if b == 0 {
		return nil, valueError("div", nil, "div: division by zero")
	}
	if a == math.MinInt64 && b == -1 {
		return nil, valueError("div", nil, "div: %d / %d overflows", a, b)
	}
	return value.Int(a / b), nil
}

func maxFn(args []value.Value) (value.Value, error) {
	return extreme("max", args, 1)
}

func minFn(args []value.Value) (value.Value, error) {
	return extreme("min", args, -1)
}

// extreme scans the Number arguments and skips everything else. want is the
// comparison result that replaces the current pick.
func extreme(name string, args []value.Value, want int) (value.Value, error) {
	var (
		best  value.Number
		found bool
	)
	for _, arg := range args {
		n, ok := arg.(value.Number)
		if !ok {
			continue
		}
		if !found {
			best, found = n, true
			continue
		}
		cmp, comparable := n.Compare(best)
		if !comparable {
			return nil, valueError(name, nil, "%s: unable to compare %s and %s", name, n, best)
		}
		if cmp == want {
			best = n
		}
	}
	if !found {
		return nil, valueError(name, nil, "%s: no numeric arguments", name)
	}
	return best, nil
}

func toString(args []value.Value) (value.Value, error) {
	n, ok := args[0].(value.Number)
	if !ok {
		return nil, kindError("toString", 0, "a number", args[0])
	}
	return value.String(n.String()), nil
}

func intPair(name string, args []value.Value) (int64, int64, error) {
	a, err := intArg(name, args, 0)
	if err != nil {
		return 0, 0, err
	}
	b, err := intArg(name, args, 1)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

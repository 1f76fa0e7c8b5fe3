// Package value defines the dynamically typed values that flow through
// template function calls.
//
// Value is a closed sum type. The only implementations are the variants in
// this package, and consumers are expected to switch on the concrete type
// rather than reflect on arbitrary Go values:
//
//	switch v := arg.(type) {
//	case value.String:
//	    ...
//	case value.NoValue:
//	    ...
//	}
//
// FromAny and ToAny translate between Values and the plain Go values a
// template engine hands to, and expects back from, registered functions.
package value

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies a Value variant.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
	KindSequence
	KindMapping
	KindNoValue
)

// String returns the name used for the kind in error messages.
func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	case KindNoValue:
		return "no value"
	default:
		return "unknown"
	}
}

// Value is implemented only by the variants declared in this package.
type Value interface {
	Kind() Kind
	// String renders the value the way a template would print it.
	String() string
	sealed()
}

// Nil is an explicit null.
type Nil struct{}

// NoValue marks an argument that was not supplied, such as a lookup of a
// missing environment variable. It is distinct from Nil.
type NoValue struct{}

// Bool is a boolean.
type Bool bool

// String is a text value.
type String string

// Sequence is an ordered list of values.
type Sequence []Value

// Mapping is a string-keyed set of values.
type Mapping map[string]Value

// Number is either an int64 or a float64.
type Number struct {
	i       int64
	f       float64
	isFloat bool
}

// Int returns an integer Number.
func Int(i int64) Number { return Number{i: i} }

// Float returns a floating point Number.
func Float(f float64) Number { return Number{f: f, isFloat: true} }

// IsInt reports whether n holds an integer.
func (n Number) IsInt() bool { return !n.isFloat }

// Int64 returns the integer payload. ok is false for float Numbers.
func (n Number) Int64() (i int64, ok bool) {
	if n.isFloat {
		return 0, false
	}
	return n.i, true
}

// Float64 returns n as a float64, converting integers.
func (n Number) Float64() float64 {
	if n.isFloat {
		return n.f
	}
	return float64(n.i)
}

// Compare orders two Numbers. ok is false when either side is NaN.
func (n Number) Compare(o Number) (cmp int, ok bool) {
	if !n.isFloat && !o.isFloat {
		switch {
		case n.i < o.i:
			return -1, true
		case n.i > o.i:
			return 1, true
		default:
			return 0, true
		}
	}
	a, b := n.Float64(), o.Float64()
	if math.IsNaN(a) || math.IsNaN(b) {
		return 0, false
	}
	switch {
	case a < b:
		return -1, true
	case a > b:
		return 1, true
	default:
		return 0, true
	}
}

func (Nil) Kind() Kind      { return KindNil }
func (NoValue) Kind() Kind  { return KindNoValue }
func (Bool) Kind() Kind     { return KindBool }
func (Number) Kind() Kind   { return KindNumber }
func (String) Kind() Kind   { return KindString }
func (Sequence) Kind() Kind { return KindSequence }
func (Mapping) Kind() Kind  { return KindMapping }

func (Nil) sealed()      {}
func (NoValue) sealed()  {}
func (Bool) sealed()     {}
func (Number) sealed()   {}
func (String) sealed()   {}
func (Sequence) sealed() {}
func (Mapping) sealed()  {}

func (Nil) String() string     { return "<nil>" }
func (NoValue) String() string { return "<no value>" }
func (s String) String() string {
	return string(s)
}

func (b Bool) String() string {
	return strconv.FormatBool(bool(b))
}

func (n Number) String() string {
	if n.isFloat {
		return strconv.FormatFloat(n.f, 'f', -1, 64)
	}
	return strconv.FormatInt(n.i, 10)
}

func (s Sequence) String() string {
	parts := make([]string, len(s))
	for i, v := range s {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// String renders the mapping with sorted keys so output is stable.
func (m Mapping) String() string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ":" + m[k].String()
	}
	return "map[" + strings.Join(parts, " ") + "]"
}

// Equal reports structural equality. Numbers compare by numeric value, so
// Int(1) equals Float(1).
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Nil:
		_, ok := b.(Nil)
		return ok
	case NoValue:
		_, ok := b.(NoValue)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Number:
		bv, ok := b.(Number)
		if !ok {
			return false
		}
		cmp, comparable := av.Compare(bv)
		return comparable && cmp == 0
	case Sequence:
		bv, ok := b.(Sequence)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case Mapping:
		bv, ok := b.(Mapping)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			w, present := bv[k]
			if !present || !Equal(v, w) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

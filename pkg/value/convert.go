package value

import (
	"math"

	"github.com/talss89/envtmpl/pkg/errors"
)

// FromAny converts a Go value received from the template engine. A nil
// interface is how the engine passes an argument that resolved to nothing,
// so it becomes NoValue.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return NoValue{}, nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return fromUint(uint64(x))
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		return fromUint(x)
	case float32:
		return Float(float64(x)), nil
	case float64:
		return Float(x), nil
	case []Value:
		return Sequence(x), nil
	case []string:
		seq := make(Sequence, len(x))
		for i, s := range x {
			seq[i] = String(s)
		}
		return seq, nil
	case []any:
		seq := make(Sequence, len(x))
		for i, elem := range x {
			converted, err := FromAny(elem)
			if err != nil {
				return nil, err
			}
			seq[i] = converted
		}
		return seq, nil
	case map[string]string:
		m := make(Mapping, len(x))
		for k, s := range x {
			m[k] = String(s)
		}
		return m, nil
	case map[string]any:
		m := make(Mapping, len(x))
		for k, elem := range x {
			converted, err := FromAny(elem)
			if err != nil {
				return nil, err
			}
			m[k] = converted
		}
		return m, nil
	default:
		return nil, errors.Newf(errors.ErrFuncKind, "unsupported value of type %T", v)
	}
}

func fromUint(u uint64) (Value, error) {
	if u > math.MaxInt64 {
		return nil, errors.Newf(errors.ErrFuncValue, "integer %d overflows int64", u)
	}
	return Int(int64(u)), nil
}

// ToAny converts a Value into the plain Go value handed back to the engine.
// Nil and NoValue both become a nil interface, which the engine prints as
// "<no value>".
func ToAny(v Value) any {
	switch x := v.(type) {
	case nil, Nil, NoValue:
		return nil
	case Bool:
		return bool(x)
	case String:
		return string(x)
	case Number:
		if i, ok := x.Int64(); ok {
			return i
		}
		return x.Float64()
	case Sequence:
		out := make([]any, len(x))
		for i, elem := range x {
			out[i] = ToAny(elem)
		}
		return out
	case Mapping:
		out := make(map[string]any, len(x))
		for k, elem := range x {
			out[k] = ToAny(elem)
		}
		return out
	default:
		return nil
	}
}

package runtime

import (
	"math"
	"strconv"
	"strings"
)

// Truthy reports the boolean reading of a value: zero numbers, empty strings,
// empty lists and void are false.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case BoolValue:
		return val.Val
	case IntegerValue:
		return val.Val != 0
	case FloatValue:
		return val.Val != 0
	case StringValue:
		return val.Val != ""
	case *ListValue:
		return len(val.Elements) > 0
	case VoidValue:
		return false
	default:
		return v != nil
	}
}

// Convert coerces v to the target kind using numeric parsing for int/float,
// truthiness for bool, stringification for str and single-element wrapping
// for list. Void converts to an empty list.
func Convert(v Value, target Kind) (Value, error) {
	if v.Kind() == target {
		return v, nil
	}
	switch target {
	case KindInt:
		switch val := v.(type) {
		case FloatValue:
			if math.IsNaN(val.Val) || math.IsInf(val.Val, 0) {
				break
			}
			return IntegerValue{Val: int64(val.Val)}, nil
		case BoolValue:
			if val.Val {
				return IntegerValue{Val: 1}, nil
			}
			return IntegerValue{Val: 0}, nil
		case StringValue:
			if n, err := strconv.ParseInt(strings.TrimSpace(val.Val), 10, 64); err == nil {
				return IntegerValue{Val: n}, nil
			}
		}
	case KindFloat:
		switch val := v.(type) {
		case IntegerValue:
			return FloatValue{Val: float64(val.Val)}, nil
		case BoolValue:
			if val.Val {
				return FloatValue{Val: 1}, nil
			}
			return FloatValue{Val: 0}, nil
		case StringValue:
			if f, err := strconv.ParseFloat(strings.TrimSpace(val.Val), 64); err == nil {
				return FloatValue{Val: f}, nil
			}
		}
	case KindBool:
		return BoolValue{Val: Truthy(v)}, nil
	case KindString:
		return StringValue{Val: v.String()}, nil
	case KindList:
		if _, ok := v.(VoidValue); ok {
			return NewList(), nil
		}
		return NewList(v), nil
	case KindVoid:
		return VoidValue{}, nil
	}
	return nil, NewTypeError("cannot convert %s to %s", describe(v), target)
}

func describe(v Value) string {
	if s, ok := v.(StringValue); ok {
		return strconv.Quote(s.Val)
	}
	return v.String() + " (" + v.Kind().String() + ")"
}

package runtime

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the runtime value category. It doubles as the type tag the
// checker records for declarations.
type Kind int

const (
	KindVoid Kind = iota
	KindInt
	KindFloat
	KindBool
	KindString
	KindList
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "str"
	case KindList:
		return "list"
	case KindFunction:
		return "func"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// ParseKind resolves a source-level type name. Names are case-insensitive and
// `list<...>` is accepted with its element type ignored.
func ParseKind(name string) (Kind, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "int":
		return KindInt, true
	case "float":
		return KindFloat, true
	case "bool":
		return KindBool, true
	case "str", "string":
		return KindString, true
	case "list":
		return KindList, true
	case "void":
		return KindVoid, true
	}
	if strings.HasPrefix(n, "list<") && strings.HasSuffix(n, ">") {
		return KindList, true
	}
	return KindVoid, false
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
	String() string
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type IntegerValue struct {
	Val int64
}

func (v IntegerValue) Kind() Kind      { return KindInt }
func (v IntegerValue) String() string { return strconv.FormatInt(v.Val, 10) }

type FloatValue struct {
	Val float64
}

func (v FloatValue) Kind() Kind { return KindFloat }

// String always renders a fractional part so floats stay distinguishable from
// integers when printed.
func (v FloatValue) String() string {
	s := strconv.FormatFloat(v.Val, 'g', -1, 64)
	if strings.ContainsAny(s, ".eEnN") {
		return s
	}
	return s + ".0"
}

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

func (v BoolValue) String() string {
	if v.Val {
		return "true"
	}
	return "false"
}

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind      { return KindString }
func (v StringValue) String() string { return v.Val }

type VoidValue struct{}

func (VoidValue) Kind() Kind      { return KindVoid }
func (VoidValue) String() string { return "void" }

//-----------------------------------------------------------------------------
// Collections
//-----------------------------------------------------------------------------

type ListValue struct {
	Elements []Value
}

func NewList(elements ...Value) *ListValue {
	return &ListValue{Elements: elements}
}

func (v *ListValue) Kind() Kind { return KindList }

func (v *ListValue) String() string {
	parts := make([]string, len(v.Elements))
	for i, el := range v.Elements {
		parts[i] = el.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

//-----------------------------------------------------------------------------
// Functions
//-----------------------------------------------------------------------------

// NativeFunctionValue wraps a Go function callable from scripts. Arity < 0
// accepts any number of arguments.
type NativeFunctionValue struct {
	Name  string
	Arity int
	Impl  func(args []Value) (Value, error)
}

func (v *NativeFunctionValue) Kind() Kind      { return KindFunction }
func (v *NativeFunctionValue) String() string { return "<func " + v.Name + ">" }

// Call checks the arity and invokes the implementation. A nil result is
// normalised to void.
func (v *NativeFunctionValue) Call(args []Value) (Value, error) {
	if v.Arity >= 0 && len(args) != v.Arity {
		return nil, NewRuntimeError("%s expects %d argument(s), got %d", v.Name, v.Arity, len(args))
	}
	result, err := v.Impl(args)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return VoidValue{}, nil
	}
	return result, nil
}

// ValuesEqual compares two values structurally. Values of different kinds are
// never equal, except int and float which compare numerically.
func ValuesEqual(a, b Value) bool {
	switch av := a.(type) {
	case IntegerValue:
		switch bv := b.(type) {
		case IntegerValue:
			return av.Val == bv.Val
		case FloatValue:
			return float64(av.Val) == bv.Val
		}
	case FloatValue:
		switch bv := b.(type) {
		case FloatValue:
			return av.Val == bv.Val
		case IntegerValue:
			return av.Val == float64(bv.Val)
		}
	case BoolValue:
		if bv, ok := b.(BoolValue); ok {
			return av.Val == bv.Val
		}
	case StringValue:
		if bv, ok := b.(StringValue); ok {
			return av.Val == bv.Val
		}
	case VoidValue:
		_, ok := b.(VoidValue)
		return ok
	case *ListValue:
		bv, ok := b.(*ListValue)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !ValuesEqual(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *NativeFunctionValue:
		bv, ok := b.(*NativeFunctionValue)
		return ok && av == bv
	}
	return false
}

package interpreter

import (
	"os"
	"strings"

	"dolphin/interpreter-go/pkg/runtime"
)

// RegisterBuiltins binds the native functions available to every script.
// They are ordinary values and may be shadowed by var declarations.
func RegisterBuiltins(env *runtime.Environment) {
	for _, fn := range builtins() {
		env.Define(fn.Name, fn)
	}
}

func builtins() []*runtime.NativeFunctionValue {
	return []*runtime.NativeFunctionValue{
		{Name: "len", Arity: 1, Impl: builtinLen},
		{Name: "upper", Arity: 1, Impl: stringBuiltin("upper", strings.ToUpper)},
		{Name: "lower", Arity: 1, Impl: stringBuiltin("lower", strings.ToLower)},
		{Name: "trim", Arity: 1, Impl: stringBuiltin("trim", strings.TrimSpace)},
		{Name: "typeof", Arity: 1, Impl: func(args []runtime.Value) (runtime.Value, error) {
			return runtime.StringValue{Val: args[0].Kind().String()}, nil
		}},
		{Name: "getenv", Arity: 1, Impl: func(args []runtime.Value) (runtime.Value, error) {
			name, ok := args[0].(runtime.StringValue)
			if !ok {
				return nil, runtime.NewTypeError("getenv expects str, got %s", args[0].Kind())
			}
			return runtime.StringValue{Val: os.Getenv(name.Val)}, nil
		}},
	}
}

func builtinLen(args []runtime.Value) (runtime.Value, error) {
	switch v := args[0].(type) {
	case runtime.StringValue:
		return runtime.IntegerValue{Val: int64(len([]rune(v.Val)))}, nil
	case *runtime.ListValue:
		return runtime.IntegerValue{Val: int64(len(v.Elements))}, nil
	default:
		return nil, runtime.NewTypeError("len expects str or list, got %s", args[0].Kind())
	}
}

func stringBuiltin(name string, fn func(string) string) func([]runtime.Value) (runtime.Value, error) {
	return func(args []runtime.Value) (runtime.Value, error) {
		s, ok := args[0].(runtime.StringValue)
		if !ok {
			return nil, runtime.NewTypeError("%s expects str, got %s", name, args[0].Kind())
		}
		return runtime.StringValue{Val: fn(s.Val)}, nil
	}
}

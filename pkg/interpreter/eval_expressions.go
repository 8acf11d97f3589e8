package interpreter

import (
	"errors"
	"fmt"

	"dolphin/interpreter-go/pkg/ast"
	"dolphin/interpreter-go/pkg/runtime"
)

// EvaluateExpression computes the value of expr in env. It never mutates env.
func (i *Interpreter) EvaluateExpression(expr ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		if e.Value == nil {
			return runtime.VoidValue{}, nil
		}
		return e.Value, nil
	case *ast.VarRef:
		return env.Get(e.Name)
	case *ast.TypedExpr:
		inner, err := i.EvaluateExpression(e.Inner, env)
		if err != nil {
			return nil, err
		}
		return runtime.Convert(inner, e.Target)
	case *ast.BinOp:
		return i.evaluateBinOp(e, env)
	case *ast.Call:
		return i.evaluateCall(e, env)
	default:
		return nil, runtime.NewRuntimeError("unsupported expression %T", expr)
	}
}

func (i *Interpreter) evaluateBinOp(expr *ast.BinOp, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.EvaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.EvaluateExpression(expr.Right, env)
	if err != nil {
		return nil, err
	}
	return applyOperator(expr.Operator, left, right)
}

func applyOperator(op string, left, right runtime.Value) (runtime.Value, error) {
	switch op {
	case "==":
		return runtime.BoolValue{Val: runtime.ValuesEqual(left, right)}, nil
	case "!=":
		return runtime.BoolValue{Val: !runtime.ValuesEqual(left, right)}, nil
	}

	switch l := left.(type) {
	case runtime.IntegerValue:
		switch r := right.(type) {
		case runtime.IntegerValue:
			return intOperator(op, l.Val, r.Val, left, right)
		case runtime.FloatValue:
			return floatOperator(op, float64(l.Val), r.Val, left, right)
		}
	case runtime.FloatValue:
		switch r := right.(type) {
		case runtime.FloatValue:
			return floatOperator(op, l.Val, r.Val, left, right)
		case runtime.IntegerValue:
			return floatOperator(op, l.Val, float64(r.Val), left, right)
		}
	case runtime.StringValue:
		if r, ok := right.(runtime.StringValue); ok {
			return stringOperator(op, l.Val, r.Val, left, right)
		}
	case *runtime.ListValue:
		if r, ok := right.(*runtime.ListValue); ok && op == "+" {
			elements := make([]runtime.Value, 0, len(l.Elements)+len(r.Elements))
			elements = append(elements, l.Elements...)
			elements = append(elements, r.Elements...)
			return runtime.NewList(elements...), nil
		}
	}
	return nil, unsupportedOperator(op, left, right)
}

func intOperator(op string, a, b int64, left, right runtime.Value) (runtime.Value, error) {
	switch op {
	case "+":
		return runtime.IntegerValue{Val: a + b}, nil
	case "-":
		return runtime.IntegerValue{Val: a - b}, nil
	case "*":
		return runtime.IntegerValue{Val: a * b}, nil
	case "/":
		if b == 0 {
			return nil, runtime.NewRuntimeError("division by zero: %s / %s", left, right)
		}
		return runtime.IntegerValue{Val: a / b}, nil
	case "<":
		return runtime.BoolValue{Val: a < b}, nil
	case ">":
		return runtime.BoolValue{Val: a > b}, nil
	case "<=":
		return runtime.BoolValue{Val: a <= b}, nil
	case ">=":
		return runtime.BoolValue{Val: a >= b}, nil
	}
	return nil, unsupportedOperator(op, left, right)
}

func floatOperator(op string, a, b float64, left, right runtime.Value) (runtime.Value, error) {
	switch op {
	case "+":
		return runtime.FloatValue{Val: a + b}, nil
	case "-":
		return runtime.FloatValue{Val: a - b}, nil
	case "*":
		return runtime.FloatValue{Val: a * b}, nil
	case "/":
		if b == 0 {
			return nil, runtime.NewRuntimeError("division by zero: %s / %s", left, right)
		}
		return runtime.FloatValue{Val: a / b}, nil
	case "<":
		return runtime.BoolValue{Val: a < b}, nil
	case ">":
		return runtime.BoolValue{Val: a > b}, nil
	case "<=":
		return runtime.BoolValue{Val: a <= b}, nil
	case ">=":
		return runtime.BoolValue{Val: a >= b}, nil
	}
	return nil, unsupportedOperator(op, left, right)
}

func stringOperator(op string, a, b string, left, right runtime.Value) (runtime.Value, error) {
	switch op {
	case "+":
		return runtime.StringValue{Val: a + b}, nil
	case "<":
		return runtime.BoolValue{Val: a < b}, nil
	case ">":
		return runtime.BoolValue{Val: a > b}, nil
	case "<=":
		return runtime.BoolValue{Val: a <= b}, nil
	case ">=":
		return runtime.BoolValue{Val: a >= b}, nil
	}
	return nil, unsupportedOperator(op, left, right)
}

func unsupportedOperator(op string, left, right runtime.Value) error {
	return runtime.NewRuntimeError("unsupported operator '%s' for %s and %s", op, operand(left), operand(right))
}

func operand(v runtime.Value) string {
	if s, ok := v.(runtime.StringValue); ok {
		return fmt.Sprintf("%q (str)", s.Val)
	}
	return fmt.Sprintf("%s (%s)", v, v.Kind())
}

func (i *Interpreter) evaluateCall(call *ast.Call, env *runtime.Environment) (runtime.Value, error) {
	callee, ok := env.Lookup(call.Callee)
	if !ok {
		return nil, runtime.NewRuntimeError("undefined function '%s'", call.Callee)
	}
	fn, ok := callee.(*runtime.NativeFunctionValue)
	if !ok {
		return nil, runtime.NewRuntimeError("'%s' is not callable (%s)", call.Callee, callee.Kind())
	}
	args := make([]runtime.Value, 0, len(call.Arguments))
	for _, argExpr := range call.Arguments {
		arg, err := i.EvaluateExpression(argExpr, env)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	i.logger.Debug("call", "function", call.Callee, "argument-count", len(args))
	result, err := fn.Call(args)
	if err != nil {
		return nil, asDolphinError(err, "call to %s failed", call.Callee)
	}
	return result, nil
}

// asDolphinError keeps typed interpreter errors and wraps anything else in a
// RuntimeError.
func asDolphinError(err error, format string, args ...any) error {
	var (
		syn *runtime.SyntaxError
		typ *runtime.TypeError
		rt  *runtime.RuntimeError
	)
	if errors.As(err, &syn) || errors.As(err, &typ) || errors.As(err, &rt) {
		return err
	}
	return runtime.WrapRuntimeError(err, format, args...)
}

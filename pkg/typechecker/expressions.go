package typechecker

import (
	"fmt"

	"dolphin/interpreter-go/pkg/ast"
	"dolphin/interpreter-go/pkg/runtime"
)

func (c *Checker) checkExpression(env Environment, expr ast.Expression) ([]Diagnostic, runtime.Kind) {
	diags, kind := c.inferExpression(env, expr)
	if expr != nil && len(diags) == 0 {
		c.inferred[expr] = kind
	}
	return diags, kind
}

func (c *Checker) inferExpression(env Environment, expr ast.Expression) ([]Diagnostic, runtime.Kind) {
	switch e := expr.(type) {
	case *ast.Literal:
		if e.Value == nil {
			return nil, runtime.KindVoid
		}
		return nil, e.Value.Kind()
	case *ast.VarRef:
		kind, _ := env.Lookup(e.Name)
		return nil, kind
	case *ast.TypedExpr:
		diags, inner := c.checkExpression(env, e.Inner)
		if len(diags) > 0 {
			return diags, e.Target
		}
		if inner != e.Target {
			return []Diagnostic{{
				Message: fmt.Sprintf("annotation %s does not match expression of kind %s", e.Target, inner),
				Node:    e,
			}}, e.Target
		}
		return nil, e.Target
	case *ast.BinOp:
		return c.checkBinOp(env, e)
	case *ast.Call:
		return nil, runtime.KindVoid
	case nil:
		return nil, runtime.KindVoid
	default:
		return []Diagnostic{{
			Message: fmt.Sprintf("unsupported expression %T", expr),
			Node:    expr,
		}}, runtime.KindVoid
	}
}

var comparisonOperators = map[string]bool{
	"==": true, "!=": true, "<": true, ">": true, "<=": true, ">=": true,
}

func (c *Checker) checkBinOp(env Environment, expr *ast.BinOp) ([]Diagnostic, runtime.Kind) {
	var diags []Diagnostic
	leftDiags, left := c.checkExpression(env, expr.Left)
	diags = append(diags, leftDiags...)
	rightDiags, right := c.checkExpression(env, expr.Right)
	diags = append(diags, rightDiags...)
	if len(diags) > 0 {
		return diags, left
	}
	if left != right {
		return []Diagnostic{{
			Message: fmt.Sprintf("operator '%s' operands differ: %s and %s", expr.Operator, left, right),
			Node:    expr,
		}}, left
	}
	if comparisonOperators[expr.Operator] {
		return nil, runtime.KindBool
	}
	return nil, left
}

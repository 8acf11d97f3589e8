package parser

import (
	"strconv"
	"strings"

	"dolphin/interpreter-go/pkg/ast"
	"dolphin/interpreter-go/pkg/runtime"
)

// binaryOperators is scanned in this order; the first operator whose first
// occurrence splits the fragment into two non-empty sides wins. There is no
// precedence and operators inside parentheses or string literals are not
// protected, so `a<=b` splits on `<`.
var binaryOperators = []string{"+", "-", "*", "/", "==", "!=", "<", ">", "<=", ">="}

// ParseExpression parses a fragment into an expression. It never fails:
// anything unrecognised becomes a variable reference.
func ParseExpression(fragment string) ast.Expression {
	s := strings.TrimSpace(fragment)

	for _, op := range binaryOperators {
		idx := strings.Index(s, op)
		if idx < 0 {
			continue
		}
		left := strings.TrimSpace(s[:idx])
		right := strings.TrimSpace(s[idx+len(op):])
		if left == "" || right == "" {
			continue
		}
		return ast.NewBinOp(ParseExpression(left), op, ParseExpression(right))
	}

	if typed, ok := parseTypeAnnotation(s); ok {
		return typed
	}

	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return ast.NewLiteral(runtime.StringValue{Val: s[1 : len(s)-1]})
	}

	if lit, ok := parseNumericLiteral(s); ok {
		return lit
	}

	switch s {
	case "true":
		return ast.NewLiteral(runtime.BoolValue{Val: true})
	case "false":
		return ast.NewLiteral(runtime.BoolValue{Val: false})
	}

	if call, ok := parseCall(s); ok {
		return call
	}

	return ast.NewVarRef(s)
}

func parseNumericLiteral(s string) (*ast.Literal, bool) {
	if s == "" {
		return nil, false
	}
	digits, dots := 0, 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			dots++
		default:
			return nil, false
		}
	}
	if digits == 0 || dots > 1 {
		return nil, false
	}
	if dots == 0 {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return ast.NewLiteral(runtime.IntegerValue{Val: n}), true
		}
		// Too large for int64; keep the magnitude as a float.
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, false
	}
	return ast.NewLiteral(runtime.FloatValue{Val: f}), true
}

func parseCall(s string) (*ast.Call, bool) {
	if !strings.HasSuffix(s, ")") {
		return nil, false
	}
	open := strings.Index(s, "(")
	if open < 0 || open >= len(s)-1 {
		return nil, false
	}
	name := strings.TrimSpace(s[:open])
	args := parseArgumentList(s[open+1 : len(s)-1])
	return ast.NewCall(name, args), true
}

// parseArgumentList splits on every comma; nested calls and string literals
// containing commas are not protected.
func parseArgumentList(inner string) []ast.Expression {
	if strings.TrimSpace(inner) == "" {
		return []ast.Expression{}
	}
	parts := strings.Split(inner, ",")
	args := make([]ast.Expression, 0, len(parts))
	for _, part := range parts {
		args = append(args, ParseExpression(part))
	}
	return args
}

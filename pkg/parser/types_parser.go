package parser

import (
	"strings"

	"dolphin/interpreter-go/pkg/ast"
	"dolphin/interpreter-go/pkg/runtime"
)

// parseTypeAnnotation recognises `<type>:<expr>`. Fragments starting with a
// quote or a digit are never annotations.
func parseTypeAnnotation(s string) (*ast.TypedExpr, bool) {
	if s == "" || s[0] == '"' || (s[0] >= '0' && s[0] <= '9') {
		return nil, false
	}
	prefix, rest, found := strings.Cut(s, ":")
	if !found {
		return nil, false
	}
	kind, ok := runtime.ParseKind(prefix)
	if !ok {
		return nil, false
	}
	return ast.NewTypedExpr(kind, ParseExpression(rest)), true
}

// parseDeclaredType resolves the type written after `var name:`.
func parseDeclaredType(name string) (runtime.Kind, error) {
	kind, ok := runtime.ParseKind(name)
	if !ok {
		return runtime.KindVoid, runtime.NewSyntaxError("unknown type '%s'", strings.TrimSpace(name))
	}
	return kind, nil
}

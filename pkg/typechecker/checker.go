package typechecker

import (
	"fmt"

	"dolphin/interpreter-go/pkg/ast"
	"dolphin/interpreter-go/pkg/runtime"
)

// Checker performs the shallow forward pass over variable declarations.
type Checker struct {
	inferred map[ast.Expression]runtime.Kind
}

// Diagnostic represents a type-checking error.
type Diagnostic struct {
	Message string
	Node    ast.Node
}

func (d Diagnostic) Error() string {
	if d.Node != nil && d.Node.Line() > 0 {
		return fmt.Sprintf("line %d: %s", d.Node.Line(), d.Message)
	}
	return d.Message
}

// New returns a checker instance.
func New() *Checker {
	return &Checker{inferred: make(map[ast.Expression]runtime.Kind)}
}

// CheckProgram checks every statement against a scope seeded from ctx and
// returns all diagnostics. ctx is only read.
func (c *Checker) CheckProgram(stmts []ast.Statement, ctx *runtime.Environment) []Diagnostic {
	c.inferred = make(map[ast.Expression]runtime.Kind)
	env := SeedEnvironment(ctx)

	var diagnostics []Diagnostic
	for _, stmt := range stmts {
		diagnostics = append(diagnostics, c.CheckStatement(env, stmt)...)
	}
	return diagnostics
}

// CheckStatement checks one statement in env, recording the kinds of
// accepted declarations. Only VarDef is inspected.
func (c *Checker) CheckStatement(env Environment, stmt ast.Statement) []Diagnostic {
	def, ok := stmt.(*ast.VarDef)
	if !ok {
		return nil
	}
	diags, kind := c.checkExpression(env, def.Init)
	if len(diags) > 0 {
		if def.Declared != nil {
			env.Define(def.Name, *def.Declared)
		}
		return anchor(diags, def)
	}
	if def.Declared != nil && *def.Declared != kind {
		env.Define(def.Name, *def.Declared)
		return []Diagnostic{{
			Message: fmt.Sprintf("variable '%s' declared as %s but initializer is %s", def.Name, *def.Declared, kind),
			Node:    def,
		}}
	}
	env.Define(def.Name, kind)
	return nil
}

// anchor attributes expression diagnostics to their statement, which is the
// only node carrying a source line.
func anchor(diags []Diagnostic, stmt ast.Statement) []Diagnostic {
	for i := range diags {
		if diags[i].Node == nil || diags[i].Node.Line() == 0 {
			diags[i].Node = stmt
		}
	}
	return diags
}

// InferredKind reports the kind recorded for an expression during the last
// run.
func (c *Checker) InferredKind(expr ast.Expression) (runtime.Kind, bool) {
	kind, ok := c.inferred[expr]
	return kind, ok
}

// Check runs a fresh checker and converts the first diagnostic into a
// *runtime.TypeError.
func Check(stmts []ast.Statement, ctx *runtime.Environment) error {
	diags := New().CheckProgram(stmts, ctx)
	if len(diags) == 0 {
		return nil
	}
	return runtime.NewTypeError("%s", diags[0].Error())
}

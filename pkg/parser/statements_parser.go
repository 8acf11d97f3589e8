package parser

import (
	"strings"

	"dolphin/interpreter-go/pkg/ast"
	"dolphin/interpreter-go/pkg/runtime"
)

// ParseStatement parses a single statement fragment (one `;`-separated piece
// of a line).
func (p *Parser) ParseStatement(fragment string) (ast.Statement, error) {
	line := strings.TrimSpace(fragment)

	switch line {
	case "exit", "quit":
		return ast.NewExit(), nil
	case "clear":
		return ast.NewClear(), nil
	case "help":
		return ast.NewHelp(), nil
	case "print":
		return ast.NewPrint([]ast.Expression{}, p.opts.StrictPrint), nil
	}

	if path, ok := cutKeyword(line, "chsh", "setshell"); ok {
		return ast.NewSetShell(path), nil
	}
	if command, ok := cutKeyword(line, "sh", "shell"); ok {
		return ast.NewShell(command, Tokenize(command)), nil
	}
	if code, ok := cutKeyword(line, "py"); ok {
		return ast.NewPythonExec(code), nil
	}
	if rest, ok := cutKeyword(line, "var"); ok {
		return p.parseVarDef(rest)
	}
	if inner, ok := printArguments(line); ok {
		return p.parsePrint(inner)
	}

	return ast.NewExprStmt(ParseExpression(line)), nil
}

func (p *Parser) parseVarDef(rest string) (*ast.VarDef, error) {
	left, init, found := strings.Cut(rest, "=")
	if !found {
		return nil, runtime.NewSyntaxError("var declaration requires '=': var %s", rest)
	}
	left = strings.TrimSpace(left)

	var declared *runtime.Kind
	name := left
	if n, typeName, hasType := strings.Cut(left, ":"); hasType {
		kind, err := parseDeclaredType(typeName)
		if err != nil {
			return nil, err
		}
		name = strings.TrimSpace(n)
		declared = &kind
	}
	if !isIdentifier(name) {
		return nil, runtime.NewSyntaxError("invalid variable name '%s'", name)
	}
	if strings.TrimSpace(init) == "" {
		return nil, runtime.NewSyntaxError("var %s has no initializer", name)
	}
	return ast.NewVarDef(name, declared, ParseExpression(init)), nil
}

// printArguments returns the argument text of `print(...)` or `print a, b`.
func printArguments(line string) (string, bool) {
	if rest, ok := strings.CutPrefix(line, "print"); ok {
		trimmed := strings.TrimSpace(rest)
		if strings.HasPrefix(trimmed, "(") && strings.HasSuffix(trimmed, ")") {
			return trimmed[1 : len(trimmed)-1], true
		}
	}
	if rest, ok := cutKeyword(line, "print"); ok {
		return rest, true
	}
	return "", false
}

func (p *Parser) parsePrint(inner string) (*ast.Print, error) {
	args := parseArgumentList(inner)
	if p.opts.StrictPrint {
		for idx, arg := range args {
			if _, ok := arg.(*ast.TypedExpr); !ok {
				return nil, runtime.NewSyntaxError("print argument %d must be type-annotated (e.g. str:x)", idx+1)
			}
		}
	}
	return ast.NewPrint(args, p.opts.StrictPrint), nil
}

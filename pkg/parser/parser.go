package parser

import "dolphin/interpreter-go/pkg/ast"

// Options selects between the grammar variants.
type Options struct {
	// StrictPrint requires every print argument to carry an explicit
	// `type:` annotation.
	StrictPrint bool
}

// Parser turns dolphin source into statements. It holds no state between
// calls and may be reused.
type Parser struct {
	opts Options
}

// New constructs a parser for the given grammar variant.
func New(opts Options) *Parser {
	return &Parser{opts: opts}
}

// ParseProgram parses source with the default (lenient) grammar.
func ParseProgram(source string) ([]ast.Statement, error) {
	return New(Options{}).ParseProgram(source)
}

// ParseStatement parses one statement fragment with the default grammar.
func ParseStatement(fragment string) (ast.Statement, error) {
	return New(Options{}).ParseStatement(fragment)
}

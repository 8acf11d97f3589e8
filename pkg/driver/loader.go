package driver

import (
	"fmt"
	"os"
	"path/filepath"

	"dolphin/interpreter-go/pkg/ast"
	"dolphin/interpreter-go/pkg/parser"
)

// Program is a parsed script file.
type Program struct {
	Path       string
	Source     string
	Statements []ast.Statement
}

// LoadProgram reads and parses the script at path. A nil parser uses the
// default grammar. Parse errors keep their type for errors.As.
func LoadProgram(path string, p *parser.Parser) (*Program, error) {
	if path == "" {
		return nil, fmt.Errorf("loader: empty path")
	}
	if p == nil {
		p = parser.New(parser.Options{})
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("loader: resolve %s: %w", path, err)
	}
	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", path, err)
	}
	source := string(content)
	stmts, err := p.ParseProgram(source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Program{Path: absPath, Source: source, Statements: stmts}, nil
}

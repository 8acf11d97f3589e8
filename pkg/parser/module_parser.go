package parser

import (
	"errors"
	"strings"

	"github.com/lithammer/dedent"

	"dolphin/interpreter-go/pkg/ast"
	"dolphin/interpreter-go/pkg/runtime"
)

type blockKind int

const (
	blockPython blockKind = iota
	blockShell
	blockComment
)

type blockDelims struct {
	kind  blockKind
	open  string
	close string
	label string
	// closeAtEnd lets a body line that ends with the close marker end the
	// block. Other blocks close only on a line holding the marker alone.
	closeAtEnd bool
}

var blocks = []blockDelims{
	{kind: blockComment, open: "dsd(", close: ")dsd", label: "comment", closeAtEnd: true},
	{kind: blockPython, open: "py(", close: ")py", label: "py"},
	{kind: blockShell, open: "sh(", close: ")sh", label: "sh"},
}

// ParseProgram parses a whole source text into its statements, in source
// order. Statement nodes carry the 1-based line they started on.
func (p *Parser) ParseProgram(source string) ([]ast.Statement, error) {
	lines := splitLines(source)
	stmts := make([]ast.Statement, 0, len(lines))

	for i := 0; i < len(lines); i++ {
		lineNo := i + 1
		line := strings.TrimSpace(lines[i])
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if delims, ok := matchBlock(line); ok {
			body, end, err := collectBlock(lines, i, delims)
			if err != nil {
				return nil, err
			}
			i = end
			switch delims.kind {
			case blockPython:
				stmts = append(stmts, withLine(ast.NewPythonExec(body), lineNo))
			case blockShell:
				stmts = append(stmts, withLine(ast.NewShell(body, Tokenize(body)), lineNo))
			}
			continue
		}

		if line == "dsd" || strings.HasPrefix(line, "dsd ") || strings.HasPrefix(line, "dsd\t") {
			continue
		}

		for _, fragment := range strings.Split(line, ";") {
			if strings.TrimSpace(fragment) == "" {
				continue
			}
			stmt, err := p.ParseStatement(fragment)
			if err != nil {
				return nil, attachLine(err, lineNo)
			}
			stmts = append(stmts, withLine(stmt, lineNo))
		}
	}
	return stmts, nil
}

func matchBlock(line string) (blockDelims, bool) {
	for _, b := range blocks {
		if strings.HasPrefix(line, b.open) {
			return b, true
		}
	}
	return blockDelims{}, false
}

// collectBlock gathers the body of the block opened on lines[start]. Text
// after the opener counts as the first body line and the block may close on
// the same line. It returns the dedented body and the index of the closing
// line.
func collectBlock(lines []string, start int, delims blockDelims) (string, int, error) {
	first := strings.TrimSpace(lines[start])[len(delims.open):]
	if rest, ok := strings.CutSuffix(strings.TrimSpace(first), delims.close); ok {
		return strings.TrimSpace(rest), start, nil
	}

	var body []string
	if strings.TrimSpace(first) != "" {
		body = append(body, first)
	}
	for i := start + 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == delims.close {
			return joinBody(body), i, nil
		}
		if delims.closeAtEnd {
			if rest, ok := strings.CutSuffix(strings.TrimRight(lines[i], " \t"), delims.close); ok {
				body = append(body, rest)
				return joinBody(body), i, nil
			}
		}
		body = append(body, lines[i])
	}
	return "", 0, &runtime.SyntaxError{
		Line:       start + 1,
		Message:    "unterminated " + delims.label + " block, expected " + delims.close,
		Incomplete: true,
	}
}

func joinBody(lines []string) string {
	return strings.TrimRight(dedent.Dedent(strings.Join(lines, "\n")), "\n")
}

func withLine(stmt ast.Statement, line int) ast.Statement {
	ast.SetLine(stmt, line)
	return stmt
}

func attachLine(err error, line int) error {
	var syn *runtime.SyntaxError
	if errors.As(err, &syn) && syn.Line == 0 {
		syn.Line = line
	}
	return err
}

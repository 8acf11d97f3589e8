package parser

import (
	"strings"
	"unicode"
)

// cutKeyword strips a leading keyword followed by whitespace and returns the
// trimmed remainder. The remainder must be non-empty.
func cutKeyword(line string, keywords ...string) (string, bool) {
	for _, kw := range keywords {
		if !strings.HasPrefix(line, kw) || len(line) == len(kw) {
			continue
		}
		if !isASCIISpace(rune(line[len(kw)])) {
			continue
		}
		rest := strings.TrimSpace(line[len(kw):])
		if rest == "" {
			continue
		}
		return rest, true
	}
	return "", false
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

func splitLines(source string) []string {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	return strings.Split(source, "\n")
}

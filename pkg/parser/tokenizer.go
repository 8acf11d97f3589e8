package parser

import "strings"

// Tokenize splits a command fragment on ASCII whitespace. A double quote
// toggles string mode, in which whitespace is kept; the quotes stay in the
// emitted token. Escaped quotes are not supported.
func Tokenize(s string) []string {
	var (
		tokens []string
		cur    strings.Builder
		inStr  bool
	)
	for _, r := range s {
		switch {
		case r == '"':
			inStr = !inStr
			cur.WriteRune(r)
		case isASCIISpace(r) && !inStr:
			if cur.Len() > 0 {
				tokens = append(tokens, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		tokens = append(tokens, cur.String())
	}
	return tokens
}

func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

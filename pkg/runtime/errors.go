package runtime

import "fmt"

// SyntaxError reports a malformed statement or block. Incomplete marks input
// that is well-formed so far but still waits for a closing line (an open
// `py(`, `sh(` or `dsd(` block).
type SyntaxError struct {
	Line       int
	Message    string
	Incomplete bool
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("syntax error on line %d: %s", e.Line, e.Message)
	}
	return "syntax error: " + e.Message
}

// TypeError reports a declared or annotated kind that disagrees with an
// inferred kind, or a value that cannot be converted to a target kind.
type TypeError struct {
	Message string
}

func (e *TypeError) Error() string { return "type error: " + e.Message }

// RuntimeError reports an evaluation failure: unbound names, non-invokable
// call targets, unsupported operators, failing collaborators.
type RuntimeError struct {
	Message string
	Err     error
}

func (e *RuntimeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("runtime error: %s: %v", e.Message, e.Err)
	}
	return "runtime error: " + e.Message
}

func (e *RuntimeError) Unwrap() error { return e.Err }

func NewSyntaxError(format string, args ...any) *SyntaxError {
	return &SyntaxError{Message: fmt.Sprintf(format, args...)}
}

func NewTypeError(format string, args ...any) *TypeError {
	return &TypeError{Message: fmt.Sprintf(format, args...)}
}

func NewRuntimeError(format string, args ...any) *RuntimeError {
	return &RuntimeError{Message: fmt.Sprintf(format, args...)}
}

// WrapRuntimeError attaches a collaborator failure to a runtime error.
func WrapRuntimeError(err error, format string, args ...any) *RuntimeError {
	return &RuntimeError{Message: fmt.Sprintf(format, args...), Err: err}
}

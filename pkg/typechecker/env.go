package typechecker

import "dolphin/interpreter-go/pkg/runtime"

// Environment maps variable names to the kinds the checker has accepted.
// Variables live in one global scope.
type Environment map[string]runtime.Kind

// SeedEnvironment copies the kinds recorded in a runtime environment. The
// copy is the checker's scratch space, so a rejected program never writes
// into the live context.
func SeedEnvironment(ctx *runtime.Environment) Environment {
	env := make(Environment)
	if ctx == nil {
		return env
	}
	for name, kind := range ctx.Types() {
		env[name] = kind
	}
	return env
}

func (e Environment) Define(name string, kind runtime.Kind) {
	e[name] = kind
}

// Lookup reports the kind of name; unknown names are void.
func (e Environment) Lookup(name string) (runtime.Kind, bool) {
	kind, ok := e[name]
	if !ok {
		return runtime.KindVoid, false
	}
	return kind, true
}

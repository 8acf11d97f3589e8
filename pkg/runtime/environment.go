package runtime

// DefaultShell is the command interpreter used until a script runs `chsh`.
const DefaultShell = "/bin/sh"

// Namespace is the live name → value mapping handed to host code blocks.
// Writes through it are visible to subsequent statements.
type Namespace map[string]Value

// Environment is the run-scoped binding environment: variable values, the
// kinds recorded for declared variables, and the configured shell path. One
// environment lives for a whole REPL session or script execution.
type Environment struct {
	values Namespace
	types  map[string]Kind
	shell  string
}

// NewEnvironment creates an empty environment using the given shell path
// (DefaultShell when empty).
func NewEnvironment(shell string) *Environment {
	if shell == "" {
		shell = DefaultShell
	}
	return &Environment{
		values: make(Namespace),
		types:  make(map[string]Kind),
		shell:  shell,
	}
}

// Define binds a value without recording a declared kind. Builtins and
// host-provided functions live here.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Bind binds a declared variable and records its kind. The kind always comes
// from the value itself so the recorded tag matches at binding time.
func (e *Environment) Bind(name string, value Value) {
	e.values[name] = value
	e.types[name] = value.Kind()
}

// Get retrieves a binding.
func (e *Environment) Get(name string) (Value, error) {
	if v, ok := e.values[name]; ok {
		return v, nil
	}
	return nil, NewRuntimeError("undefined variable '%s'", name)
}

// Lookup reports whether name is bound.
func (e *Environment) Lookup(name string) (Value, bool) {
	v, ok := e.values[name]
	return v, ok
}

// TypeOf returns the kind recorded for a declared variable.
func (e *Environment) TypeOf(name string) (Kind, bool) {
	k, ok := e.types[name]
	return k, ok
}

// Types returns a copy of the recorded kinds.
func (e *Environment) Types() map[string]Kind {
	out := make(map[string]Kind, len(e.types))
	for k, v := range e.types {
		out[k] = v
	}
	return out
}

// Namespace exposes the live value map. Callers may mutate it; call Reconcile
// afterwards to keep recorded kinds consistent.
func (e *Environment) Namespace() Namespace {
	return e.values
}

// Reconcile re-derives recorded kinds after the namespace was mutated
// externally: rebound names take the kind of their new value and removed
// names lose their record.
func (e *Environment) Reconcile() {
	for name := range e.types {
		v, ok := e.values[name]
		if !ok {
			delete(e.types, name)
			continue
		}
		e.types[name] = v.Kind()
	}
}

// Shell returns the configured shell path.
func (e *Environment) Shell() string {
	return e.shell
}

// SetShell rebinds the shell path. An empty path means commands are executed
// directly from their tokenized argv.
func (e *Environment) SetShell(path string) {
	e.shell = path
}

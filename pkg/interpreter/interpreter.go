package interpreter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"dolphin/interpreter-go/pkg/ast"
	"dolphin/interpreter-go/pkg/runtime"
	"dolphin/interpreter-go/pkg/typechecker"
)

// ShellRunner executes a shell statement. An empty shell path means argv is
// executed directly.
type ShellRunner interface {
	Run(ctx context.Context, shell, command string, argv []string) error
}

// HostRunner executes a host-code block against the live namespace. Names the
// block binds or deletes are visible to later statements.
type HostRunner interface {
	Exec(ctx context.Context, code string, ns runtime.Namespace) error
}

// Terminal clears the user's screen on a best-effort basis.
type Terminal interface {
	Clear() error
}

// Options wires an interpreter to its collaborators. Nil fields fall back to
// the process streams, a discarding logger, and "not available" errors for
// shell and host execution.
type Options struct {
	Stdout   io.Writer
	Stderr   io.Writer
	Shell    ShellRunner
	Host     HostRunner
	Terminal Terminal
	Logger   *slog.Logger
	// Report receives non-fatal errors such as a non-zero shell exit status.
	Report func(error)
}

// Interpreter evaluates dolphin statements against a runtime environment.
type Interpreter struct {
	stdout   io.Writer
	stderr   io.Writer
	shell    ShellRunner
	host     HostRunner
	terminal Terminal
	logger   *slog.Logger
	report   func(error)
}

// ErrExit is returned when an exit statement runs. It is not a failure.
var ErrExit = errors.New("exit requested")

// IsExit reports whether err stems from an exit statement.
func IsExit(err error) bool {
	return errors.Is(err, ErrExit)
}

// New returns an interpreter using the given collaborators.
func New(opts Options) *Interpreter {
	i := &Interpreter{
		stdout:   opts.Stdout,
		stderr:   opts.Stderr,
		shell:    opts.Shell,
		host:     opts.Host,
		terminal: opts.Terminal,
		logger:   opts.Logger,
		report:   opts.Report,
	}
	if i.stdout == nil {
		i.stdout = os.Stdout
	}
	if i.stderr == nil {
		i.stderr = os.Stderr
	}
	if i.logger == nil {
		i.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if i.report == nil {
		i.report = func(err error) {
			fmt.Fprintf(i.stderr, "Error: %v\n", err)
		}
	}
	return i
}

// EvaluateProgram type-checks the whole statement sequence and then executes
// it in order. Execution stops at the first error; statements already run
// keep their effects. An exit statement stops execution and surfaces ErrExit.
func (i *Interpreter) EvaluateProgram(ctx context.Context, stmts []ast.Statement, env *runtime.Environment) error {
	if err := typechecker.Check(stmts, env); err != nil {
		return err
	}
	for _, stmt := range stmts {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := i.ExecuteStatement(ctx, stmt, env); err != nil {
			return err
		}
	}
	return nil
}

package interpreter

import (
	"context"
	"errors"
	"fmt"

	"dolphin/interpreter-go/pkg/ast"
	"dolphin/interpreter-go/pkg/runtime"
)

// HelpText is written by the help statement.
const HelpText = `dolphin statements:
  var <name>[:<type>] = <expr>   bind a variable (types: int float bool str list void)
  print(<expr>, ...)             print values separated by spaces
  <type>:<expr>                  convert a value, e.g. str:5 or int:"42"
  sh <command>                   run a command through the current shell
  sh( ... )sh                    run a multi-line shell block
  chsh <path>                    change the shell used by sh
  py <code>                      run host code with access to variables
  py( ... )py                    run a multi-line host code block
  # ..., dsd ..., dsd( ... )dsd  comments
  clear                          clear the screen
  help                           show this message
  exit, quit                     leave dolphin
Separate statements on one line with ';'.
`

// ExecuteStatement runs one statement, mutating env in place.
func (i *Interpreter) ExecuteStatement(ctx context.Context, stmt ast.Statement, env *runtime.Environment) error {
	i.logger.Debug("execute", "statement", string(stmt.NodeType()), "line", stmt.Line())

	switch s := stmt.(type) {
	case *ast.Exit:
		return ErrExit
	case *ast.Clear:
		if i.terminal == nil {
			return nil
		}
		if err := i.terminal.Clear(); err != nil {
			i.logger.Debug("clear failed", "error", err)
		}
		return nil
	case *ast.Help:
		_, err := fmt.Fprint(i.stdout, HelpText)
		return err
	case *ast.SetShell:
		env.SetShell(s.Path)
		return nil
	case *ast.Shell:
		return i.executeShell(ctx, s, env)
	case *ast.PythonExec:
		return i.executeHost(ctx, s, env)
	case *ast.VarDef:
		return i.executeVarDef(s, env)
	case *ast.Print:
		return i.executePrint(s, env)
	case *ast.ExprStmt:
		_, err := i.EvaluateExpression(s.Expression, env)
		return err
	default:
		return runtime.NewRuntimeError("unsupported statement %s", stmt.NodeType())
	}
}

func (i *Interpreter) executeVarDef(def *ast.VarDef, env *runtime.Environment) error {
	value, err := i.EvaluateExpression(def.Init, env)
	if err != nil {
		return err
	}
	if def.Declared != nil && value.Kind() != *def.Declared {
		return runtime.NewTypeError("variable '%s' declared as %s but value %s is %s", def.Name, *def.Declared, value, value.Kind())
	}
	env.Bind(def.Name, value)
	return nil
}

func (i *Interpreter) executePrint(stmt *ast.Print, env *runtime.Environment) error {
	values := make([]runtime.Value, 0, len(stmt.Arguments))
	for idx, arg := range stmt.Arguments {
		expr := arg
		if stmt.Strict {
			typed, ok := arg.(*ast.TypedExpr)
			if !ok {
				return runtime.NewRuntimeError("print argument %d is not type-annotated", idx+1)
			}
			expr = typed.Inner
		}
		value, err := i.EvaluateExpression(expr, env)
		if err != nil {
			return err
		}
		values = append(values, value)
	}
	_, err := fmt.Fprintln(i.stdout, formatLine(values))
	return err
}

// exitCoder matches errors carrying a process exit status, such as
// *exec.ExitError.
type exitCoder interface {
	ExitCode() int
}

func (i *Interpreter) executeShell(ctx context.Context, stmt *ast.Shell, env *runtime.Environment) error {
	if i.shell == nil {
		return runtime.NewRuntimeError("shell execution is not available")
	}
	i.logger.Debug("shell", "shell", env.Shell(), "command", stmt.Command)
	err := i.shell.Run(ctx, env.Shell(), stmt.Command, stmt.Argv)
	if err == nil {
		return nil
	}
	var status exitCoder
	if errors.As(err, &status) && status.ExitCode() > 0 {
		i.report(runtime.NewRuntimeError("command exited with status %d: %s", status.ExitCode(), stmt.Command))
		return nil
	}
	return runtime.WrapRuntimeError(err, "shell command failed")
}

func (i *Interpreter) executeHost(ctx context.Context, stmt *ast.PythonExec, env *runtime.Environment) error {
	if i.host == nil {
		return runtime.NewRuntimeError("host code execution is not available")
	}
	i.logger.Debug("host code", "bytes", len(stmt.Code))
	err := i.host.Exec(ctx, stmt.Code, env.Namespace())
	env.Reconcile()
	if err != nil {
		return asDolphinError(err, "py block failed")
	}
	return nil
}

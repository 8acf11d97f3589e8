package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"dolphin/interpreter-go/pkg/driver"
	"dolphin/interpreter-go/pkg/host"
	"dolphin/interpreter-go/pkg/interpreter"
	"dolphin/interpreter-go/pkg/parser"
	"dolphin/interpreter-go/pkg/repl"
	"dolphin/interpreter-go/pkg/runtime"
)

var version = "0.1.0-dev"

const historyFileName = ".dolphin_history"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// exitStatus carries a process exit code through cobra without printing.
type exitStatus int

func (e exitStatus) Error() string { return fmt.Sprintf("exit status %d", int(e)) }

type cliOptions struct {
	configPath  string
	shell       string
	strictPrint bool
	verbose     bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCommand(stdin, stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	if err == nil {
		return 0
	}
	var status exitStatus
	if errors.As(err, &status) {
		return int(status)
	}
	repl.NewReporter(stderr, false)(err)
	return 2
}

func newRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var opts cliOptions
	cmd := &cobra.Command{
		Use:   "dolphin [script]",
		Short: "dolphin scripting language interpreter",
		Long: `dolphin runs line-oriented scripts with typed variables, shell
escapes (sh) and embedded host code blocks (py).

Without arguments an interactive session starts; with one path the file is
parsed, type-checked and executed.`,
		Version:       version,
		SilenceErrors: true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 1 {
				return fmt.Errorf("expected at most one script path, got %d arguments", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if cmd.Flags().Changed("shell") {
				return execute(cmd.Context(), opts, &opts.shell, args, stdin, stdout, stderr)
			}
			return execute(cmd.Context(), opts, nil, args, stdin, stdout, stderr)
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetVersionTemplate("dolphin {{.Version}}\n")

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "settings file (default: dolphin.yml/.yaml/.toml searched upwards, then in $HOME)")
	flags.StringVar(&opts.shell, "shell", "", "shell used by sh statements; empty runs commands directly")
	flags.BoolVar(&opts.strictPrint, "strict-print", false, "require type:expr annotations on every print argument")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log evaluation at debug level")
	return cmd
}

func execute(ctx context.Context, opts cliOptions, shellOverride *string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	settings, err := driver.ResolveSettings(opts.configPath, ".")
	if err != nil {
		repl.NewReporter(stderr, false)(err)
		return exitStatus(1)
	}
	if shellOverride != nil {
		settings.Shell = *shellOverride
	}
	if opts.strictPrint {
		settings.StrictPrint = true
	}

	logger := newLogger(stderr, settings, opts.verbose)
	report := repl.NewReporter(stderr, colorEnabled(settings.Color, stderr))

	env := runtime.NewEnvironment(runtime.DefaultShell)
	env.SetShell(settings.Shell)
	interpreter.RegisterBuiltins(env)

	interp := interpreter.New(interpreter.Options{
		Stdout:   stdout,
		Stderr:   stderr,
		Shell:    &host.ShellRunner{Stdin: stdin, Stdout: stdout, Stderr: stderr},
		Host:     host.NewStarlarkRunner(stdout),
		Terminal: terminalFor(stdout),
		Logger:   logger,
		Report:   report,
	})
	p := parser.New(parser.Options{StrictPrint: settings.StrictPrint})

	if len(args) == 1 {
		return runScript(ctx, args[0], p, interp, env, report, logger)
	}
	return runInteractive(ctx, settings, p, interp, env, report, logger, stdin, stdout)
}

func runScript(ctx context.Context, path string, p *parser.Parser, interp *interpreter.Interpreter, env *runtime.Environment, report func(error), logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	prog, err := driver.LoadProgram(path, p)
	if err != nil {
		report(err)
		return exitStatus(1)
	}
	logger.Debug("script loaded", "path", prog.Path, "statements", len(prog.Statements))

	err = interp.EvaluateProgram(ctx, prog.Statements, env)
	if err == nil || interpreter.IsExit(err) {
		return nil
	}
	report(err)
	return exitStatus(1)
}

func runInteractive(ctx context.Context, settings *driver.Settings, p *parser.Parser, interp *interpreter.Interpreter, env *runtime.Environment, report func(error), logger *slog.Logger, stdin io.Reader, stdout io.Writer) error {
	var reader repl.LineReader
	interactive := isTerminal(stdin) && isTerminal(stdout)
	if interactive {
		fmt.Fprintln(stdout, repl.Banner(version))
		reader = repl.NewLinerReader(historyPath(settings))
	} else {
		reader = repl.NewScanReader(stdin, nil)
	}
	defer reader.Close()

	session := &repl.Session{
		Reader:             reader,
		Interpreter:        interp,
		Env:                env,
		Parser:             p,
		Prompt:             settings.Prompt,
		ContinuationPrompt: settings.ContinuationPrompt,
		Report:             report,
		Logger:             logger,
		CatchInterrupts:    interactive,
	}
	if err := session.Run(ctx); err != nil {
		report(err)
		return exitStatus(1)
	}
	return nil
}

func newLogger(w io.Writer, settings *driver.Settings, verbose bool) *slog.Logger {
	level := settings.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("session", uuid.NewString())
}

func colorEnabled(mode driver.ColorMode, w io.Writer) bool {
	switch mode {
	case driver.ColorAlways:
		return true
	case driver.ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isTerminal(w)
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func terminalFor(w io.Writer) *host.Terminal {
	if f, ok := w.(*os.File); ok {
		return host.NewTerminal(f)
	}
	return host.NewTerminalWriter(w, false)
}

func historyPath(settings *driver.Settings) string {
	if settings.HistoryFile != "" {
		return settings.HistoryFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, historyFileName)
}

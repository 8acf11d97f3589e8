package host

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
)

// ShellRunner runs shell statements as child processes. The child inherits
// the runner's streams; output is not captured.
type ShellRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Dir    string
}

// NewShellRunner returns a runner wired to the process streams.
func NewShellRunner() *ShellRunner {
	return &ShellRunner{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run executes command through `<shell> -c`. With an empty shell path the
// tokenized argv is executed directly, with surrounding quotes removed from
// each token. A non-zero exit is returned as *exec.ExitError.
func (r *ShellRunner) Run(ctx context.Context, shell, command string, argv []string) error {
	var cmd *exec.Cmd
	if shell == "" {
		args := unquoteArgs(argv)
		if len(args) == 0 {
			return errors.New("empty command")
		}
		cmd = exec.CommandContext(ctx, args[0], args[1:]...)
	} else {
		cmd = exec.CommandContext(ctx, shell, "-c", command)
	}
	cmd.Dir = r.Dir
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	return cmd.Run()
}

func unquoteArgs(argv []string) []string {
	out := make([]string, 0, len(argv))
	for _, arg := range argv {
		out = append(out, strings.ReplaceAll(arg, `"`, ""))
	}
	return out
}

package host

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const clearSequence = "\x1B[2J\x1B[1;1H"

// Terminal clears the screen by writing ANSI sequences, but only when the
// output is an interactive terminal.
type Terminal struct {
	out         io.Writer
	interactive bool
}

// NewTerminal wraps f, detecting whether it is a terminal.
func NewTerminal(f *os.File) *Terminal {
	fd := f.Fd()
	return &Terminal{
		out:         f,
		interactive: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
	}
}

// NewTerminalWriter forces the interactive flag, for writers that are not
// files.
func NewTerminalWriter(w io.Writer, interactive bool) *Terminal {
	return &Terminal{out: w, interactive: interactive}
}

func (t *Terminal) Clear() error {
	if !t.interactive {
		return nil
	}
	_, err := io.WriteString(t.out, clearSequence)
	return err
}

package repl

import (
	"bufio"
	"errors"
	"io"
	"os"

	"github.com/peterh/liner"
)

// ErrInterrupted is returned by a LineReader when the user presses Ctrl-C at
// the prompt.
var ErrInterrupted = errors.New("interrupted")

// LineReader supplies input lines. Prompt returns io.EOF at end of input.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(line string)
	Close() error
}

// LinerReader reads from an interactive terminal with line editing and a
// persistent history file.
type LinerReader struct {
	state       *liner.State
	historyPath string
}

// NewLinerReader puts the terminal into line-editing mode and loads history
// from historyPath when it is set.
func NewLinerReader(historyPath string) *LinerReader {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			_, _ = state.ReadHistory(f)
			_ = f.Close()
		}
	}
	return &LinerReader{state: state, historyPath: historyPath}
}

func (r *LinerReader) Prompt(prompt string) (string, error) {
	line, err := r.state.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", ErrInterrupted
	}
	return line, err
}

func (r *LinerReader) AppendHistory(line string) {
	r.state.AppendHistory(line)
}

// Close writes the history file and restores the terminal.
func (r *LinerReader) Close() error {
	if r.historyPath != "" {
		if f, err := os.Create(r.historyPath); err == nil {
			_, _ = r.state.WriteHistory(f)
			_ = f.Close()
		}
	}
	return r.state.Close()
}

// ScanReader reads lines from a plain stream such as a pipe. Prompts are
// written to out when it is non-nil.
type ScanReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// maxLineSize bounds a single piped line.
const maxLineSize = 16 << 20

func NewScanReader(in io.Reader, out io.Writer) *ScanReader {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &ScanReader{scanner: scanner, out: out}
}

func (r *ScanReader) Prompt(prompt string) (string, error) {
	if r.out != nil {
		_, _ = io.WriteString(r.out, prompt)
	}
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

func (r *ScanReader) AppendHistory(string) {}

func (r *ScanReader) Close() error { return nil }

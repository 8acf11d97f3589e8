package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"

	"dolphin/interpreter-go/pkg/interpreter"
	"dolphin/interpreter-go/pkg/parser"
	"dolphin/interpreter-go/pkg/runtime"
)

// Session is one interactive read-evaluate-print loop over a single
// environment.
type Session struct {
	Reader             LineReader
	Interpreter        *interpreter.Interpreter
	Env                *runtime.Environment
	Parser             *parser.Parser
	Prompt             string
	ContinuationPrompt string
	Report             func(error)
	Logger             *slog.Logger
	// CatchInterrupts cancels the running input unit on SIGINT instead of
	// killing the process.
	CatchInterrupts bool
}

// NewReporter returns an error printer writing `Error: <message>` lines.
func NewReporter(w io.Writer, colored bool) func(error) {
	prefix := color.New(color.FgRed, color.Bold)
	if colored {
		prefix.EnableColor()
	} else {
		prefix.DisableColor()
	}
	return func(err error) {
		fmt.Fprintf(w, "%s %v\n", prefix.Sprint("Error:"), err)
	}
}

func (s *Session) defaults() {
	if s.Parser == nil {
		s.Parser = parser.New(parser.Options{})
	}
	if s.Prompt == "" {
		s.Prompt = "dolphin> "
	}
	if s.ContinuationPrompt == "" {
		s.ContinuationPrompt = "...> "
	}
	if s.Report == nil {
		s.Report = NewReporter(os.Stderr, false)
	}
	if s.Logger == nil {
		s.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
}

// Run loops until end of input, an interrupt at the prompt, or an exit
// statement. Errors in an input unit are reported and the loop continues.
func (s *Session) Run(ctx context.Context) error {
	s.defaults()
	for {
		src, err := s.readUnit()
		switch {
		case errors.Is(err, io.EOF), errors.Is(err, ErrInterrupted):
			return nil
		case err != nil:
			return err
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		s.Reader.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		if err := s.evaluate(ctx, src); err != nil {
			if interpreter.IsExit(err) {
				return nil
			}
			s.Report(err)
		}
	}
}

// readUnit reads one line, and keeps reading continuation lines while the
// accumulated text is an unterminated block.
func (s *Session) readUnit() (string, error) {
	var b strings.Builder
	for {
		prompt := s.Prompt
		if b.Len() > 0 {
			prompt = s.ContinuationPrompt
		}
		line, err := s.Reader.Prompt(prompt)
		if err != nil {
			if errors.Is(err, io.EOF) && b.Len() > 0 {
				return b.String(), nil
			}
			return "", err
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		_, perr := s.Parser.ParseProgram(b.String())
		var syn *runtime.SyntaxError
		if errors.As(perr, &syn) && syn.Incomplete {
			continue
		}
		return b.String(), nil
	}
}

func (s *Session) evaluate(ctx context.Context, src string) error {
	stmts, err := s.Parser.ParseProgram(src)
	if err != nil {
		return err
	}
	if s.CatchInterrupts {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(ctx, os.Interrupt)
		defer stop()
	}
	s.Logger.Debug("evaluate input", "statements", len(stmts))
	return s.Interpreter.EvaluateProgram(ctx, stmts, s.Env)
}

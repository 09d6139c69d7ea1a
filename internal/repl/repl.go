package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/tuannm99/rowstore/internal/sql/executor"
)

// Prefix starts every line the engine writes.
const Prefix = "> "

type State int

const (
	Running State = iota
	ShuttingDown
	Terminated
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case ShuttingDown:
		return "shutting_down"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Session is the part of executor.Session the loop drives.
type Session interface {
	Handle(input string) (executor.Response, error)
	Close() error
	Abort() error
}

var _ Session = (*executor.Session)(nil)

type REPL struct {
	session Session
	in      LineReader
	out     *bufio.Writer
	state   State
}

func New(session Session, in LineReader, out io.Writer) *REPL {
	return &REPL{
		session: session,
		in:      in,
		out:     bufio.NewWriter(out),
		state:   Running,
	}
}

func (r *REPL) State() State { return r.state }

// Run processes lines until .exit or end of input and returns the process exit code.
// Both exits flush storage; a fatal error aborts it without writing.
func (r *REPL) Run() (int, error) {
	for {
		input, err := r.in.ReadLine()
		if errors.Is(err, io.EOF) {
			slog.Debug("repl: end of input")
			return r.shutdown(nil)
		}
		if err != nil {
			return r.fail(fmt.Errorf("repl: read input: %w", err))
		}

		resp, err := r.session.Handle(input)
		if err != nil {
			return r.fail(err)
		}
		if resp.Exit {
			return r.shutdown(resp.Lines)
		}
		if err := r.write(resp.Lines); err != nil {
			return r.fail(err)
		}
	}
}

// shutdown closes storage, then writes farewell. Nothing is printed when the close fails.
func (r *REPL) shutdown(farewell []string) (int, error) {
	r.transition(ShuttingDown)
	if err := r.session.Close(); err != nil {
		r.transition(Terminated)
		slog.Error("repl: close storage", "err", err)
		return 1, err
	}

	err := r.write(farewell)
	r.transition(Terminated)
	if err != nil {
		slog.Error("repl: farewell", "err", err)
		return 1, err
	}
	return 0, nil
}

func (r *REPL) write(lines []string) error {
	for _, l := range lines {
		if _, err := r.out.WriteString(Prefix + l + "\n"); err != nil {
			return fmt.Errorf("repl: write output: %w", err)
		}
	}
	if err := r.out.Flush(); err != nil {
		return fmt.Errorf("repl: write output: %w", err)
	}
	return nil
}

func (r *REPL) fail(err error) (int, error) {
	slog.Error("repl: fatal error, storage released without flush", "err", err)
	abortErr := r.session.Abort()
	r.transition(Terminated)
	return 1, errors.Join(err, abortErr)
}

func (r *REPL) transition(to State) {
	slog.Debug("repl: state change", "from", r.state, "to", to)
	r.state = to
}

package executor

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/tuannm99/rowstore/internal/heap"
	"github.com/tuannm99/rowstore/internal/record"
	"github.com/tuannm99/rowstore/internal/sql/parser"
)

const (
	MsgInserted  = "Row inserted successfully."
	MsgTableFull = "[ERROR] Table is full, cannot insert the row"
	MsgExit      = "Encountered exit, exiting..."
)

// rowTable is a small seam for unit-testing Session without a real file.
type rowTable interface {
	Insert(row record.Row) error
	Scan(fn func(row record.Row) error) (int, error)
	Close() error
	Abort() error
}

var _ rowTable = (*heap.Table)(nil)

// Session owns the table for the lifetime of one REPL process.
type Session struct {
	table  rowTable
	closed bool
}

func NewSession(t rowTable) *Session {
	return &Session{table: t}
}

// Handle parses and runs one input line.
// Rejected input comes back as a normal Response; a returned error is fatal
// and the caller must Abort instead of Close.
func (s *Session) Handle(input string) (Response, error) {
	cmd, err := parser.Parse(input)
	if err != nil {
		var perr *parser.Error
		if errors.As(err, &perr) {
			slog.Debug("executor: rejected input", "kind", perr.Kind, "input", input)
			return line(perr.Error()), nil
		}
		return Response{}, err
	}
	return s.Execute(cmd)
}

// Execute runs an already parsed command.
func (s *Session) Execute(cmd parser.Command) (Response, error) {
	switch c := cmd.(type) {
	case *parser.ExitCommand:
		return Response{Lines: []string{MsgExit}, Exit: true}, nil
	case *parser.InsertStmt:
		return s.execInsert(c)
	case *parser.SelectStmt:
		return s.execSelect()
	default:
		return Response{}, fmt.Errorf("executor: unsupported command %T", cmd)
	}
}

func (s *Session) execInsert(stmt *parser.InsertStmt) (Response, error) {
	err := s.table.Insert(stmt.Row)
	switch {
	case err == nil:
		return line(MsgInserted), nil
	case errors.Is(err, heap.ErrTableFull):
		return line(MsgTableFull), nil
	default:
		return Response{}, fmt.Errorf("executor: insert: %w", err)
	}
}

func (s *Session) execSelect() (Response, error) {
	var out []string
	n, err := s.table.Scan(func(row record.Row) error {
		out = append(out, "[SELECT] "+row.String())
		return nil
	})
	if err != nil {
		return Response{}, fmt.Errorf("executor: select: %w", err)
	}
	out = append(out, fmt.Sprintf("Returned %d rows.", n))
	return Response{Lines: out}, nil
}

// Close flushes the table and releases storage. Safe to call more than once.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.table.Close()
}

// Abort releases storage without writing anything.
func (s *Session) Abort() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.table.Abort()
}

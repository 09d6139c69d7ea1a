package parser

import "github.com/tuannm99/rowstore/internal/record"

// Command is the root interface for everything a REPL line can parse into.
type Command interface {
	cmdNode()
}

// ----- META -----
type ExitCommand struct{}

func (*ExitCommand) cmdNode() {}

// ----- INSERT -----
type InsertStmt struct {
	Row record.Row
}

func (*InsertStmt) cmdNode() {}

// ----- SELECT -----
type SelectStmt struct{}

func (*SelectStmt) cmdNode() {}

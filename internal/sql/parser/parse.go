package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/tuannm99/rowstore/internal/record"
)

const (
	metaPrefix = "."
	metaExit   = ".exit"

	kwInsert = "insert"
	kwSelect = "select"
)

// Parse classifies one REPL line and validates it.
// Every rejection is an *Error carrying the original line.
func Parse(line string) (Command, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return nil, fail(ErrEmptyInput, line)
	}

	if strings.HasPrefix(tokens[0], metaPrefix) {
		return parseMeta(line, tokens)
	}

	switch tokens[0] {
	case kwInsert:
		return parseInsert(line, tokens[1:])
	case kwSelect:
		if len(tokens) != 1 {
			return nil, fail(ErrSyntax, line)
		}
		return &SelectStmt{}, nil
	default:
		return nil, fail(ErrUnrecognizedStatement, line)
	}
}

func parseMeta(line string, tokens []string) (Command, error) {
	if len(tokens) == 1 && tokens[0] == metaExit {
		return &ExitCommand{}, nil
	}
	return nil, fail(ErrUnrecognizedCommand, line)
}

// parseInsert validates: insert <id> <username> <email>
// Order: arity, id, field lengths. The first failure wins.
func parseInsert(line string, args []string) (Command, error) {
	if len(args) != 3 {
		return nil, fail(ErrSyntax, line)
	}

	id, err := parseID(args[0])
	if err != nil {
		return nil, fail(err, line)
	}

	username, email := args[1], args[2]
	if len(username) > record.UsernameMaxLen || len(email) > record.EmailMaxLen {
		return nil, fail(ErrTokenTooLong, line)
	}
	if strings.IndexByte(username, 0) >= 0 || strings.IndexByte(email, 0) >= 0 {
		return nil, fail(ErrSyntax, line)
	}

	return &InsertStmt{Row: record.Row{ID: id, Username: username, Email: email}}, nil
}

func parseID(tok string) (uint32, error) {
	n, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		// "-99999999999999999999" is still negative
		if strings.HasPrefix(tok, "-") && isDigits(tok[1:]) {
			return 0, ErrNegativeID
		}
		return 0, ErrSyntax
	}
	if n < 0 {
		return 0, ErrNegativeID
	}
	if n > math.MaxUint32 {
		return 0, ErrSyntax
	}
	return uint32(n), nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

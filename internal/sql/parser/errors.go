package parser

import (
	"errors"
	"fmt"
)

var (
	ErrSyntax                = errors.New("parser: invalid syntax")
	ErrUnrecognizedStatement = fmt.Errorf("%w: unrecognized statement", ErrSyntax)
	ErrUnrecognizedCommand   = fmt.Errorf("%w: unrecognized meta-command", ErrSyntax)
	ErrNegativeID            = errors.New("parser: negative id")
	ErrTokenTooLong          = errors.New("parser: token too long")
	ErrEmptyInput            = errors.New("parser: empty input")
)

// Error is a rejected input line. Its message echoes the full line.
type Error struct {
	Kind  error
	Input string
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrEmptyInput:
		return "Empty input, please try again."
	case ErrUnrecognizedCommand:
		return "Unrecognized command: " + e.Input
	case ErrUnrecognizedStatement:
		return "Unrecognized statement: " + e.Input
	case ErrNegativeID:
		return "Negative token found: " + e.Input
	case ErrTokenTooLong:
		return "Token too long: " + e.Input
	default:
		return "Invalid Syntax: " + e.Input
	}
}

func (e *Error) Unwrap() error { return e.Kind }

func fail(kind error, input string) error {
	return &Error{Kind: kind, Input: input}
}

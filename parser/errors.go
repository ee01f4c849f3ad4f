package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrWrongFieldCount is returned when an entry does not have exactly
	// category, description and amount.
	ErrWrongFieldCount = errors.New("wrong number of fields")
	// ErrInvalidAmount is returned when the amount is not an integer.
	ErrInvalidAmount = errors.New("amount is not an integer")
	// ErrInvalidBalance is returned when a Balance: line has no integer value.
	ErrInvalidBalance = errors.New("invalid balance")
	// ErrUnexpectedToken is returned for separators a records file line may not contain.
	ErrUnexpectedToken = errors.New("unexpected token")
)

// ParseError describes a rejected entry or file line.
type ParseError struct {
	Pos  Position
	Text string // The offending entry or line, trimmed
	Err  error  // One of the Err* sentinels above
}

func (e *ParseError) Error() string {
	var msg string
	switch {
	case errors.Is(e.Err, ErrWrongFieldCount):
		msg = fmt.Sprintf("invalid input format %q, use 'category description amount'", e.Text)
	case errors.Is(e.Err, ErrInvalidAmount):
		msg = fmt.Sprintf("invalid amount in %q, expected an integer", e.Text)
	case errors.Is(e.Err, ErrInvalidBalance):
		msg = fmt.Sprintf("invalid balance line %q", e.Text)
	default:
		msg = fmt.Sprintf("%v in %q", e.Err, e.Text)
	}

	if e.Pos.Filename == "" {
		return msg
	}
	return fmt.Sprintf("%s:%d: %s", e.Pos.Filename, e.Pos.Line, msg)
}

func (e *ParseError) GetPosition() Position {
	return e.Pos
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

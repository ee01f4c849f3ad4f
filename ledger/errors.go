package ledger

import (
	"errors"
	"fmt"

	"github.com/robinvdvleuten/spendlog/parser"
)

// ErrRecordNotFound is returned by Delete when no record has the description.
var ErrRecordNotFound = errors.New("record not found")

// UnknownCategoryError is returned when an entry names a category that is not
// in the category tree.
type UnknownCategoryError struct {
	Category string
	Text     string
	Pos      parser.Position
}

func (e *UnknownCategoryError) Error() string {
	msg := fmt.Sprintf("invalid category %q", e.Category)
	if e.Pos.Filename == "" {
		return msg
	}
	return fmt.Sprintf("%s:%d: %s", e.Pos.Filename, e.Pos.Line, msg)
}

func (e *UnknownCategoryError) GetPosition() parser.Position {
	return e.Pos
}

// NotFoundError is returned when Delete finds nothing to remove.
type NotFoundError struct {
	Description string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no record with description %q", e.Description)
}

func (e *NotFoundError) Unwrap() error {
	return ErrRecordNotFound
}

// ValidationErrors wraps the diagnostics collected while reading a records
// file or a batch of entries.
type ValidationErrors struct {
	Errors []error
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d validation errors occurred", len(e.Errors))
}

// Unwrap returns the underlying errors for error unwrapping.
func (e *ValidationErrors) Unwrap() []error {
	return e.Errors
}

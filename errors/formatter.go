// Package errors renders diagnostics for people and programs.
//
// Domain error types live in the parser and ledger packages; this package
// only decides how they look:
//   - TextFormatter: one "file:line: message" per diagnostic, with the
//     offending source line underneath when the source is known
//   - JSONFormatter: structured output for check --format=json
package errors

import (
	"bytes"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"strings"

	"github.com/robinvdvleuten/spendlog/ledger"
	"github.com/robinvdvleuten/spendlog/parser"
)

// Formatter formats errors for output in different formats.
type Formatter interface {
	Format(err error) string
	FormatAll(errs []error) string
}

type positioned interface {
	GetPosition() parser.Position
}

// TextFormatter formats errors for command-line output.
type TextFormatter struct {
	sourceLines []string
}

// TextFormatterOption is an option for configuring TextFormatter.
type TextFormatterOption func(*TextFormatter)

// WithSource adds the offending source line below each diagnostic.
func WithSource(source []byte) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.sourceLines = strings.Split(string(source), "\n")
	}
}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter(opts ...TextFormatterOption) *TextFormatter {
	tf := &TextFormatter{}
	for _, opt := range opts {
		opt(tf)
	}
	return tf
}

// Format formats a single error.
func (tf *TextFormatter) Format(err error) string {
	p, ok := err.(positioned)
	if !ok {
		return err.Error()
	}

	pos := p.GetPosition()
	msg := err.Error()
	if pos.Filename == "" && pos.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", pos.Line, msg)
	}

	if pos.Line < 1 || pos.Line > len(tf.sourceLines) {
		return msg
	}
	return fmt.Sprintf("%s\n\n   %s\n", msg, strings.TrimRight(tf.sourceLines[pos.Line-1], "\r"))
}

// FormatAll formats multiple errors, separating them with blank lines when
// source lines are shown.
func (tf *TextFormatter) FormatAll(errs []error) string {
	var buf bytes.Buffer
	for i, err := range errs {
		formatted := tf.Format(err)
		buf.WriteString(strings.TrimRight(formatted, "\n"))
		if i < len(errs)-1 {
			buf.WriteByte('\n')
			if tf.sourceLines != nil {
				buf.WriteByte('\n')
			}
		}
	}
	return buf.String()
}

// JSONFormatter formats errors as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// ErrorJSON represents an error in JSON format.
type ErrorJSON struct {
	Type     string            `json:"type"`
	Message  string            `json:"message"`
	Position *PositionJSON     `json:"position,omitempty"`
	Details  map[string]string `json:"details,omitempty"`
}

// PositionJSON represents a file position in JSON format.
type PositionJSON struct {
	Filename string `json:"filename"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// Format formats a single error as JSON.
func (jf *JSONFormatter) Format(err error) string {
	data, _ := json.Marshal(jf.toJSON(err))
	return string(data)
}

// FormatAll formats multiple errors as a JSON array.
func (jf *JSONFormatter) FormatAll(errs []error) string {
	data, _ := json.MarshalIndent(jf.FormatAllToSlice(errs), "", "  ")
	return string(data)
}

// FormatAllToSlice returns errors as a slice of ErrorJSON structs.
func (jf *JSONFormatter) FormatAllToSlice(errs []error) []ErrorJSON {
	result := make([]ErrorJSON, 0, len(errs))
	for _, err := range errs {
		result = append(result, jf.toJSON(err))
	}
	return result
}

func (jf *JSONFormatter) toJSON(err error) ErrorJSON {
	errJSON := ErrorJSON{
		Type:    Kind(err),
		Message: err.Error(),
		Details: make(map[string]string),
	}

	if p, ok := err.(positioned); ok {
		pos := p.GetPosition()
		errJSON.Position = &PositionJSON{
			Filename: pos.Filename,
			Line:     pos.Line,
			Column:   pos.Column,
		}
	}

	var parseErr *parser.ParseError
	var categoryErr *ledger.UnknownCategoryError
	switch {
	case stdErrors.As(err, &parseErr):
		errJSON.Details["text"] = parseErr.Text
	case stdErrors.As(err, &categoryErr):
		errJSON.Details["text"] = categoryErr.Text
		errJSON.Details["category"] = categoryErr.Category
	}
	if len(errJSON.Details) == 0 {
		errJSON.Details = nil
	}

	return errJSON
}

// Kind names the class of a diagnostic.
func Kind(err error) string {
	var categoryErr *ledger.UnknownCategoryError
	switch {
	case stdErrors.Is(err, parser.ErrWrongFieldCount):
		return "wrong_field_count"
	case stdErrors.Is(err, parser.ErrInvalidAmount):
		return "invalid_amount"
	case stdErrors.Is(err, parser.ErrInvalidBalance):
		return "invalid_balance"
	case stdErrors.Is(err, parser.ErrUnexpectedToken):
		return "unexpected_token"
	case stdErrors.As(err, &categoryErr):
		return "unknown_category"
	case stdErrors.Is(err, ledger.ErrRecordNotFound):
		return "record_not_found"
	default:
		return "error"
	}
}

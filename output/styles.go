// Package output provides styling helpers for terminal output.
package output

import (
	"io"
	"strconv"

	"github.com/muesli/termenv"
)

// Styles renders text for the writer it was created for. Writers that are
// not a terminal get plain text.
type Styles struct {
	output *termenv.Output
}

// NewStyles creates a new Styles instance for the given writer.
func NewStyles(w io.Writer) *Styles {
	return &Styles{
		output: termenv.NewOutput(w),
	}
}

// FilePath returns a styled file path (cyan).
func (s *Styles) FilePath(text string) string {
	return s.output.String(text).
		Foreground(s.output.Color("6")).
		String()
}

// Category returns a styled category label (yellow).
func (s *Styles) Category(text string) string {
	return s.output.String(text).
		Foreground(s.output.Color("3")).
		String()
}

// Amount formats a signed amount, green for income and red for expenses.
func (s *Styles) Amount(amount int64) string {
	text := strconv.FormatInt(amount, 10)
	switch {
	case amount > 0:
		return s.output.String(text).Foreground(s.output.Color("2")).String()
	case amount < 0:
		return s.output.String(text).Foreground(s.output.Color("1")).String()
	default:
		return text
	}
}

// Keyword returns a styled keyword (bold).
func (s *Styles) Keyword(text string) string {
	return s.output.String(text).
		Bold().
		String()
}

// Dim returns dimmed text (for secondary information).
func (s *Styles) Dim(text string) string {
	return s.output.String(text).
		Faint().
		String()
}

// Timing colors a duration red when slow and dims it otherwise.
func (s *Styles) Timing(text string, slow bool) string {
	if slow {
		return s.output.String(text).
			Foreground(s.output.Color("1")).
			String()
	}
	return s.Dim(text)
}

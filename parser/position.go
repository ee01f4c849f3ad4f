package parser

import "fmt"

// Position represents a location in the source.
type Position struct {
	Filename string
	Line     int // Line number (1-indexed)
	Column   int // Column number (1-indexed)
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

func (t Token) position(filename string) Position {
	return Position{Filename: filename, Line: t.Line, Column: t.Column}
}

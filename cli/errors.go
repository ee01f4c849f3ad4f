package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robinvdvleuten/spendlog/parser"
)

var (
	errCaretStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	errContextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"})
)

// ErrorRenderer renders errors with terminal styling and source context.
type ErrorRenderer struct {
	source []byte
}

// NewErrorRenderer creates a renderer with source content for context.
func NewErrorRenderer(source []byte) *ErrorRenderer {
	return &ErrorRenderer{source: source}
}

// Render formats a single error. Errors carrying a position get the
// offending line and a caret when source content is available.
func (r *ErrorRenderer) Render(err error) string {
	if e, ok := err.(interface {
		GetPosition() parser.Position
		Error() string
	}); ok && r.source != nil {
		return r.renderWithSourceContext(e.GetPosition(), e.Error())
	}

	return errorStyle.Render(err.Error())
}

// RenderAll formats multiple errors, separating them with blank lines.
func (r *ErrorRenderer) RenderAll(errs []error) string {
	if len(errs) == 0 {
		return ""
	}

	var buf strings.Builder
	for i, err := range errs {
		buf.WriteString(strings.TrimRight(r.Render(err), "\n"))

		if i < len(errs)-1 {
			buf.WriteString("\n\n")
		}
	}

	return buf.String()
}

func (r *ErrorRenderer) renderWithSourceContext(pos parser.Position, message string) string {
	var buf strings.Builder

	buf.WriteString(errorStyle.Render(message))

	sourceLines := strings.Split(string(r.source), "\n")
	if pos.Line < 1 || pos.Line > len(sourceLines) {
		return buf.String()
	}
	buf.WriteString("\n\n")

	startLine := pos.Line - 3
	if startLine < 0 {
		startLine = 0
	}
	endLine := pos.Line + 1
	if endLine >= len(sourceLines) {
		endLine = len(sourceLines) - 1
	}

	for i := startLine; i <= endLine; i++ {
		line := strings.TrimRight(sourceLines[i], "\r")
		if i >= pos.Line && line == "" {
			break
		}
		buf.WriteString("   ")
		buf.WriteString(errContextStyle.Render(line))
		buf.WriteByte('\n')

		if i == pos.Line-1 && pos.Column > 0 {
			buf.WriteString("   ")
			buf.WriteString(strings.Repeat(" ", pos.Column-1))
			buf.WriteString(errCaretStyle.Render("^"))
			buf.WriteByte('\n')
		}
	}

	return buf.String()
}

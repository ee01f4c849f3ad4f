package cli

import (
	"fmt"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/spendlog/ledger"
	"github.com/robinvdvleuten/spendlog/parser"
)

func TestErrorRenderer_RenderWithSourceContext(t *testing.T) {
	source := "food lunch 10\nfood snack ten\nBalance: 0\n"

	err := &parser.ParseError{
		Pos:  parser.Position{Filename: "records.txt", Line: 2, Column: 12},
		Text: "food snack ten",
		Err:  parser.ErrInvalidAmount,
	}

	output := NewErrorRenderer([]byte(source)).Render(err)

	assert.Contains(t, output, "records.txt:2")
	assert.Contains(t, output, "invalid amount")
	assert.Contains(t, output, "   food snack ten\n")
	assert.Contains(t, output, "   "+strings.Repeat(" ", 11)+"^")
}

func TestErrorRenderer_RenderUnknownCategory(t *testing.T) {
	source := "pets dog 5"

	err := &ledger.UnknownCategoryError{
		Category: "pets",
		Text:     source,
		Pos:      parser.Position{Line: 1, Column: 1},
	}

	output := NewErrorRenderer([]byte(source)).Render(err)

	assert.Contains(t, output, `invalid category "pets"`)
	assert.Contains(t, output, "   pets dog 5\n   ^")
}

func TestErrorRenderer_RenderWithoutSource(t *testing.T) {
	err := &parser.ParseError{
		Pos:  parser.Position{Line: 4, Column: 1},
		Text: "food",
		Err:  parser.ErrWrongFieldCount,
	}

	output := NewErrorRenderer(nil).Render(err)

	assert.Contains(t, output, "invalid input format")
	assert.NotContains(t, output, "^")
}

func TestErrorRenderer_RenderPlainError(t *testing.T) {
	output := NewErrorRenderer([]byte("food lunch 10")).Render(fmt.Errorf("disk full"))
	assert.Contains(t, output, "disk full")
}

func TestErrorRenderer_RenderAll(t *testing.T) {
	source := "food\npets dog 5\n"
	errs := []error{
		&parser.ParseError{Pos: parser.Position{Line: 1, Column: 1}, Text: "food", Err: parser.ErrWrongFieldCount},
		&ledger.UnknownCategoryError{Category: "pets", Text: "pets dog 5", Pos: parser.Position{Line: 2, Column: 1}},
	}

	output := NewErrorRenderer([]byte(source)).RenderAll(errs)

	assert.Contains(t, output, "invalid input format")
	assert.Contains(t, output, `invalid category "pets"`)
	assert.Equal(t, "", NewErrorRenderer(nil).RenderAll(nil))
}

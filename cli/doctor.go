package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/robinvdvleuten/spendlog/category"
	"github.com/robinvdvleuten/spendlog/parser"
)

// DoctorCmd provides doctor utilities for debugging records files.
type DoctorCmd struct {
	Tokens TokensCmd `cmd:"" help:"Show lexical tokens from the records file."`
	Dump   DumpCmd   `cmd:"" help:"Show the parsed structure of the records file."`
}

// TokensCmd shows lexical tokens from the records file.
type TokensCmd struct{}

// Run executes the tokens command.
func (cmd *TokensCmd) Run(ctx *kong.Context, globals *Globals) error {
	content, err := os.ReadFile(globals.File)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	// TYPE line:col "content"
	for _, token := range parser.NewLexer(content, globals.File).ScanAll() {
		if token.Type == parser.EOF {
			continue
		}
		_, _ = fmt.Fprintf(ctx.Stdout, "%-10s %d:%d    %q\n",
			token.Type.String(),
			token.Line,
			token.Column,
			token.String(content))
	}

	return nil
}

// DumpCmd prints the parsed records file, or the category tree.
type DumpCmd struct {
	Categories bool `help:"Dump the category tree instead of the records file."`
}

// Run executes the dump command.
func (cmd *DumpCmd) Run(ctx *kong.Context, globals *Globals) error {
	if cmd.Categories {
		category.Default().Walk(func(n *category.Node, depth int) bool {
			kind := "group"
			if n.IsLeaf() {
				kind = "leaf"
			}
			_, _ = fmt.Fprintf(ctx.Stdout, "%s%-6s %s\n", strings.Repeat("  ", depth), kind, n.Label)
			return true
		})
		return nil
	}

	content, err := os.ReadFile(globals.File)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	file := parser.ParseFile(context.Background(), globals.File, content)
	repr.New(ctx.Stdout, repr.Indent("  ")).Println(file)

	return nil
}

package cli

import (
	"strings"

	"github.com/alecthomas/kong"
)

// AddCmd adds records without starting the interactive session.
type AddCmd struct {
	Entries []string `arg:"" help:"Entries as 'category description amount', separated by commas."`
}

func (cmd *AddCmd) Run(ctx *kong.Context, globals *Globals) error {
	session, runCtx, done := newSession(ctx, globals, "add")
	defer done()

	session.Open(runCtx, true)

	added, errs := session.Add(strings.Join(cmd.Entries, " "))
	if len(added) > 0 || len(errs) == 0 {
		if err := session.Save(runCtx); err != nil {
			printError(ctx.Stderr, err.Error())
			return NewCommandError(1)
		}
	}

	if len(errs) > 0 {
		return NewCommandError(1)
	}
	return nil
}

// ViewCmd prints every record with the running balance.
type ViewCmd struct{}

func (cmd *ViewCmd) Run(ctx *kong.Context, globals *Globals) error {
	session, runCtx, done := newSession(ctx, globals, "view")
	defer done()

	session.Open(runCtx, false)
	return session.View()
}

// DeleteCmd removes the most recent record with a description.
type DeleteCmd struct {
	Description string `arg:"" help:"Description of the record to delete."`
}

func (cmd *DeleteCmd) Run(ctx *kong.Context, globals *Globals) error {
	session, runCtx, done := newSession(ctx, globals, "delete")
	defer done()

	session.Open(runCtx, true)

	if err := session.Delete(cmd.Description); err != nil {
		return NewCommandError(1)
	}

	if err := session.Save(runCtx); err != nil {
		printError(ctx.Stderr, err.Error())
		return NewCommandError(1)
	}
	return nil
}

// FindCmd prints the records filed under a category.
type FindCmd struct {
	Category string `arg:"" help:"Category to search, including every category beneath it."`
}

func (cmd *FindCmd) Run(ctx *kong.Context, globals *Globals) error {
	session, runCtx, done := newSession(ctx, globals, "find")
	defer done()

	session.Open(runCtx, false)
	return session.Find(cmd.Category)
}

// CategoriesCmd prints the category tree.
type CategoriesCmd struct{}

func (cmd *CategoriesCmd) Run(ctx *kong.Context, globals *Globals) error {
	session, _, done := newSession(ctx, globals, "categories")
	defer done()

	return session.Categories()
}

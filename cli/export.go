package cli

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/spendlog/export"
)

// ExportCmd copies the records and balance into a SQLite database.
type ExportCmd struct {
	DB string `help:"SQLite database to export into." name:"db" required:"" type:"path" env:"SPENDLOG_DB"`
}

func (cmd *ExportCmd) Run(ctx *kong.Context, globals *Globals) error {
	logger := globals.Logger(ctx.Stderr)
	runCtx, done := globals.withTelemetry(context.Background(), "export", ctx.Stderr)
	defer done()

	result, err := globals.Loader(logger).Load(runCtx, globals.File)
	if err != nil {
		return err
	}
	if result.Missing {
		printError(ctx.Stderr, fmt.Sprintf("%s does not exist", globals.File))
		return NewCommandError(1)
	}
	if n := len(result.Diagnostics); n > 0 {
		printWarning(ctx.Stderr, fmt.Sprintf("%d line(s) skipped, run check for details", n))
	}

	db, err := export.OpenSQLite(runCtx, cmd.DB, logger)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	id, err := db.Export(runCtx, globals.File, result.Ledger)
	if err != nil {
		return err
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("Exported %d record(s) to %s (snapshot %d)",
		result.Ledger.Len(), pathStyle.Render(cmd.DB), id))

	return nil
}

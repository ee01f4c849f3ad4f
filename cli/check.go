package cli

import (
	"context"
	stdErrors "errors"
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/spendlog/errors"
	"github.com/robinvdvleuten/spendlog/ledger"
)

// CheckCmd validates a records file without changing it.
type CheckCmd struct {
	Format string `help:"Output format (${enum})." enum:"text,json" default:"text"`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	logger := globals.Logger(ctx.Stderr)
	runCtx, done := globals.withTelemetry(context.Background(), "check", ctx.Stderr)
	defer done()

	result, err := globals.Loader(logger).Load(runCtx, globals.File)
	if err != nil {
		return err
	}
	if result.Missing {
		printError(ctx.Stderr, fmt.Sprintf("%s does not exist", globals.File))
		return NewCommandError(1)
	}

	if cmd.Format == "json" {
		_, _ = fmt.Fprintln(ctx.Stdout, errors.NewJSONFormatter().FormatAll(result.Diagnostics))
		if len(result.Diagnostics) > 0 {
			return NewCommandError(1)
		}
		return nil
	}

	if err := checkResult(result.Diagnostics); err != nil {
		var validationErrors *ledger.ValidationErrors
		if stdErrors.As(err, &validationErrors) {
			if isTerminalWriter(ctx.Stderr) {
				renderer := NewErrorRenderer(result.Source)
				_, _ = fmt.Fprintln(ctx.Stderr, renderer.RenderAll(validationErrors.Errors))
			} else {
				formatter := errors.NewTextFormatter(errors.WithSource(result.Source))
				_, _ = fmt.Fprintln(ctx.Stderr, formatter.FormatAll(validationErrors.Errors))
			}

			_, _ = fmt.Fprintln(ctx.Stderr)
			printError(ctx.Stderr, fmt.Sprintf("%d problem(s) found", len(validationErrors.Errors)))

			return NewCommandError(1)
		}
		return err
	}

	if !result.HasBalance {
		printWarning(ctx.Stderr, "no balance line, the starting balance will be asked for")
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("Check passed: %d record(s), balance %d",
		result.Ledger.Len(), result.Ledger.Current()))

	return nil
}

func checkResult(diagnostics []error) error {
	if len(diagnostics) == 0 {
		return nil
	}
	return &ledger.ValidationErrors{Errors: diagnostics}
}

package cli

import (
	"context"
	"os"

	"github.com/alecthomas/kong"
)

// RunCmd starts the interactive session.
type RunCmd struct{}

func (cmd *RunCmd) Run(ctx *kong.Context, globals *Globals) error {
	session, runCtx, done := newSession(ctx, globals, "run")
	defer done()

	result := session.Open(runCtx, true)
	if result.HasBalance {
		printInfof(ctx.Stdout, "Welcome back!")
	}

	if err := session.Run(runCtx); err != nil {
		printError(ctx.Stderr, err.Error())
		return NewCommandError(1)
	}

	return nil
}

// newSession builds a session on stdin for the globals. The returned
// context carries the telemetry collector; done prints its report.
func newSession(ctx *kong.Context, globals *Globals, name string) (*Session, context.Context, func()) {
	logger := globals.Logger(ctx.Stderr)
	runCtx, done := globals.withTelemetry(context.Background(), name, ctx.Stderr)

	opts := []SessionOption{
		WithLogger(logger),
		WithLoader(globals.Loader(logger)),
	}
	if isTerminal(os.Stdin) {
		opts = append(opts, WithPrompter(promptInput))
	}

	return NewSession(globals.File, os.Stdin, ctx.Stdout, ctx.Stderr, opts...), runCtx, done
}

package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/robinvdvleuten/spendlog/loader"
	"github.com/robinvdvleuten/spendlog/output"
	"github.com/robinvdvleuten/spendlog/telemetry"
)

// Globals defines global flags available to all commands.
type Globals struct {
	File      string `help:"Records file to read and write." short:"f" type:"path" default:"records.txt" env:"SPENDLOG_FILE"`
	LogLevel  string `help:"Log level (${enum})." enum:"debug,info,warn,error" default:"warn" env:"SPENDLOG_LOG_LEVEL"`
	Telemetry bool   `help:"Show timing telemetry for operations."`
}

type Commands struct {
	Globals

	Run        RunCmd        `cmd:"" default:"1" help:"Start the interactive ledger session."`
	Add        AddCmd        `cmd:"" help:"Add one or more records."`
	View       ViewCmd       `cmd:"" help:"Show every record with the running balance."`
	Delete     DeleteCmd     `cmd:"" help:"Delete the most recent record with a description."`
	Find       FindCmd       `cmd:"" help:"Show records filed under a category or any category beneath it."`
	Categories CategoriesCmd `cmd:"" help:"Show the category tree."`
	Check      CheckCmd      `cmd:"" help:"Validate a records file."`
	Watch      WatchCmd      `cmd:"" help:"Show the records view and refresh it whenever the file changes."`
	Export     ExportCmd     `cmd:"" help:"Copy the records and balance into a SQLite database."`
	Doctor     DoctorCmd     `cmd:"" help:"Doctor utilities for debugging records files."`
}

// Logger returns a console logger on w at the configured level.
func (g *Globals) Logger(w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(g.LogLevel)
	if err != nil || g.LogLevel == "" {
		level = zerolog.WarnLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: !isTerminalWriter(w)}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// Loader returns a loader logging through logger.
func (g *Globals) Loader(logger zerolog.Logger) *loader.Loader {
	return loader.New(loader.WithLogger(logger))
}

// withTelemetry installs a timing collector in ctx when --telemetry is set.
// The returned func ends the root timer and prints the report to w; it is
// safe to call when telemetry is off.
func (g *Globals) withTelemetry(ctx context.Context, name string, w io.Writer) (context.Context, func()) {
	if !g.Telemetry {
		return ctx, func() {}
	}

	collector := telemetry.NewTimingCollector()
	ctx = telemetry.WithCollector(ctx, collector)
	timer := collector.Start(fmt.Sprintf("%s %s", name, filepath.Base(g.File)))

	done := false
	return ctx, func() {
		if done {
			return
		}
		done = true
		timer.End()
		_, _ = fmt.Fprintln(w)
		collector.Report(w, output.NewStyles(w))
	}
}

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/robinvdvleuten/spendlog/errors"
	"github.com/robinvdvleuten/spendlog/formatter"
	"github.com/robinvdvleuten/spendlog/loader"
	"github.com/robinvdvleuten/spendlog/output"
)

// Debounce delay: editors often write files in multiple steps.
const watchDebounce = 100 * time.Millisecond

// WatchCmd renders the records view and renders it again whenever the
// records file changes.
type WatchCmd struct{}

func (cmd *WatchCmd) Run(ctx *kong.Context, globals *Globals) error {
	logger := globals.Logger(ctx.Stderr)
	ldr := globals.Loader(logger)
	f := formatter.New()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	render := func() {
		renderView(sigCtx, ldr, f, globals.File, ctx.Stdout, ctx.Stderr)
	}

	render()
	printInfof(ctx.Stderr, "Watching %s, press Ctrl+C to stop", pathStyle.Render(globals.File))

	return watchFile(sigCtx, globals.File, logger, render)
}

// renderView loads filename into a fresh ledger and writes its view. Load
// diagnostics go to errOut in the compact text form.
func renderView(ctx context.Context, ldr *loader.Loader, f *formatter.Formatter, filename string, out, errOut io.Writer) {
	styles := output.NewStyles(out)
	_, _ = fmt.Fprintf(out, "%s %s\n", styles.Dim(time.Now().Format("15:04:05")), styles.FilePath(filename))

	result, err := ldr.Load(ctx, filename)
	if err != nil {
		printError(errOut, err.Error())
		return
	}

	if len(result.Diagnostics) > 0 {
		_, _ = fmt.Fprintln(errOut, errors.NewTextFormatter().FormatAll(result.Diagnostics))
	}

	if err := f.FormatView(out, result.Ledger); err != nil {
		printError(errOut, err.Error())
	}
}

// watchFile calls onChange after filename is written, replaced or removed,
// until ctx is done. The parent directory is watched so atomic saves that
// rename over the file are seen.
func watchFile(ctx context.Context, filename string, logger zerolog.Logger, onChange func()) error {
	abs, err := filepath.Abs(filename)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", filename, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	debounce := time.NewTimer(watchDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}

			logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("records file changed")
			debounce.Reset(watchDebounce)

		case <-debounce.C:
			onChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("file watcher error")
		}
	}
}

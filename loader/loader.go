// Package loader reads and writes records files.
//
// Loading never fails on content: lines that do not parse, or that name an
// unknown category, become diagnostics and the rest of the file still loads.
// A missing file is an empty ledger. Only I/O errors are returned as errors.
//
//	ldr := loader.New(loader.WithLogger(logger))
//	result, err := ldr.Load(ctx, "records.txt")
//	if err != nil {
//	    return err
//	}
//	for _, diag := range result.Diagnostics {
//	    fmt.Fprintln(os.Stderr, diag)
//	}
package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/robinvdvleuten/spendlog/category"
	"github.com/robinvdvleuten/spendlog/formatter"
	"github.com/robinvdvleuten/spendlog/ledger"
	"github.com/robinvdvleuten/spendlog/parser"
	"github.com/robinvdvleuten/spendlog/telemetry"
)

// Loader reads records files into ledgers validated against a category
// tree, and writes them back.
type Loader struct {
	Tree   *category.Tree
	Logger zerolog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithTree sets the category tree entries are validated against.
func WithTree(tree *category.Tree) Option {
	return func(l *Loader) {
		l.Tree = tree
	}
}

// WithLogger sets the logger for load and save events.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Loader) {
		l.Logger = logger
	}
}

// New creates a new Loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{
		Tree:   category.Default(),
		Logger: zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Result is a loaded records file.
type Result struct {
	Filename string
	Source   []byte
	Ledger   *ledger.Ledger

	// Missing is set when the file does not exist.
	Missing bool

	// HasBalance is set when the file held a valid Balance: line.
	HasBalance bool

	// Diagnostics lists every rejected line, in file order.
	Diagnostics []error
}

// NeedsBalance reports whether the starting balance still has to be asked
// for: the file was missing, or had no valid Balance: line.
func (r *Result) NeedsBalance() bool {
	return !r.HasBalance
}

// Load reads filename. A missing file yields an empty ledger with Missing
// set; any other read error is returned.
func (l *Loader) Load(ctx context.Context, filename string) (*Result, error) {
	timer := telemetry.FromContext(ctx).Start("loader.load " + filepath.Base(filename))
	defer timer.End()

	data, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		l.Logger.Debug().Str("file", filename).Msg("records file does not exist")
		return &Result{
			Filename: filename,
			Ledger:   ledger.New(l.Tree, 0),
			Missing:  true,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	return l.LoadBytes(ctx, filename, data), nil
}

// LoadBytes builds a ledger from records file content.
func (l *Loader) LoadBytes(ctx context.Context, filename string, data []byte) *Result {
	file := parser.ParseFile(ctx, filename, data)

	result := &Result{
		Filename:    filename,
		Source:      data,
		Ledger:      ledger.New(l.Tree, file.Balance),
		HasBalance:  file.HasBalance,
		Diagnostics: file.Errors,
	}

	timer := telemetry.FromContext(ctx).Start("ledger.validate")
	for _, entry := range file.Entries {
		if _, err := result.Ledger.Append(entry); err != nil {
			result.Diagnostics = append(result.Diagnostics, err)
		}
	}
	timer.End()

	sortDiagnostics(result.Diagnostics)

	l.Logger.Debug().
		Str("file", filename).
		Int("records", result.Ledger.Len()).
		Int("diagnostics", len(result.Diagnostics)).
		Bool("balance", result.HasBalance).
		Msg("loaded records file")

	return result
}

// Save writes ledger to filename. The content goes to a temporary file in
// the same directory first and is renamed over filename, so a failed write
// leaves the previous file intact. An existing file keeps its permissions;
// a new one is created 0644.
func (l *Loader) Save(ctx context.Context, filename string, lg *ledger.Ledger) (err error) {
	timer := telemetry.FromContext(ctx).Start("loader.save " + filepath.Base(filename))
	defer timer.End()

	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(filename); statErr == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(filename)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filename)+".*")
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", filename, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = formatter.New().Format(ctx, lg, tmp); err != nil {
		return fmt.Errorf("failed to save %s: %w", filename, err)
	}
	if err = tmp.Chmod(mode); err != nil {
		return fmt.Errorf("failed to save %s: %w", filename, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to save %s: %w", filename, err)
	}
	if err = os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("failed to save %s: %w", filename, err)
	}

	l.Logger.Debug().
		Str("file", filename).
		Int("records", lg.Len()).
		Int64("balance", lg.Balance()).
		Msg("saved records file")

	return nil
}

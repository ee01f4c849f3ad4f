// Package telemetry collects nested operation timings for the --telemetry
// flag. A collector travels through context so loading, parsing and saving
// can time themselves without extra parameters.
//
//	collector := telemetry.NewTimingCollector()
//	ctx := telemetry.WithCollector(context.Background(), collector)
//
//	timer := telemetry.FromContext(ctx).Start("loader.load")
//	defer timer.End()
//
//	collector.Report(os.Stderr, output.NewStyles(os.Stderr))
package telemetry

import (
	"context"
	"io"

	"github.com/robinvdvleuten/spendlog/output"
)

type contextKey struct{}

var collectorKey = contextKey{}

// Collector hands out timers and reports what they measured.
type Collector interface {
	// Start begins timing an operation nested under the innermost
	// running timer.
	Start(name string) Timer

	// Report writes the collected timings. styles may be nil.
	Report(w io.Writer, styles *output.Styles)
}

// Timer tracks a single operation.
type Timer interface {
	End()
	Child(name string) Timer
}

// WithCollector adds a collector to a context.
func WithCollector(ctx context.Context, collector Collector) context.Context {
	return context.WithValue(ctx, collectorKey, collector)
}

// FromContext returns the collector stored in ctx, or one that records
// nothing.
func FromContext(ctx context.Context) Collector {
	if collector, ok := ctx.Value(collectorKey).(Collector); ok {
		return collector
	}
	return noOpCollector{}
}

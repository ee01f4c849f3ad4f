// Package formatter writes ledgers as records files and as the tables shown
// by the view and find commands.
package formatter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/robinvdvleuten/spendlog/ledger"
	"github.com/robinvdvleuten/spendlog/telemetry"
)

const (
	// DefaultCategoryWidth is the minimum width of the category column.
	DefaultCategoryWidth = 15

	// DefaultDescriptionWidth is the minimum width of the description column.
	DefaultDescriptionWidth = 20

	// BalancePrefix starts the last line of a records file.
	BalancePrefix = "Balance:"
)

// Formatter renders ledgers.
type Formatter struct {
	// CategoryWidth is the width of the category column in tables.
	// Columns grow to fit wider labels.
	CategoryWidth int

	// DescriptionWidth is the width of the description column in tables.
	DescriptionWidth int

	// RunningBalance adds a column with the balance after each record to
	// the view table.
	RunningBalance bool
}

// Option is a functional option for configuring a Formatter.
type Option func(*Formatter)

// WithCategoryWidth sets the minimum category column width.
func WithCategoryWidth(width int) Option {
	return func(f *Formatter) {
		f.CategoryWidth = width
	}
}

// WithDescriptionWidth sets the minimum description column width.
func WithDescriptionWidth(width int) Option {
	return func(f *Formatter) {
		f.DescriptionWidth = width
	}
}

// WithRunningBalance enables or disables the running balance column.
func WithRunningBalance(enabled bool) Option {
	return func(f *Formatter) {
		f.RunningBalance = enabled
	}
}

// New creates a new Formatter with the given options.
func New(opts ...Option) *Formatter {
	f := &Formatter{
		CategoryWidth:    DefaultCategoryWidth,
		DescriptionWidth: DefaultDescriptionWidth,
		RunningBalance:   true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Format writes l in the records file layout: one "category description
// amount" line per record followed by "Balance: <starting balance>".
func (f *Formatter) Format(ctx context.Context, l *ledger.Ledger, w io.Writer) error {
	timer := telemetry.FromContext(ctx).Start("formatter.format")
	defer timer.End()

	bw := bufio.NewWriter(w)
	for _, r := range l.Records() {
		if _, err := fmt.Fprintln(bw, r.String()); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(bw, "%s %d\n", BalancePrefix, l.Balance()); err != nil {
		return err
	}
	return bw.Flush()
}

// FormatView writes every record with the running balance after it, then
// the current balance.
func (f *Formatter) FormatView(w io.Writer, l *ledger.Ledger) error {
	records := l.Records()

	t := f.newTable(f.RunningBalance)
	running := l.Balance()
	for _, r := range records {
		running += r.Amount
		t.row(r, running)
	}

	_, err := fmt.Fprintf(w, "%sNow you have %d dollars.\n", t.String(), l.Current())
	return err
}

// FormatFind writes the records matched by a find query and their total.
func (f *Formatter) FormatFind(w io.Writer, result ledger.FindResult) error {
	t := f.newTable(false)
	for _, r := range result.Records {
		t.row(r, 0)
	}

	_, err := fmt.Fprintf(w, "%sThe total amount above is %d dollars.\n", t.String(), result.Total)
	return err
}

type table struct {
	widths  []int
	running bool
	rows    [][]string
}

func (f *Formatter) newTable(running bool) *table {
	t := &table{
		widths:  []int{f.CategoryWidth, f.DescriptionWidth, len("Amount")},
		running: running,
	}
	header := []string{"Category", "Description", "Amount"}
	if running {
		header = append(header, "Balance")
		t.widths = append(t.widths, len("Balance"))
	}
	t.add(header)
	return t
}

func (t *table) fit(col int, s string) {
	if w := runewidth.StringWidth(s); w > t.widths[col] {
		t.widths[col] = w
	}
}

func (t *table) row(r ledger.Record, balance int64) {
	cells := r.Fields()
	if t.running {
		cells = append(cells, strconv.FormatInt(balance, 10))
	}
	t.add(cells)
}

func (t *table) add(cells []string) {
	for i, c := range cells {
		t.fit(i, c)
	}
	t.rows = append(t.rows, cells)
}

func (t *table) String() string {
	total := len(t.widths) - 1
	for _, w := range t.widths {
		total += w
	}
	rule := strings.Repeat("=", total) + "\n"

	var buf strings.Builder
	for i, cells := range t.rows {
		for j, c := range cells {
			if j == len(cells)-1 {
				buf.WriteString(c)
				break
			}
			buf.WriteString(runewidth.FillRight(c, t.widths[j]))
			buf.WriteByte(' ')
		}
		buf.WriteByte('\n')
		if i == 0 {
			buf.WriteString(rule)
		}
	}
	buf.WriteString(rule)
	return buf.String()
}

// Package ledger keeps the in-memory list of records and the starting balance
// they are added to.
//
// Entries are parsed by the parser package and checked against the category
// tree before they become records. The ledger never touches the disk; see
// the loader package for reading and writing records files.
//
//	l := ledger.New(category.Default(), 1000)
//	added, errs := l.Add("food meal -120, income salary 3000")
//	fmt.Println(l.Current()) // 3880
package ledger

import (
	"sort"

	"github.com/robinvdvleuten/spendlog/category"
	"github.com/robinvdvleuten/spendlog/parser"
	"golang.org/x/exp/slices"
)

// Ledger is an ordered list of records on top of a starting balance.
// Insertion order is display order.
type Ledger struct {
	tree    *category.Tree
	balance int64
	records []Record
}

// New creates an empty ledger validating categories against tree.
func New(tree *category.Tree, balance int64) *Ledger {
	if tree == nil {
		tree = category.Default()
	}
	return &Ledger{tree: tree, balance: balance}
}

// Tree returns the category tree records are validated against.
func (l *Ledger) Tree() *category.Tree {
	return l.tree
}

// Add parses text as comma separated entries and appends every valid one.
// Invalid entries are returned as errors and skipped; they never stop valid
// siblings from being added.
func (l *Ledger) Add(text string) ([]Record, []error) {
	entries, errs := parser.ParseEntries("", []byte(text))

	var added []Record
	for _, entry := range entries {
		record, err := l.Append(entry)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		added = append(added, record)
	}
	sortByPosition(errs)
	return added, errs
}

// Append adds a parsed entry after checking its category.
func (l *Ledger) Append(entry parser.Entry) (Record, error) {
	if !l.tree.IsValid(entry.Category) {
		return Record{}, &UnknownCategoryError{
			Category: entry.Category,
			Text:     entry.Text,
			Pos:      entry.Pos,
		}
	}

	record := Record{
		Category:    entry.Category,
		Description: entry.Description,
		Amount:      entry.Amount,
	}
	l.records = append(l.records, record)
	return record, nil
}

// Records returns a copy of the records in insertion order.
func (l *Ledger) Records() []Record {
	return slices.Clone(l.records)
}

// Len returns the number of records.
func (l *Ledger) Len() int {
	return len(l.records)
}

// Balance returns the starting balance.
func (l *Ledger) Balance() int64 {
	return l.balance
}

// SetBalance replaces the starting balance.
func (l *Ledger) SetBalance(balance int64) {
	l.balance = balance
}

// Total returns the sum of all record amounts.
func (l *Ledger) Total() int64 {
	return Sum(l.records)
}

// Current returns the starting balance plus every record amount.
func (l *Ledger) Current() int64 {
	return l.balance + l.Total()
}

// Delete removes the most recently added record with exactly this
// description. Only one record is removed even if several match.
func (l *Ledger) Delete(description string) (Record, error) {
	for i := len(l.records) - 1; i >= 0; i-- {
		if l.records[i].Description != description {
			continue
		}
		record := l.records[i]
		l.records = slices.Delete(l.records, i, i+1)
		return record, nil
	}
	return Record{}, &NotFoundError{Description: description}
}

// FindResult holds the records matching a category query.
type FindResult struct {
	Query      string
	Categories []string // query and every category nested beneath it
	Records    []Record
	Total      int64
}

// Find returns the records filed under query or any category nested beneath
// it. Unknown queries match nothing.
func (l *Ledger) Find(query string) FindResult {
	result := FindResult{
		Query:      query,
		Categories: l.tree.Resolve(query),
	}
	for _, r := range l.records {
		if slices.Contains(result.Categories, r.Category) {
			result.Records = append(result.Records, r)
		}
	}
	result.Total = Sum(result.Records)
	return result
}

// sortByPosition restores input order; parse and category errors come from
// separate passes.
func sortByPosition(errs []error) {
	pos := func(err error) parser.Position {
		if p, ok := err.(interface{ GetPosition() parser.Position }); ok {
			return p.GetPosition()
		}
		return parser.Position{}
	}
	sort.SliceStable(errs, func(i, j int) bool {
		a, b := pos(errs[i]), pos(errs[j])
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
}

package ledger

import (
	"fmt"
	"strings"
)

// Record is a single expense (negative amount) or income (positive amount)
// entry. Records are values; the ledger hands out copies.
type Record struct {
	Category    string
	Description string
	Amount      int64
}

// Fields returns the record as the three tokens stored on a file line.
func (r Record) Fields() []string {
	return []string{r.Category, r.Description, fmt.Sprint(r.Amount)}
}

// String returns the record in its persisted form.
func (r Record) String() string {
	return strings.Join(r.Fields(), " ")
}

// Sum adds up the amounts of records.
func Sum(records []Record) int64 {
	var total int64
	for _, r := range records {
		total += r.Amount
	}
	return total
}

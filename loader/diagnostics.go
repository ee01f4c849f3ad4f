package loader

import (
	"sort"

	"github.com/robinvdvleuten/spendlog/parser"
)

type positioned interface {
	GetPosition() parser.Position
}

// sortDiagnostics orders diagnostics by line. Parse errors and category
// errors are found in separate passes; readers expect file order.
func sortDiagnostics(errs []error) {
	sort.SliceStable(errs, func(i, j int) bool {
		return line(errs[i]) < line(errs[j])
	})
}

func line(err error) int {
	if p, ok := err.(positioned); ok {
		return p.GetPosition().Line
	}
	return 0
}

package telemetry

import (
	"fmt"
	"io"
	"time"

	"github.com/robinvdvleuten/spendlog/output"
)

const slowThreshold = 100 * time.Millisecond

// formatTree writes a span tree:
//
//	run: 12ms
//	├─ loader.load: 3ms
//	│  └─ parser.parse: 1ms
//	└─ loader.save: 2ms
func formatTree(w io.Writer, root *span, styles *output.Styles) {
	name := root.name
	if styles != nil {
		name = styles.Keyword(name)
	}
	_, _ = fmt.Fprintf(w, "%s: %s\n", name, formatDuration(root.duration()))

	for i, child := range root.children {
		formatSpan(w, child, "", i == len(root.children)-1, styles)
	}
}

func formatSpan(w io.Writer, s *span, prefix string, last bool, styles *output.Styles) {
	branch, extension := "├─ ", "│  "
	if last {
		branch, extension = "└─ ", "   "
	}

	d := s.duration()
	tree, timing := prefix+branch, formatDuration(d)
	if styles != nil {
		tree = styles.Dim(tree)
		timing = styles.Timing(timing, d >= slowThreshold)
	}
	_, _ = fmt.Fprintf(w, "%s%s: %s\n", tree, s.name, timing)

	for i, child := range s.children {
		formatSpan(w, child, prefix+extension, i == len(s.children)-1, styles)
	}
}

// formatDuration shows milliseconds below one second and seconds above.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.2fs", float64(d)/float64(time.Second))
}

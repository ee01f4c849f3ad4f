package telemetry

import (
	"io"
	"sync"
	"time"

	"github.com/robinvdvleuten/spendlog/output"
)

// TimingCollector builds a tree of timed operations.
type TimingCollector struct {
	mu      sync.Mutex
	roots   []*span
	current *span
	now     func() time.Time
}

type span struct {
	name     string
	start    time.Time
	end      time.Time
	parent   *span
	children []*span
}

func (s *span) duration() time.Duration {
	if s.end.IsZero() {
		return 0
	}
	return s.end.Sub(s.start)
}

// NewTimingCollector creates an empty collector.
func NewTimingCollector() *TimingCollector {
	return &TimingCollector{now: time.Now}
}

// Start opens a span under the innermost open span, or a new root.
func (c *TimingCollector) Start(name string) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := &span{name: name, start: c.now(), parent: c.current}
	if c.current == nil {
		c.roots = append(c.roots, s)
	} else {
		c.current.children = append(c.current.children, s)
	}
	c.current = s

	return &timingTimer{collector: c, span: s}
}

// Report writes every root span and its children as a tree.
func (c *TimingCollector) Report(w io.Writer, styles *output.Styles) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, root := range c.roots {
		formatTree(w, root, styles)
	}
}

type timingTimer struct {
	collector *TimingCollector
	span      *span
}

// End closes the span. Ending the innermost span makes its parent current
// again.
func (t *timingTimer) End() {
	c := t.collector
	c.mu.Lock()
	defer c.mu.Unlock()

	if t.span.end.IsZero() {
		t.span.end = c.now()
	}
	if c.current == t.span {
		c.current = t.span.parent
	}
}

// Child opens a span directly under this one without changing which span
// Start nests under.
func (t *timingTimer) Child(name string) Timer {
	c := t.collector
	c.mu.Lock()
	defer c.mu.Unlock()

	s := &span{name: name, start: c.now(), parent: t.span}
	t.span.children = append(t.span.children, s)

	return &timingTimer{collector: c, span: s}
}

// Package category provides the fixed category hierarchy records are filed
// under. Labels are either leaves or groups with ordered children; both kinds
// are valid record categories and valid find queries.
package category

import (
	"io"
	"strings"

	"golang.org/x/exp/slices"
)

// Node is a single label in the hierarchy.
type Node struct {
	Label    string
	Children []*Node
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Leaf creates a node without children.
func Leaf(label string) *Node {
	return &Node{Label: label}
}

// Group creates a node with the given children in order.
func Group(label string, children ...*Node) *Node {
	return &Node{Label: label, Children: children}
}

// Tree is an ordered forest of category nodes.
type Tree struct {
	roots []*Node
}

// New creates a tree from its top-level nodes.
func New(roots ...*Node) *Tree {
	return &Tree{roots: roots}
}

// Default returns the built-in hierarchy.
func Default() *Tree {
	return New(
		Group("expense",
			Group("food", Leaf("meal"), Leaf("snack"), Leaf("drink")),
			Group("transport", Leaf("bus"), Leaf("railway")),
		),
		Group("income", Leaf("salary"), Leaf("bonus")),
	)
}

// IsValid reports whether name is a label anywhere in the tree.
func (t *Tree) IsValid(name string) bool {
	return contains(t.roots, name)
}

func contains(nodes []*Node, name string) bool {
	for _, n := range nodes {
		if n.Label == name || contains(n.Children, name) {
			return true
		}
	}
	return false
}

// Descendants returns name followed by every label nested beneath it, in
// pre-order. Every occurrence of name in the tree contributes, so a label
// that appears twice yields both subtrees. Unknown names yield an empty
// slice.
func (t *Tree) Descendants(name string) []string {
	var out []string
	t.Walk(func(n *Node, _ int) bool {
		if n.Label != name {
			return true
		}
		out = append(out, flatten(n)...)
		return false
	})
	return out
}

func flatten(n *Node) []string {
	labels := []string{n.Label}
	for _, child := range n.Children {
		labels = append(labels, flatten(child)...)
	}
	return labels
}

// Resolve returns the distinct set of labels Descendants yields for name,
// keeping first-seen order.
func (t *Tree) Resolve(name string) []string {
	var out []string
	for _, label := range t.Descendants(name) {
		if !slices.Contains(out, label) {
			out = append(out, label)
		}
	}
	return out
}

// Walk visits nodes depth-first with their depth, starting at 0 for the
// roots. Returning false from fn skips the children of that node.
func (t *Tree) Walk(fn func(n *Node, depth int) bool) {
	walk(t.roots, 0, fn)
}

func walk(nodes []*Node, depth int, fn func(*Node, int) bool) {
	for _, n := range nodes {
		if fn(n, depth) {
			walk(n.Children, depth+1, fn)
		}
	}
}

// Labels returns every label in pre-order.
func (t *Tree) Labels() []string {
	var out []string
	t.Walk(func(n *Node, _ int) bool {
		out = append(out, n.Label)
		return true
	})
	return out
}

// Render writes one label per line, indented two spaces per level.
func (t *Tree) Render(w io.Writer) error {
	var buf strings.Builder
	t.Walk(func(n *Node, depth int) bool {
		buf.WriteString(strings.Repeat(" ", depth*2))
		buf.WriteString(n.Label)
		buf.WriteByte('\n')
		return true
	})
	_, err := io.WriteString(w, buf.String())
	return err
}

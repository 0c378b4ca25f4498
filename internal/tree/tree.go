package tree

import (
	"fmt"
	"strings"

	"elmtl/internal/domain"
	"elmtl/internal/label"
)

// Node is a suite or a test in the result tree
type Node struct {
	Path     label.Path
	Name     string
	Children []*Node
	Test     *domain.TestEvent // nil for suites
	Passed   int
	Failed   int
}

// IsSuite reports whether the node groups other results
func (n *Node) IsSuite() bool {
	return n.Test == nil
}

// Tree holds the root node and an index of every node by path string
type Tree struct {
	Root  *Node
	index map[string]*Node
}

// Build replays events through a Builder and assembles the tree.
// A result reported twice under the same path keeps both nodes; Find
// returns the first.
func Build(events []domain.TestEvent) (*Tree, error) {
	t := &Tree{
		Root:  &Node{},
		index: make(map[string]*Node),
	}
	stack := []*Node{t.Root}

	apply := func(evs []Event) {
		for _, ev := range evs {
			top := stack[len(stack)-1]
			switch ev.Kind {
			case SuiteStarted:
				node := &Node{Path: ev.Path, Name: ev.Name}
				top.Children = append(top.Children, node)
				t.remember(node)
				stack = append(stack, node)
			case SuiteFinished:
				stack = stack[:len(stack)-1]
				parent := stack[len(stack)-1]
				parent.Passed += top.Passed
				parent.Failed += top.Failed
			case TestFinished:
				node := &Node{Path: ev.Path, Name: ev.Name, Test: ev.Test}
				if ev.Test.Status == domain.StatusPass {
					node.Passed = 1
				} else {
					node.Failed = 1
				}
				top.Passed += node.Passed
				top.Failed += node.Failed
				top.Children = append(top.Children, node)
				t.remember(node)
			}
		}
	}

	b := NewBuilder()
	for _, e := range events {
		evs, err := b.Add(e)
		if err != nil {
			return nil, err
		}
		apply(evs)
	}
	evs, err := b.Finish()
	if err != nil {
		return nil, err
	}
	apply(evs)

	return t, nil
}

func (t *Tree) remember(n *Node) {
	key := n.Path.String()
	if _, ok := t.index[key]; !ok {
		t.index[key] = n
	}
}

// Find looks a node up by its path
func (t *Tree) Find(p label.Path) (*Node, bool) {
	n, ok := t.index[p.String()]
	return n, ok
}

// Walk visits nodes depth first in report order. Depth is 0 for modules.
func (t *Tree) Walk(fn func(n *Node, depth int)) {
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		for _, c := range n.Children {
			fn(c, depth)
			walk(c, depth+1)
		}
	}
	walk(t.Root, 0)
}

// RelativeName names n relative to the scope of prev, e.g. a test following
// its sibling is shown by its own label only. It falls back to the full
// label path when prev is nil.
func (n *Node) RelativeName(prev *Node) (string, error) {
	p := n.Path
	if prev != nil {
		p = label.DiffPaths(prev.Path, n.Path)
	}
	labels, err := label.Labels(p)
	if err != nil {
		return "", fmt.Errorf("relative name of %s: %w", n.Path, err)
	}
	return strings.Join(labels, " › "), nil
}

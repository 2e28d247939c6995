package tree

import "fmt"

// Check validates the aggregation invariant for every internal node. It
// recomputes each node from its children, so it is O(n) and meant for
// tests and diagnostics.
func (t *Tree[T]) Check() error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrInvariant)
	}
	if len(t.nodes) != 2*t.n {
		return fmt.Errorf("%w: backing array has %d nodes, want %d", ErrInvariant, len(t.nodes), 2*t.n)
	}
	for i := t.n - 1; i > 0; i-- {
		want := t.combine.Combine(t.nodes[2*i], t.nodes[2*i+1])
		if t.nodes[i] != want {
			return fmt.Errorf("%w: node %d holds %v, children combine to %v", ErrInvariant, i, t.nodes[i], want)
		}
	}
	return nil
}

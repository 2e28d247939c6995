package tree

import "fmt"

// Tree is a fixed-size aggregation tree over n leaves.
type Tree[T Number] struct {
	n       int
	combine Combiner[T]
	nodes   []T // nodes[0] unused, [1, n) internal, [n, 2n) leaves
}

// New builds a tree over a copy of data in O(n).
func New[T Number](data []T, c Combiner[T]) (*Tree[T], error) {
	if c == nil {
		return nil, configErrorf("combiner is required")
	}
	if err := ValidateData(data); err != nil {
		return nil, err
	}
	n := len(data)
	t := &Tree[T]{
		n:       n,
		combine: c,
		nodes:   make([]T, 2*n),
	}
	copy(t.nodes[n:], data)
	for i := n - 1; i > 0; i-- {
		t.nodes[i] = c.Combine(t.nodes[2*i], t.nodes[2*i+1])
	}
	return t, nil
}

// Len returns the number of leaves.
func (t *Tree[T]) Len() int {
	return t.n
}

// Combiner returns the combiner the tree aggregates with.
func (t *Tree[T]) Combiner() Combiner[T] {
	return t.combine
}

// Update sets the leaf at index and recomputes its ancestors.
func (t *Tree[T]) Update(index int, value T) error {
	if index < 0 || index >= t.n {
		return &IndexOutOfBoundsError{Index: index, Size: t.n}
	}
	if isNaN(value) {
		return configErrorf("value at index %d is not a number", index)
	}
	i := index + t.n
	t.nodes[i] = value
	for i > 1 {
		i /= 2
		t.nodes[i] = t.combine.Combine(t.nodes[2*i], t.nodes[2*i+1])
	}
	return nil
}

// Query folds the leaves in the inclusive range [left, right].
func (t *Tree[T]) Query(left, right int) (T, error) {
	if err := t.checkRange(left, right); err != nil {
		var zero T
		return zero, err
	}
	res := t.combine.Identity()
	lo, hi := left+t.n, right+t.n+1
	for lo < hi {
		if lo&1 == 1 {
			res = t.combine.Combine(res, t.nodes[lo])
			lo++
		}
		if hi&1 == 1 {
			hi--
			res = t.combine.Combine(res, t.nodes[hi])
		}
		lo /= 2
		hi /= 2
	}
	return res, nil
}

func (t *Tree[T]) checkRange(left, right int) error {
	err := &IndexOutOfBoundsError{Left: left, Right: right, Size: t.n, Range: true}
	switch {
	case left < 0 || left >= t.n:
		err.Index = left
	case right < 0 || right >= t.n:
		err.Index = right
	case left > right:
		err.Index = left
	default:
		return nil
	}
	return err
}

// At returns the current leaf value at index.
func (t *Tree[T]) At(index int) (T, error) {
	if index < 0 || index >= t.n {
		var zero T
		return zero, &IndexOutOfBoundsError{Index: index, Size: t.n}
	}
	return t.nodes[index+t.n], nil
}

// Total returns the aggregate over all leaves. It equals Query(0, Len()-1)
// and reads the root directly; with n == 1 the root is the single leaf.
func (t *Tree[T]) Total() T {
	return t.nodes[1]
}

// Snapshot returns a copy of the leaves in their original order.
func (t *Tree[T]) Snapshot() []T {
	out := make([]T, t.n)
	copy(out, t.nodes[t.n:])
	return out
}

func (t *Tree[T]) String() string {
	return fmt.Sprintf("Tree(size=%d, combine=%s)", t.n, t.combine.Name())
}

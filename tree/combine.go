package tree

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Number is the element type a Tree can aggregate.
type Number interface {
	constraints.Integer | constraints.Float
}

// Combiner defines how values are aggregated up the tree.
//
// Combine must be associative and commutative:
//
//	Combine(Combine(a, b), c) == Combine(a, Combine(b, c))
//	Combine(a, b) == Combine(b, a)
//
// and Identity must be neutral:
//
//	Combine(Identity(), a) == a
type Combiner[T Number] interface {
	Name() string
	Identity() T
	Combine(a, b T) T
}

type minimum[T Number] struct{ identity T }

func (minimum[T]) Name() string     { return "minimum" }
func (c minimum[T]) Identity() T    { return c.identity }
func (minimum[T]) Combine(a, b T) T { return min(a, b) }

type maximum[T Number] struct{ identity T }

func (maximum[T]) Name() string     { return "maximum" }
func (c maximum[T]) Identity() T    { return c.identity }
func (maximum[T]) Combine(a, b T) T { return max(a, b) }

type sum[T Number] struct{}

func (sum[T]) Name() string     { return "sum" }
func (sum[T]) Identity() T      { return 0 }
func (sum[T]) Combine(a, b T) T { return a + b }

// Minimum returns a combiner keeping the smaller value. identity must be
// at least as large as any value stored, e.g. math.MaxInt64 for int64.
func Minimum[T Number](identity T) Combiner[T] {
	return minimum[T]{identity: identity}
}

// Maximum returns a combiner keeping the larger value. identity must be
// at most as small as any value stored.
func Maximum[T Number](identity T) Combiner[T] {
	return maximum[T]{identity: identity}
}

// Sum returns an additive combiner with identity 0.
func Sum[T Number]() Combiner[T] {
	return sum[T]{}
}

// FloatMinimum is Minimum seeded with +Inf.
func FloatMinimum[T constraints.Float]() Combiner[T] {
	return Minimum(T(math.Inf(1)))
}

// FloatMaximum is Maximum seeded with -Inf.
func FloatMaximum[T constraints.Float]() Combiner[T] {
	return Maximum(T(math.Inf(-1)))
}

type funcCombiner[T Number] struct {
	name     string
	identity T
	fn       func(a, b T) T
}

func (c funcCombiner[T]) Name() string     { return c.name }
func (c funcCombiner[T]) Identity() T      { return c.identity }
func (c funcCombiner[T]) Combine(a, b T) T { return c.fn(a, b) }

// Func adapts a caller supplied operator. There is no generic identity for
// an arbitrary operator, so it has to be given explicitly. A nil fn yields
// a nil Combiner, which New rejects.
func Func[T Number](name string, identity T, fn func(a, b T) T) Combiner[T] {
	if fn == nil {
		return nil
	}
	return funcCombiner[T]{name: name, identity: identity, fn: fn}
}

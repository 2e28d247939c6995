/*
Package tree provides a fixed-size, array-backed aggregation tree (a
segment tree) answering point updates and inclusive range aggregate queries
in O(log n).

The tree stores its n leaves in the upper half of a slice of length 2n and
every internal node i in [1, n) holds Combine(nodes[2i], nodes[2i+1]). Index
0 is unused. Range queries walk the two boundaries of the half-open leaf
interval upwards and fold whole subtrees into an accumulator seeded with the
combiner's identity.

Because the query visits subtrees from both ends, it does not preserve
left-to-right evaluation order. A Combiner must therefore be associative and
commutative; minimum, maximum and sum are provided.

A Tree is not safe for concurrent use. Guard a shared instance with a lock.
*/
package tree

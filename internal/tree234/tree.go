// Package tree234 implements a generic counted 2-3-4 tree: a balanced
// search tree in which every node has two, three, or four children, and
// every internal node tracks the element count of each subtree so that
// both comparison-based lookup and rank-based indexing run in O(log n).
//
// source: https://git.tartarus.org/simon/puzzles.git/tree234.c
package tree234

// CompareFunc orders elements of type T. It must behave like a normal
// three-way comparator: negative if x < y, zero if equal, positive if
// x > y.
type CompareFunc[T any] func(x, y *T) int

type Tree234[T any] struct {
	root *node234[T]
	cmp  CompareFunc[T]
}

func NewTree234[T any](cmp CompareFunc[T]) *Tree234[T] {
	return &Tree234[T]{
		root: nil,
		cmp:  cmp,
	}
}

// Tree234 implements [fmt.Stringer]
func (t Tree234[T]) String() string {
	return t.root.String()
}

func (t Tree234[T]) Count() int {
	return t.root.count()
}

// Index looks up the element at a given numeric rank in the tree.
// Returns nil if the index is out of range.
func (t *Tree234[T]) Index(index int) *T {
	if t.root == nil {
		return nil /* tree is empty */
	}

	if index < 0 || index >= t.root.count() {
		return nil /* out of range */
	}

	n := t.root

	for n != nil {
		if index < n.counts[0] {
			n = n.kids[0]
		} else if index -= n.counts[0] + 1; index < 0 {
			return n.elems[0]
		} else if index < n.counts[1] {
			n = n.kids[1]
		} else if index -= n.counts[1] + 1; index < 0 {
			return n.elems[1]
		} else if index < n.counts[2] {
			n = n.kids[2]
		} else if index -= n.counts[2] + 1; index < 0 {
			return n.elems[2]
		} else {
			n = n.kids[3]
		}
	}

	panic("tree234: inconsistent counts while indexing")
}

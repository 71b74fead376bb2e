package mines

import "testing"

func TestSetMungeIntersectionAndDifference(t *testing.T) {
	full := word(0x1FF)
	corner := word(1) // top-left cell only, anchored at the same (0,0)

	inter := setMunge(0, 0, full, 0, 0, corner, false)
	if inter != corner {
		t.Fatalf("intersection with self-anchored subset: got %09b, want %09b", inter, corner)
	}

	diff := setMunge(0, 0, full, 0, 0, corner, true)
	if diff != full&^corner {
		t.Fatalf("difference: got %09b, want %09b", diff, full&^corner)
	}
}

func TestSetMungeDisjointSetsDontOverlap(t *testing.T) {
	a := word(1)       // single cell at (0,0)
	b := word(1 << 8) // single cell at (2,2), anchored at (0,0) too

	if got := setMunge(0, 0, a, 0, 0, b, false); got != 0 {
		t.Fatalf("disjoint sets should not intersect, got %09b", got)
	}
}

func TestSetStoreAddNormalizesAndDeduplicates(t *testing.T) {
	ss := newSetStore()

	if err := ss.add(3, 3, 1<<4, 1); err != nil { // centre bit only
		t.Fatalf("add: %v", err)
	}
	if ss.sets.Count() != 1 {
		t.Fatalf("expected 1 set, got %d", ss.sets.Count())
	}

	// Same cell, described via a different anchor+mask; should normalize
	// to the same key and not create a second entry.
	if err := ss.add(4, 4, 1, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if ss.sets.Count() != 1 {
		t.Fatalf("expected normalization to dedupe, got %d sets", ss.sets.Count())
	}
}

func TestSetStoreOverlap(t *testing.T) {
	ss := newSetStore()
	if err := ss.add(0, 0, 0x1FF, 3); err != nil {
		t.Fatalf("add: %v", err)
	}

	overlapping := ss.overlap(1, 1, 1)
	if len(overlapping) != 1 {
		t.Fatalf("expected 1 overlapping set, got %d", len(overlapping))
	}

	none := ss.overlap(10, 10, 1)
	if len(none) != 0 {
		t.Fatalf("expected no overlap far from the set, got %d", len(none))
	}
}

func TestSetStoreTodoIsFIFO(t *testing.T) {
	ss := newSetStore()
	ss.add(0, 0, 1, 1)
	ss.add(5, 5, 1, 1)

	first := ss.todo()
	second := ss.todo()
	third := ss.todo()

	if first == nil || second == nil {
		t.Fatalf("expected two sets on the todo list")
	}
	if first.x != 0 || first.y != 0 {
		t.Fatalf("expected FIFO order, first out was %d:%d", first.x, first.y)
	}
	if second.x != 5 || second.y != 5 {
		t.Fatalf("expected FIFO order, second out was %d:%d", second.x, second.y)
	}
	if third != nil {
		t.Fatalf("expected todo list to be drained")
	}
}

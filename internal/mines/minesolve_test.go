package mines

import "testing"

func TestFindDisjointUnionAllClearOutside(t *testing.T) {
	// Two disjoint sets covering 2 squares with 2 mines between them;
	// 3 squares remain outside with 0 mines left, so they must all be
	// clear.
	sets := []*set{
		{x: 0, y: 0, mask: 1, mines: 1},
		{x: 1, y: 0, mask: 1, mines: 1},
	}

	found, union, remaining := findDisjointUnion(sets, 2, 5)
	if !found {
		t.Fatalf("expected a disjoint union to be found")
	}
	if len(union) != 2 {
		t.Fatalf("expected both sets in the union, got %d", len(union))
	}
	if remaining != 0 {
		t.Fatalf("expected 0 mines left outside the union, got %d", remaining)
	}
}

func TestFindDisjointUnionOverlappingSetsExcluded(t *testing.T) {
	// The second set overlaps the first, so the search must skip it
	// rather than folding it into the union alongside the first.
	sets := []*set{
		{x: 0, y: 0, mask: 0x1FF, mines: 1},
		{x: 1, y: 1, mask: 1, mines: 1}, // overlaps the first set
	}

	found, union, _ := findDisjointUnion(sets, 2, 10)
	if !found {
		t.Fatalf("expected the non-overlapping subset to succeed on its own")
	}
	if len(union) != 1 || union[0] != sets[0] {
		t.Fatalf("expected the union to contain only the first set, got %v", union)
	}
}

func TestFindDisjointUnionNoCombinationWorks(t *testing.T) {
	sets := []*set{
		{x: 0, y: 0, mask: 1, mines: 1},
	}

	// 3 mines left among 5 squares, after accounting for the lone set's
	// 1 square and 1 mine: 2 mines among 4 remaining squares, which pins
	// down nothing.
	found, _, _ := findDisjointUnion(sets, 3, 5)
	if found {
		t.Fatalf("expected no disjoint union to pin down the remainder")
	}
}

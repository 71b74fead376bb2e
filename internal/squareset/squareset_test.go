package squareset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vancomm/minesweeper-server/internal/squareset"
)

func TestTranslate(t *testing.T) {
	s := squareset.New(5, 5, squareset.FullMask)

	got := s.Translate(6, 5)
	assert.Equal(t, 6, got.X)
	assert.Equal(t, 5, got.Y)
	assert.Equal(t, squareset.FullMask&^uint16(4|32|256), got.Mask) // left column dropped

	far := s.Translate(8, 5)
	assert.True(t, far.Empty())
}

func TestNormalizeIsIdempotentAndCanonical(t *testing.T) {
	a := squareset.New(5, 5, 1<<4) // single bit in the middle, anchor (5,5)
	b := squareset.New(4, 4, 1<<8) // same cell, described from a different anchor

	na := a.Normalize()
	nb := b.Normalize()

	assert.Equal(t, na, na.Normalize())
	assert.Equal(t, 0, squareset.Compare(na, nb))
}

func TestIntersectionAndDifference(t *testing.T) {
	a := squareset.New(0, 0, squareset.FullMask)
	b := squareset.New(1, 1, 1) // single cell at (1,1), which is a's centre cell (dx=1,dy=1)

	inter := a.Intersection(b)
	assert.Equal(t, 1, inter.Cardinality())

	diff := a.Difference(b)
	assert.Equal(t, a.Cardinality()-1, diff.Cardinality())
}

func TestCardinalityAndEmpty(t *testing.T) {
	full := squareset.New(0, 0, squareset.FullMask)
	assert.Equal(t, 9, full.Cardinality())
	assert.False(t, full.Empty())

	empty := squareset.New(0, 0, 0)
	assert.True(t, empty.Empty())
	assert.Equal(t, 0, empty.Cardinality())
}

func TestPoints(t *testing.T) {
	s := squareset.New(10, 20, 1|1<<8) // top-left and bottom-right corners
	pts := s.Points()

	assert.ElementsMatch(t, []struct{ X, Y int }{
		{10, 20},
		{12, 22},
	}, pts)
}

func TestCompareOrdersByXThenYThenMask(t *testing.T) {
	a := squareset.New(0, 0, 1)
	b := squareset.New(0, 1, 1)
	c := squareset.New(1, 0, 1)

	assert.Negative(t, squareset.Compare(a, b))
	assert.Negative(t, squareset.Compare(b, c))
	assert.Zero(t, squareset.Compare(a, a))
}

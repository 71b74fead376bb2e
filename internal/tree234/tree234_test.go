package tree234_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vancomm/minesweeper-server/internal/tree234"
)

type Item struct {
	Value int
}

func cmp(a, b *Item) int {
	if a.Value < b.Value {
		return -1
	}
	if a.Value > b.Value {
		return 1
	}
	return 0
}

func TestAdd(t *testing.T) {
	tree := tree234.NewTree234(cmp)
	for i := 1; i < 10; i++ {
		tree.Add(&Item{i})
	}

	assert.Equal(t, 9, tree.Count())
}

func TestAddDuplicateIsNoop(t *testing.T) {
	tree := tree234.NewTree234(cmp)
	first := &Item{5}
	tree.Add(first)
	got := tree.Add(&Item{5})

	assert.Same(t, first, got)
	assert.Equal(t, 1, tree.Count())
}

func TestIndex(t *testing.T) {
	var (
		empty *Item
		items []*Item
		tree  = tree234.NewTree234(cmp)
	)
	for i := 1; i < 10; i++ {
		item := &Item{i}
		items = append(items, item)
		tree.Add(item)
	}

	for i := range 15 {
		if i < len(items) {
			assert.Equal(t, items[i], tree.Index(i))
		} else {
			assert.Equal(t, empty, tree.Index(i))
		}
	}
}

func TestFindRelPos(t *testing.T) {
	var (
		items []*Item
		tree  = tree234.NewTree234(cmp)
	)
	for i := 1; i < 10; i++ {
		item := &Item{i}
		items = append(items, item)
		tree.Add(item)
	}

	_, index := tree.FindRelPos(items[1], tree234.Eq)
	assert.Equal(t, 1, index)

	_, index = tree.FindRelPos(items[7], tree234.Eq)
	assert.Equal(t, 7, index)

	el, _ := tree.FindRelPos(items[3], tree234.Lt)
	assert.Equal(t, items[2], el)

	el, _ = tree.FindRelPos(items[3], tree234.Gt)
	assert.Equal(t, items[4], el)
}

func TestDelete(t *testing.T) {
	var (
		empty *Item
		items []*Item
		tree  = tree234.NewTree234(cmp)
	)
	for i := 1; i < 10; i++ {
		item := &Item{i}
		items = append(items, item)
		tree.Add(item)
	}

	assert.Same(t, items[4], tree.Delete(items[4]))
	assert.Equal(t, 8, tree.Count())
	assert.Equal(t, empty, tree.Delete(items[4]))

	for i, item := range items {
		if i == 4 {
			continue
		}
		assert.NotNil(t, tree.Delete(item))
	}
	assert.Equal(t, 0, tree.Count())
}

func TestDeleteRebalancesAcrossManyNodes(t *testing.T) {
	tree := tree234.NewTree234(cmp)
	var items []*Item
	for i := range 200 {
		item := &Item{i}
		items = append(items, item)
		tree.Add(item)
	}

	for i := 0; i < 200; i += 2 {
		assert.NotNil(t, tree.Delete(items[i]))
	}
	assert.Equal(t, 100, tree.Count())

	for i := 1; i < 200; i += 2 {
		_, index := tree.FindRelPos(items[i], tree234.Eq)
		assert.Equal(t, items[i], tree.Index(index))
	}
}

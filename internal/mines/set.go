package mines

import (
	"fmt"

	"github.com/vancomm/minesweeper-server/internal/squareset"
	"github.com/vancomm/minesweeper-server/internal/tree234"
)

/*
We use a tree234 to store a large number of small localised
sets, each with a mine count. We also keep some of those sets
linked together into a to-do list.
*/
type set struct {
	x, y       int
	mask       word
	mines      int
	todo       bool
	next, prev *set
}

func (s set) String() string {
	return fmt.Sprintf("%d.%d.%d", s.y, s.x, s.mask)
}

func (s set) squareSet() squareset.SquareSet {
	return squareset.New(s.x, s.y, uint16(s.mask))
}

func setcmp(a, b *set) int {
	return squareset.Compare(a.squareSet(), b.squareSet())
}

type setstore struct {
	sets                 *tree234.Tree234[set]
	todo_head, todo_tail *set
}

func newSetStore() *setstore {
	return &setstore{
		sets:      tree234.NewTree234(setcmp),
		todo_head: nil, todo_tail: nil,
	}
}

func (ss *setstore) addTodo(s *set) {
	if s.todo {
		return /* already on it */
	}
	s.prev = ss.todo_tail
	if s.prev != nil {
		s.prev.next = s
	} else {
		ss.todo_head = s
	}
	ss.todo_tail = s
	s.next = nil
	s.todo = true
}

func (ss *setstore) add(x, y int, mask word, mines int) error {
	if mask == 0 { // assert mask != 0
		return AssertionError{"mask cannot be 0"}
	}

	/*
	 * Normalise so that x and y are genuinely the bounding
	 * rectangle.
	 */
	norm := squareset.New(x, y, uint16(mask)).Normalize()

	/*
	 * Create a set structure and add it to the tree.
	 */
	s := &set{
		x:     norm.X,
		y:     norm.Y,
		mask:  word(norm.Mask),
		mines: mines,
		todo:  false,
	}

	if existing := ss.sets.Add(s); existing != s {
		/*
		 * This set already existed! Free it and return. The first
		 * recorded mine count wins; a different count for the same
		 * set means the deductions are inconsistent.
		 */
		if existing.mines != mines {
			panic(AssertionError{"inconsistent mine count for an existing set"})
		}
		return nil
	}

	/*
	 * We've added a new set to the tree, so put it on the todo
	 * list.
	 */
	ss.addTodo(s)
	return nil
}

/*
 * Remove s from the todo list.
 */
func (ss *setstore) remove(s *set) {
	var (
		next = s.next
		prev = s.prev
	)

	if prev != nil {
		prev.next = next
	} else if s == ss.todo_head {
		ss.todo_head = next
	}

	if next != nil {
		next.prev = prev
	} else if s == ss.todo_tail {
		ss.todo_tail = prev
	}

	s.todo = false

	/*
	 * Remove s from the tree.
	 */
	ss.sets.Delete(s)
}

/*
Return a dynamically allocated list of all the sets which
overlap a provided input set.
*/
func (ss *setstore) overlap(x, y int, mask word) (ret []*set) {
	for xx := x - 3; xx < x+3; xx++ {
		for yy := y - 3; yy < y+3; yy++ {
			/*
			 * Find the first set with these top left coordinates.
			 */
			stmp := set{
				x:    xx,
				y:    yy,
				mask: 0,
			}
			if el, p := ss.sets.FindRelPos(&stmp, tree234.Ge); el != nil {
				for s := ss.sets.Index(p); s != nil &&
					s.x == xx && s.y == yy; s = ss.sets.Index(p) {
					/*
					 * This set potentially overlaps the input one.
					 * Compute the intersection to see if they
					 * really overlap, and add it to the list if
					 * so.
					 */
					if setMunge(x, y, mask, s.x, s.y, s.mask, false) != 0 {
						/*
						 * There's an overlap.
						 */
						ret = append(ret, s)
					}
					p++
				}
			}
		}
	}
	return
}

/*
Get an element from the head of the set todo list.
*/
func (ss *setstore) todo() *set {
	if ss.todo_head != nil {
		ret := ss.todo_head
		ss.todo_head = ret.next
		if ss.todo_head != nil {
			ss.todo_head.prev = nil
		} else {
			ss.todo_tail = nil
		}
		ret.next, ret.prev = nil, nil
		ret.todo = false
		return ret
	} else {
		return nil
	}
}

/*
Take two input sets, in the form (x,y,mask). Munge the first by
taking either its intersection with the second or its difference
with the second. Return the new mask part of the first set.
*/
func setMunge(x1, y1 int, mask1 word, x2, y2 int, mask2 word, diff bool) word {
	a := squareset.New(x1, y1, uint16(mask1))
	b := squareset.New(x2, y2, uint16(mask2))
	if diff {
		return word(a.Difference(b).Mask)
	}
	return word(a.Intersection(b).Mask)
}

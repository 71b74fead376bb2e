package mines

import (
	"fmt"
)

// mineCtx is the solver's private view of the true mine layout: the
// board the player can't see, plus enough bookkeeping to answer the
// solver's two questions ("is there a mine here" and "what would
// opening this square reveal").
type mineCtx struct {
	grid             []bool
	width, height    int
	sx, sy           int
	allowBigPerturbs bool
}

func (ctx mineCtx) MineAt(x, y int) bool {
	return ctx.grid[y*ctx.width+x]
}

func (ctx *mineCtx) Open(x, y int) CellState {
	if ctx.MineAt(x, y) {
		return Flagged /* *bang* */
	}
	n := 0
	for i := -1; i <= 1; i++ {
		if x+i < 0 || x+i >= ctx.width {
			continue
		}
		for j := -1; j <= 1; j++ {
			if y+j < 0 || y+j >= ctx.height {
				continue
			}
			if i == 0 && j == 0 {
				continue
			}
			if ctx.MineAt(x+i, y+j) {
				n++
			}
		}
	}
	return CellState(n)
}

func (ctx *mineCtx) PrintGrid() string {
	var b []byte
	for y := range ctx.height {
		for x := range ctx.width {
			switch {
			case x == ctx.sx && y == ctx.sy:
				b = append(b, 'S', ' ')
			case ctx.grid[y*ctx.width+x]:
				b = append(b, '*', ' ')
			default:
				b = append(b, '-', ' ')
			}
		}
		b = append(b, '\n')
	}
	return string(b)
}

func (ctx *mineCtx) String() string {
	return fmt.Sprintf("%dx%d(%d:%d)", ctx.width, ctx.height, ctx.sx, ctx.sy)
}

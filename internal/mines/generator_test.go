package mines

import (
	"math/rand/v2"
	"testing"
)

func TestSolvableGridGeneration(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	t.Parallel()

	tests := []struct {
		name   string
		params GameParams
	}{
		{
			name:   "9x9(10)",
			params: GameParams{Width: 9, Height: 9, MineCount: 10, Unique: true},
		},
		{
			name:   "9x9(35)",
			params: GameParams{Width: 9, Height: 9, MineCount: 35, Unique: true},
		},
		{
			name:   "16x16(40)",
			params: GameParams{Width: 16, Height: 16, MineCount: 40, Unique: true},
		},
		{
			name:   "16x16(99)",
			params: GameParams{Width: 16, Height: 16, MineCount: 99, Unique: true},
		},
		{
			name:   "30x16(99)",
			params: GameParams{Width: 30, Height: 16, MineCount: 99, Unique: true},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			r := rand.New(rand.NewPCG(1, 2))
			for sx := range test.params.Width {
				for sy := range test.params.Height {
					grid, err := test.params.newSolvableGrid(sx, sy, r)
					if err != nil {
						t.Fatalf("could not generate game %s @ %d:%d: %v", test.name, sx, sy, err)
					}
					if len(grid) != test.params.Width*test.params.Height {
						t.Fatalf("grid has wrong size: got %d", len(grid))
					}
					if grid[sy*test.params.Width+sx] {
						t.Fatalf("mine placed on starting square %d:%d", sx, sy)
					}
					count := 0
					for _, m := range grid {
						if m {
							count++
						}
					}
					if count != test.params.MineCount {
						t.Fatalf("wrong mine count: got %d, want %d", count, test.params.MineCount)
					}
				}
			}
		})
	}
}

func TestNewGameRejectsMineOnStart(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewPCG(7, 11))
	params := &GameParams{Width: 9, Height: 9, MineCount: 10, Unique: true}
	state, err := NewGame(params, 4, 4, r)
	if err != nil {
		t.Fatalf("NewGame failed: %v", err)
	}
	if state.Grid[4*params.Width+4] {
		t.Fatalf("starting square contains a mine")
	}
	if state.PlayerGrid[4*params.Width+4] < 0 {
		t.Fatalf("starting square was not opened")
	}
}

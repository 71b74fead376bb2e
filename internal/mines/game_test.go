package mines

import (
	"math/rand/v2"
	"testing"
)

func newTestGame(t *testing.T) *GameState {
	t.Helper()
	r := rand.New(rand.NewPCG(42, 7))
	params := &GameParams{Width: 9, Height: 9, MineCount: 10, Unique: true}
	state, err := NewGame(params, 4, 4, r)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return state
}

func TestGameStateValidatePoint(t *testing.T) {
	s := newTestGame(t)

	cases := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{8, 8, true},
		{-1, 0, false},
		{0, -1, false},
		{9, 0, false},
		{0, 9, false},
	}
	for _, c := range cases {
		if got := s.ValidatePoint(c.x, c.y); got != c.want {
			t.Errorf("ValidatePoint(%d, %d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestGameStateMineLookupMatchesGrid(t *testing.T) {
	s := newTestGame(t)
	for i, mine := range s.Grid {
		x, y := i%s.Width, i/s.Width
		if got := s.MineLookup(x, y); got != mine {
			t.Fatalf("MineLookup(%d, %d) = %v, want %v", x, y, got, mine)
		}
	}
}

func TestGameStateCountFlagged(t *testing.T) {
	s := newTestGame(t)
	if n := s.CountFlagged(); n != 0 {
		t.Fatalf("expected no flags on a fresh game, got %d", n)
	}

	for i, c := range s.PlayerGrid {
		if c == Unknown {
			x, y := i%s.Width, i/s.Width
			s.FlagCell(x, y)
			break
		}
	}
	if n := s.CountFlagged(); n != 1 {
		t.Fatalf("expected 1 flag after flagging a square, got %d", n)
	}
}

func TestGameStateCountCoveredDecreasesAsCellsOpen(t *testing.T) {
	s := newTestGame(t)
	before := s.CountCovered()

	for i, c := range s.PlayerGrid {
		if c == Unknown {
			x, y := i%s.Width, i/s.Width
			if s.Grid[i] {
				continue
			}
			s.OpenCell(x, y)
			break
		}
	}

	after := s.CountCovered()
	if after >= before {
		t.Fatalf("expected fewer covered cells after opening a safe square: before=%d after=%d", before, after)
	}
}

func TestForfeitRevealsAllMines(t *testing.T) {
	s := newTestGame(t)
	s.Forfeit()

	if !s.Dead {
		t.Fatalf("expected Forfeit to mark the game as dead")
	}
	for i, mine := range s.Grid {
		if mine && s.PlayerGrid[i] != UnflaggedMine && s.PlayerGrid[i] != CorrectlyFlagged {
			t.Fatalf("mine at %d was not revealed: got %v", i, s.PlayerGrid[i])
		}
	}
}

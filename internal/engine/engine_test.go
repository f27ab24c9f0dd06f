package engine

import (
	"testing"

	"github.com/hailam/chessrules/internal/board"
)

func TestSearchBasic(t *testing.T) {
	pos := board.NewPosition()
	eng := NewEngine()
	eng.SetDifficulty(Easy)

	move := eng.Search(pos)
	if move == board.NoMove {
		t.Error("Search returned NoMove for starting position")
	}
	if !pos.IsLegal(move.From(), move.To()) {
		t.Errorf("Search returned illegal move %v", move)
	}
	t.Logf("Best move: %s", move.String())
}

func TestOnInfo(t *testing.T) {
	pos := board.NewPosition()
	eng := NewEngine()

	var infos []SearchInfo
	eng.OnInfo = func(info SearchInfo) {
		infos = append(infos, info)
	}

	m, _, ok := eng.BestMove(pos, board.White, 1)
	if !ok {
		t.Fatal("no move found")
	}
	if len(infos) != 20 {
		t.Fatalf("got %d info callbacks, want one per root move (20)", len(infos))
	}
	last := infos[len(infos)-1]
	if last.Move != m {
		t.Errorf("last reported move %v, want %v", last.Move, m)
	}
	if last.Nodes == 0 || last.Depth != 1 {
		t.Errorf("last info = %+v", last)
	}
}

func TestDifficulty(t *testing.T) {
	eng := NewEngine()
	if eng.Difficulty() != Hard {
		t.Errorf("default difficulty = %v, want hard", eng.Difficulty())
	}
	if DifficultySettings[Hard].Depth != DefaultDepth {
		t.Errorf("hard depth = %d, want %d", DifficultySettings[Hard].Depth, DefaultDepth)
	}

	d, err := ParseDifficulty("easy")
	if err != nil || d != Easy {
		t.Errorf("ParseDifficulty(easy) = %v, %v", d, err)
	}
	if _, err := ParseDifficulty("impossible"); err == nil {
		t.Error("ParseDifficulty should reject unknown names")
	}
}

func TestEnginePerft(t *testing.T) {
	eng := NewEngine()
	if got := eng.Perft(board.NewPosition(), 3); got != 8902 {
		t.Errorf("Perft(3) = %d, want 8902", got)
	}
}

func TestScoreToString(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, "+0.00"},
		{125, "+1.25"},
		{-305, "-3.05"},
		{MateScore, "White mates"},
		{-MateScore, "Black mates"},
	}

	for _, tc := range tests {
		if got := ScoreToString(tc.score); got != tc.want {
			t.Errorf("ScoreToString(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

package ui

import (
	"slices"
	"testing"
	"time"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/storage"
)

func mustFEN(t *testing.T, fen string) *board.Position {
	t.Helper()
	pos, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return pos
}

func TestGeometry(t *testing.T) {
	tests := []struct {
		flipped bool
		sq      board.Square
		x, y    int
	}{
		{false, board.A1, 0, 560},
		{false, board.H8, 560, 0},
		{false, board.E4, 320, 320},
		{true, board.A1, 560, 0},
		{true, board.H8, 0, 560},
	}

	for _, tt := range tests {
		geo := geometry{squareSize: 80, flipped: tt.flipped}
		x, y := geo.squareToScreen(tt.sq)
		if x != tt.x || y != tt.y {
			t.Errorf("squareToScreen(%s, flipped=%v) = (%d, %d), want (%d, %d)", tt.sq, tt.flipped, x, y, tt.x, tt.y)
		}
		if got := geo.screenToSquare(x+40, y+40); got != tt.sq {
			t.Errorf("screenToSquare(center of %s, flipped=%v) = %s", tt.sq, tt.flipped, got)
		}
	}

	geo := geometry{squareSize: 80}
	for _, p := range [][2]int{{-1, 0}, {0, 640}, {640, 10}} {
		if got := geo.screenToSquare(p[0], p[1]); got != board.NoSquare {
			t.Errorf("screenToSquare(%d, %d) = %s, want NoSquare", p[0], p[1], got)
		}
	}
}

func TestCastlingTarget(t *testing.T) {
	pos := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	tests := []struct {
		from, to, want board.Square
	}{
		{board.E1, board.H1, board.G1},
		{board.E1, board.A1, board.C1},
		{board.E8, board.H8, board.G8},
		{board.E1, board.E2, board.E2},
		{board.E1, board.A8, board.A8},
		{board.A1, board.H1, board.H1},
	}
	for _, tt := range tests {
		if got := castlingTarget(pos, tt.from, tt.to); got != tt.want {
			t.Errorf("castlingTarget(%s, %s) = %s, want %s", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestReasonFor(t *testing.T) {
	start := mustFEN(t, board.StartFEN)
	pinned := mustFEN(t, "4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1")

	tests := []struct {
		name     string
		pos      *board.Position
		from, to board.Square
		want     InvalidMoveReason
	}{
		{"empty square", start, board.E4, board.E5, ReasonUnknown},
		{"opponent piece", start, board.E7, board.E5, ReasonNotYourTurn},
		{"own piece", start, board.A1, board.A2, ReasonBlockedByOwnPiece},
		{"bad geometry", start, board.E2, board.E5, ReasonInvalidPieceMovement},
		{"pinned", pinned, board.E2, board.D3, ReasonWouldLeaveKingInCheck},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reasonFor(tt.pos, tt.from, tt.to); got != tt.want {
				t.Errorf("reasonFor = %d (%s), want %d (%s)", got, got.Message(), tt.want, tt.want.Message())
			}
		})
	}
}

func TestPromotionPickerCells(t *testing.T) {
	geo := geometry{squareSize: 80}

	white := NewPromotionPicker(board.A8, board.White)
	want := [][2]int{{0, 0}, {0, 80}, {0, 160}, {0, 240}}
	if got := white.cells(geo); !slices.Equal(got, want) {
		t.Errorf("white cells = %v, want %v", got, want)
	}
	if got := white.choiceAt(geo, 10, 90); got != 1 {
		t.Errorf("choiceAt second cell = %d, want 1", got)
	}
	if got := white.choiceAt(geo, 100, 10); got != -1 {
		t.Errorf("choiceAt outside = %d, want -1", got)
	}

	// A black pawn on the first rank grows upward.
	black := NewPromotionPicker(board.H1, board.Black)
	want = [][2]int{{560, 560}, {560, 480}, {560, 400}, {560, 320}}
	if got := black.cells(geo); !slices.Equal(got, want) {
		t.Errorf("black cells = %v, want %v", got, want)
	}

	// Flipped, White's back rank is at the bottom of the screen.
	geo.flipped = true
	want = [][2]int{{560, 560}, {560, 480}, {560, 400}, {560, 320}}
	if got := white.cells(geo); !slices.Equal(got, want) {
		t.Errorf("flipped white cells = %v, want %v", got, want)
	}
	if promotionChoices[0] != board.Queen {
		t.Error("queen should be offered first")
	}
}

func TestToastManager(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tm := NewToastManager()
	tm.now = func() time.Time { return now }

	for _, m := range []string{"one", "two", "three", "four"} {
		tm.Show(m, ToastInfo, time.Second)
	}
	if got := tm.Messages(); !slices.Equal(got, []string{"two", "three", "four"}) {
		t.Errorf("Messages = %v", got)
	}

	now = now.Add(500 * time.Millisecond)
	tm.Show("late", ToastWarning, time.Second)
	now = now.Add(600 * time.Millisecond)
	tm.Update()
	if got := tm.Messages(); !slices.Equal(got, []string{"late"}) {
		t.Errorf("after expiry Messages = %v, want [late]", got)
	}
}

func TestShakeAnimation(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	am := NewAnimationManager()
	am.now = func() time.Time { return now }

	am.StartShake(board.E2)
	now = now.Add(50 * time.Millisecond)
	if dx, _ := am.ShakeOffset(board.E2); dx == 0 {
		t.Error("shaking piece should be displaced")
	}
	if dx, dy := am.ShakeOffset(board.E4); dx != 0 || dy != 0 {
		t.Errorf("other square moved by (%v, %v)", dx, dy)
	}

	now = now.Add(time.Second)
	am.Update()
	if len(am.shakes) != 0 {
		t.Errorf("%d shakes left after expiry", len(am.shakes))
	}
}

func TestTextInputEditing(t *testing.T) {
	ti := NewTextInput(0, 0, 100, 40, "name", 4)

	ti.insert([]rune("ab\x01c"))
	if ti.Value != "abc" {
		t.Errorf("Value = %q, want %q", ti.Value, "abc")
	}
	ti.insert([]rune("déf"))
	if ti.Value != "abcd" {
		t.Errorf("Value = %q, want length capped at 4", ti.Value)
	}

	ti.Value = "né"
	ti.backspace()
	if ti.Value != "n" {
		t.Errorf("backspace over a multi-byte rune left %q", ti.Value)
	}
	ti.backspace()
	ti.backspace()
	if ti.Value != "" {
		t.Errorf("Value = %q, want empty", ti.Value)
	}
}

func TestPlayerName(t *testing.T) {
	if got := playerName("  Ann "); got != "Ann" {
		t.Errorf("playerName = %q", got)
	}
	if got := playerName("   "); got != "Player" {
		t.Errorf("blank playerName = %q, want Player", got)
	}
}

func TestMoveRows(t *testing.T) {
	if got := moveRows(nil); len(got) != 0 {
		t.Errorf("moveRows(nil) = %v", got)
	}
	got := moveRows([]string{"e4", "e5", "Nf3"})
	want := []string{"1. e4 e5", "2. Nf3"}
	if !slices.Equal(got, want) {
		t.Errorf("moveRows = %v, want %v", got, want)
	}
}

func TestStatsLine(t *testing.T) {
	s := storage.NewGameStats()
	if got := statsLine(s); got != "Won 0  Lost 0  Drawn 0" {
		t.Errorf("empty stats = %q", got)
	}
	s.GamesPlayed, s.Wins, s.Losses, s.Draws = 4, 2, 1, 1
	if got := statsLine(s); got != "Won 2  Lost 1  Drawn 1  (50%)" {
		t.Errorf("stats = %q", got)
	}
}

func TestGameOverMessage(t *testing.T) {
	tests := []struct {
		status game.Status
		result string
		want   string
	}{
		{game.Checkmate, "1-0", "Checkmate! White wins"},
		{game.Checkmate, "0-1", "Checkmate! Black wins"},
		{game.Stalemate, "1/2-1/2", "Draw by stalemate"},
		{game.ThreefoldRepetition, "1/2-1/2", "Draw by threefold repetition"},
	}
	for _, tt := range tests {
		if got := gameOverMessage(tt.status, tt.result); got != tt.want {
			t.Errorf("gameOverMessage(%s, %s) = %q, want %q", tt.status, tt.result, got, tt.want)
		}
	}
}

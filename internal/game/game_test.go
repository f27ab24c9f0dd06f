package game

import (
	"reflect"
	"sort"
	"testing"

	"github.com/hailam/chessrules/internal/board"
)

func mustGame(t *testing.T, fen string) *Game {
	t.Helper()
	g, err := NewGameFromFEN(fen)
	if err != nil {
		t.Fatalf("NewGameFromFEN(%q): %v", fen, err)
	}
	return g
}

func play(t *testing.T, g *Game, moves ...string) {
	t.Helper()
	for _, m := range moves {
		if err := g.PlayUCI(m); err != nil {
			t.Fatalf("PlayUCI(%s): %v", m, err)
		}
	}
}

func TestIsLegalMove(t *testing.T) {
	g := NewGame()

	tests := []struct {
		name     string
		from, to int
		want     bool
	}{
		{"pawn double push", 12, 28, true},
		{"pawn triple push", 12, 36, false},
		{"knight jump", 6, 21, true},
		{"black piece on white turn", 52, 36, false},
		{"empty origin", 28, 36, false},
		{"out of range", -1, 70, false},
		{"same square", 12, 12, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.IsLegalMove(tt.from, tt.to); got != tt.want {
				t.Errorf("IsLegalMove(%d, %d) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestApplyMoveRejectsIllegal(t *testing.T) {
	g := NewGame()
	before := g.FEN()

	for _, mv := range [][2]int{{12, 36}, {52, 44}, {64, 0}, {0, 8}} {
		if g.ApplyMove(mv[0], mv[1]) {
			t.Errorf("ApplyMove(%d, %d) succeeded", mv[0], mv[1])
		}
	}
	if g.FEN() != before {
		t.Errorf("rejected moves changed the game: %s", g.FEN())
	}
	if len(g.History()) != 0 {
		t.Errorf("rejected moves were recorded: %v", g.History())
	}
}

func TestApplyMoveFlipsTurn(t *testing.T) {
	g := NewGame()
	if !g.ApplyMove(12, 28) {
		t.Fatal("e2e4 rejected")
	}
	if g.CurrentTurn() != board.Black {
		t.Errorf("turn = %v, want black", g.CurrentTurn())
	}
	cells := g.Cells()
	if cells[12] != 0 || cells[28] != 1 {
		t.Errorf("cells e2=%d e4=%d, want 0 and 1", cells[12], cells[28])
	}
}

func TestLegalTargets(t *testing.T) {
	g := NewGame()
	got := g.LegalTargets(1)
	sort.Ints(got)
	if !reflect.DeepEqual(got, []int{16, 18}) {
		t.Errorf("LegalTargets(b1) = %v, want [16 18]", got)
	}
	if got := g.LegalTargets(57); got != nil {
		t.Errorf("LegalTargets of a black piece on white's turn = %v", got)
	}
}

func TestPromotionFlow(t *testing.T) {
	g := mustGame(t, "4k3/P7/8/8/8/8/8/4K3 w - - 0 1")

	if !g.ApplyMove(48, 56) {
		t.Fatal("a7a8 rejected")
	}
	sq, pending := g.PendingPromotion()
	if !pending || sq != 56 {
		t.Fatalf("PendingPromotion = %d, %v; want 56, true", sq, pending)
	}
	if g.CurrentTurn() != board.White {
		t.Error("turn must not flip while a promotion is pending")
	}
	if g.IsLegalMove(4, 12) || g.ApplyMove(4, 12) {
		t.Error("moves must be refused while a promotion is pending")
	}
	if _, _, ok := g.BestMove(board.White, 1); ok {
		t.Error("BestMove must refuse while a promotion is pending")
	}

	if g.ResolvePromotion(56, board.King) {
		t.Error("promotion to king accepted")
	}
	if g.ResolvePromotion(55, board.Queen) {
		t.Error("promotion on the wrong square accepted")
	}
	if !g.ResolvePromotion(56, board.Knight) {
		t.Fatal("promotion to knight rejected")
	}

	if g.Cells()[56] != uint8(board.WhiteKnight) {
		t.Errorf("a8 = %d, want white knight", g.Cells()[56])
	}
	if g.CurrentTurn() != board.Black {
		t.Error("turn should flip once the promotion is resolved")
	}
	if _, pending := g.PendingPromotion(); pending {
		t.Error("promotion still pending")
	}
	if !reflect.DeepEqual(g.History(), []string{"a7a8n"}) {
		t.Errorf("History = %v", g.History())
	}
	if !reflect.DeepEqual(g.SANHistory(), []string{"a8=N"}) {
		t.Errorf("SANHistory = %v", g.SANHistory())
	}
}

func TestUndoCancelsPendingPromotion(t *testing.T) {
	g := mustGame(t, "4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	before := g.FEN()

	g.ApplyMove(48, 56)
	if !g.Undo() {
		t.Fatal("Undo refused")
	}
	if g.FEN() != before {
		t.Errorf("FEN after undo = %s, want %s", g.FEN(), before)
	}
	if g.Undo() {
		t.Error("Undo with no history should return false")
	}
}

func TestPlayUCIPromotion(t *testing.T) {
	g := mustGame(t, "7k/P7/8/8/8/8/8/K7 w - - 0 1")
	play(t, g, "a7a8q")

	if g.Cells()[56] != uint8(board.WhiteQueen) {
		t.Errorf("a8 = %d, want white queen", g.Cells()[56])
	}
	if !g.IsInCheck(board.Black) {
		t.Error("queen on a8 should check h8")
	}
	if !reflect.DeepEqual(g.SANHistory(), []string{"a8=Q+"}) {
		t.Errorf("SANHistory = %v", g.SANHistory())
	}
}

func TestUndo(t *testing.T) {
	g := NewGame()
	start := g.FEN()

	play(t, g, "e2e4", "e7e5", "g1f3")
	if !g.Undo() || !g.Undo() || !g.Undo() {
		t.Fatal("Undo refused")
	}
	if g.FEN() != start {
		t.Errorf("FEN after undoing all moves = %s", g.FEN())
	}
	if len(g.History()) != 0 {
		t.Errorf("History = %v", g.History())
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name   string
		fen    string
		moves  []string
		status Status
		result string
	}{
		{
			name:   "ongoing",
			fen:    board.StartFEN,
			status: Ongoing,
			result: "*",
		},
		{
			name:   "fool's mate",
			fen:    board.StartFEN,
			moves:  []string{"f2f3", "e7e5", "g2g4", "d8h4"},
			status: Checkmate,
			result: "0-1",
		},
		{
			name:   "stalemate",
			fen:    "8/8/8/8/8/1q6/2k5/K7 w - - 0 1",
			status: Stalemate,
			result: "1/2-1/2",
		},
		{
			name:   "bare kings",
			fen:    "8/8/8/8/8/8/8/K6k w - - 0 1",
			status: InsufficientMaterial,
			result: "1/2-1/2",
		},
		{
			name:   "fifty moves",
			fen:    "8/8/8/8/8/8/R7/K6k w - - 100 80",
			status: FiftyMoveRule,
			result: "1/2-1/2",
		},
		{
			name:   "threefold",
			fen:    board.StartFEN,
			moves:  []string{"g1f3", "g8f6", "f3g1", "f6g8", "g1f3", "g8f6", "f3g1", "f6g8"},
			status: ThreefoldRepetition,
			result: "1/2-1/2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGame(t, tt.fen)
			play(t, g, tt.moves...)
			if got := g.Status(); got != tt.status {
				t.Errorf("Status = %v, want %v", got, tt.status)
			}
			if got := g.Result(); got != tt.result {
				t.Errorf("Result = %s, want %s", got, tt.result)
			}
		})
	}
}

func TestFoolsMateDetails(t *testing.T) {
	g := NewGame()
	play(t, g, "f2f3", "e7e5", "g2g4", "d8h4")

	if !g.IsInCheck(board.White) || !g.IsCheckmate(board.White) {
		t.Error("white should be checkmated")
	}
	if g.IsStalemate() {
		t.Error("checkmate reported as stalemate")
	}
	want := []string{"f3", "e5", "g4", "Qh4#"}
	if got := g.SANHistory(); !reflect.DeepEqual(got, want) {
		t.Errorf("SANHistory = %v, want %v", got, want)
	}
	if _, _, ok := g.BestMove(board.White, 2); ok {
		t.Error("BestMove should report no move for a mated side")
	}
}

func TestBestMove(t *testing.T) {
	g := mustGame(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	before := g.FEN()

	from, to, ok := g.BestMove(board.White, 2)
	if !ok {
		t.Fatal("BestMove found nothing")
	}
	if from != 0 || to != 56 {
		t.Errorf("BestMove = %d-%d, want 0-56 (Ra8#)", from, to)
	}
	if g.FEN() != before {
		t.Errorf("BestMove changed the game: %s", g.FEN())
	}
}

func TestBestMoveWrongSide(t *testing.T) {
	// Black is in check; a search for White would take the king.
	g := mustGame(t, "4k3/8/8/8/8/8/8/4RK2 b - - 0 1")

	if _, _, ok := g.BestMove(board.White, 1); ok {
		t.Error("BestMove searched for the side not on move")
	}
	if _, _, ok := g.BestMove(board.Black, 1); !ok {
		t.Error("BestMove found nothing for the side on move")
	}
}

func TestReplay(t *testing.T) {
	g, err := Replay(board.StartFEN, []string{"e2e4", "e7e5", "g1f3"})
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	want := "rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2"
	if g.FEN() != want {
		t.Errorf("FEN = %s, want %s", g.FEN(), want)
	}
	if g.LastMove().String() != "g1f3" {
		t.Errorf("LastMove = %s", g.LastMove())
	}

	start, moves := g.Record()
	again, err := Replay(start, moves)
	if err != nil {
		t.Fatalf("Replay of Record: %v", err)
	}
	if again.FEN() != g.FEN() {
		t.Errorf("replayed FEN = %s, want %s", again.FEN(), g.FEN())
	}

	if _, err := Replay(board.StartFEN, []string{"e2e4", "e2e4"}); err == nil {
		t.Error("Replay should fail on an illegal move")
	}
	if _, err := Replay("not a fen", nil); err == nil {
		t.Error("Replay should fail on a bad FEN")
	}
}

package board

import (
	"sort"
	"strings"
	"testing"

	"github.com/notnil/chess"
)

func referenceMoves(t *testing.T, fen string) []string {
	t.Helper()
	opt, err := chess.FEN(fen)
	if err != nil {
		t.Fatalf("reference FEN %q: %v", fen, err)
	}
	game := chess.NewGame(opt)
	var out []string
	for _, m := range game.ValidMoves() {
		out = append(out, strings.ToLower(m.String()))
	}
	sort.Strings(out)
	return out
}

func ourMoves(pos *Position) []string {
	var out []string
	for _, m := range pos.GenerateLegalMoves(pos.SideToMove).Slice() {
		out = append(out, m.String())
	}
	sort.Strings(out)
	return out
}

// TestLegalMovesMatchReference walks a deterministic line from several
// positions and compares the legal move set with an independent library at
// every ply.
func TestLegalMovesMatchReference(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}

	const plies = 24

	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			pos := mustParse(t, fen)
			for ply := 0; ply < plies; ply++ {
				cur := pos.ToFEN()
				got := ourMoves(pos)
				want := referenceMoves(t, cur)
				if strings.Join(got, " ") != strings.Join(want, " ") {
					t.Fatalf("ply %d, %s:\n got %v\nwant %v", ply, cur, got, want)
				}
				if len(got) == 0 {
					return
				}
				m := pos.GenerateLegalMoves(pos.SideToMove).Get((ply*7 + 3) % len(got))
				pos.MakeMove(m)
			}
		})
	}
}

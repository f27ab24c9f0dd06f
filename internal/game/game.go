// Package game is the host-facing facade over the rules engine and the
// computer player. Squares cross this boundary as 0-63 indices (a1 = 0,
// h8 = 63) and boards as the 0-12 piece encoding.
package game

import (
	"fmt"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/engine"
)

// Status describes whether the game is still running and why it ended.
type Status int

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
	InsufficientMaterial
	FiftyMoveRule
	ThreefoldRepetition
)

// String returns a readable status.
func (s Status) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case InsufficientMaterial:
		return "insufficient material"
	case FiftyMoveRule:
		return "fifty-move rule"
	case ThreefoldRepetition:
		return "threefold repetition"
	default:
		return "unknown"
	}
}

// IsOver returns true for every status except Ongoing.
func (s Status) IsOver() bool {
	return s != Ongoing
}

// Game owns one position and its history. A Game is not safe for
// concurrent use.
type Game struct {
	pos      *board.Position
	startFEN string

	moves     []board.Move
	snapshots []board.Position // position before each entry of moves
	hashes    []uint64         // hash after every completed move, start included

	// pending is the staged promotion awaiting ResolvePromotion, with the
	// snapshot taken before it.
	pending         board.Move
	pendingSnapshot board.Position

	eng *engine.Engine
}

// NewGame starts a game from the standard starting position.
func NewGame() *Game {
	g, err := NewGameFromFEN(board.StartFEN)
	if err != nil {
		panic(err)
	}
	return g
}

// NewGameFromFEN starts a game from a FEN position.
func NewGameFromFEN(fen string) (*Game, error) {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return &Game{
		pos:      pos,
		startFEN: pos.ToFEN(),
		hashes:   []uint64{pos.Hash()},
		pending:  board.NoMove,
		eng:      engine.NewEngine(),
	}, nil
}

// Engine returns the engine used by BestMove, for setting callbacks and
// difficulty.
func (g *Game) Engine() *engine.Engine {
	return g.eng
}

// Position returns the live position. Callers must not modify it.
func (g *Game) Position() *board.Position {
	return g.pos
}

// StartFEN returns the position the game started from.
func (g *Game) StartFEN() string {
	return g.startFEN
}

// FEN returns the current position in FEN.
func (g *Game) FEN() string {
	return g.pos.ToFEN()
}

// CurrentTurn returns the side to move.
func (g *Game) CurrentTurn() board.Color {
	return g.pos.SideToMove
}

// Cells returns the board in the external piece encoding.
func (g *Game) Cells() [64]uint8 {
	return g.pos.Codes()
}

func squares(from, to int) (board.Square, board.Square, bool) {
	f, ok1 := board.SquareFromIndex(from)
	t, ok2 := board.SquareFromIndex(to)
	return f, t, ok1 && ok2
}

// IsLegalMove reports whether the side to move may play from-to.
func (g *Game) IsLegalMove(from, to int) bool {
	f, t, ok := squares(from, to)
	if !ok || g.pos.PendingPromotion != board.NoSquare {
		return false
	}
	if g.pos.PieceAt(f).Color() != g.pos.SideToMove {
		return false
	}
	return g.pos.IsLegal(f, t)
}

// LegalTargets returns the destination indices of the legal moves of the
// piece on from, for highlighting.
func (g *Game) LegalTargets(from int) []int {
	f, ok := board.SquareFromIndex(from)
	if !ok || g.pos.PendingPromotion != board.NoSquare || g.pos.PieceAt(f).Color() != g.pos.SideToMove {
		return nil
	}
	var out []int
	seen := make(map[board.Square]bool)
	for _, m := range g.pos.LegalMovesFrom(f).Slice() {
		if !seen[m.To()] {
			seen[m.To()] = true
			out = append(out, int(m.To()))
		}
	}
	return out
}

// ApplyMove plays from-to for the side to move. A pawn reaching the last
// rank is staged until ResolvePromotion. It returns false and leaves the
// game unchanged on any illegal input.
func (g *Game) ApplyMove(from, to int) bool {
	f, t, ok := squares(from, to)
	if !ok {
		return false
	}

	before := *g.pos
	m, _, ok := g.pos.ApplyMove(f, t)
	if !ok {
		return false
	}

	if g.pos.PendingPromotion != board.NoSquare {
		g.pending = m
		g.pendingSnapshot = before
		return true
	}
	g.record(m, before)
	return true
}

// PendingPromotion returns the square of a pawn waiting for its promotion
// piece.
func (g *Game) PendingPromotion() (int, bool) {
	if g.pos.PendingPromotion == board.NoSquare {
		return 0, false
	}
	return int(g.pos.PendingPromotion), true
}

// ResolvePromotion completes a staged promotion. It returns false and
// changes nothing for the wrong square or a kind other than knight,
// bishop, rook or queen.
func (g *Game) ResolvePromotion(square int, kind board.PieceType) bool {
	sq, ok := board.SquareFromIndex(square)
	if !ok || !g.pos.ResolvePromotion(sq, kind) {
		return false
	}
	g.record(g.pending.WithPromotion(kind), g.pendingSnapshot)
	g.pending = board.NoMove
	return true
}

// PlayMove applies a complete move, resolving its promotion if it has one.
func (g *Game) PlayMove(m board.Move) bool {
	if !g.ApplyMove(int(m.From()), int(m.To())) {
		return false
	}
	if sq, pending := g.PendingPromotion(); pending {
		promo := m.Promotion()
		if promo == board.NoPieceType {
			promo = board.Queen
		}
		if !g.ResolvePromotion(sq, promo) {
			g.Undo()
			return false
		}
	}
	return true
}

// PlayUCI applies a move given in UCI notation (e.g. "e2e4", "e7e8q").
func (g *Game) PlayUCI(s string) error {
	if g.pos.PendingPromotion != board.NoSquare {
		return fmt.Errorf("promotion pending on %s", g.pos.PendingPromotion)
	}
	m, err := board.ParseMove(s, g.pos)
	if err != nil {
		return err
	}
	if !g.PlayMove(m) {
		return fmt.Errorf("illegal move: %s", s)
	}
	return nil
}

func (g *Game) record(m board.Move, before board.Position) {
	g.moves = append(g.moves, m)
	g.snapshots = append(g.snapshots, before)
	g.hashes = append(g.hashes, g.pos.Hash())
}

// Undo takes back the last move, or cancels a staged promotion. It returns
// false when there is nothing to undo.
func (g *Game) Undo() bool {
	if g.pos.PendingPromotion != board.NoSquare {
		*g.pos = g.pendingSnapshot
		g.pending = board.NoMove
		return true
	}
	n := len(g.moves)
	if n == 0 {
		return false
	}
	*g.pos = g.snapshots[n-1]
	g.moves = g.moves[:n-1]
	g.snapshots = g.snapshots[:n-1]
	g.hashes = g.hashes[:len(g.hashes)-1]
	return true
}

// Moves returns the completed moves.
func (g *Game) Moves() []board.Move {
	out := make([]board.Move, len(g.moves))
	copy(out, g.moves)
	return out
}

// History returns the completed moves in UCI notation.
func (g *Game) History() []string {
	out := make([]string, len(g.moves))
	for i, m := range g.moves {
		out[i] = m.String()
	}
	return out
}

// SANHistory returns the completed moves in Standard Algebraic Notation.
func (g *Game) SANHistory() []string {
	if len(g.moves) == 0 {
		return nil
	}
	return board.MovesToSAN(&g.snapshots[0], g.moves)
}

// LastMove returns the last completed move, or NoMove.
func (g *Game) LastMove() board.Move {
	if len(g.moves) == 0 {
		return board.NoMove
	}
	return g.moves[len(g.moves)-1]
}

// IsInCheck returns true if c's king is attacked.
func (g *Game) IsInCheck(c board.Color) bool {
	return g.pos.IsInCheck(c)
}

// IsCheckmate returns true if c is checkmated.
func (g *Game) IsCheckmate(c board.Color) bool {
	return g.pos.IsCheckmate(c)
}

// IsStalemate returns true if the side to move is stalemated.
func (g *Game) IsStalemate() bool {
	return g.pos.IsStalemate()
}

// IsInsufficientMaterial returns true if neither side can mate.
func (g *Game) IsInsufficientMaterial() bool {
	return g.pos.IsInsufficientMaterial()
}

// IsThreefoldRepetition returns true if the current position has occurred
// three times with the same side to move, castling rights and en passant
// square.
func (g *Game) IsThreefoldRepetition() bool {
	cur := g.hashes[len(g.hashes)-1]
	n := 0
	for _, h := range g.hashes {
		if h == cur {
			n++
		}
	}
	return n >= 3
}

// Status returns the state of the game. Checkmate and stalemate take
// precedence over the draw rules.
func (g *Game) Status() Status {
	if g.pos.PendingPromotion != board.NoSquare {
		return Ongoing
	}
	us := g.pos.SideToMove
	switch {
	case g.pos.IsCheckmate(us):
		return Checkmate
	case g.pos.IsStalemate():
		return Stalemate
	case g.pos.IsInsufficientMaterial():
		return InsufficientMaterial
	case g.pos.IsFiftyMoveDraw():
		return FiftyMoveRule
	case g.IsThreefoldRepetition():
		return ThreefoldRepetition
	}
	return Ongoing
}

// Result returns the PGN result string for the current status.
func (g *Game) Result() string {
	switch g.Status() {
	case Ongoing:
		return "*"
	case Checkmate:
		if g.pos.SideToMove == board.White {
			return "0-1"
		}
		return "1-0"
	default:
		return "1/2-1/2"
	}
}

// BestMove returns the computer's choice for c searched depth plies below
// each root move. The search runs on a copy, so the game is never touched.
// ok is false when c is not on move, has no legal move, or a promotion
// is pending.
func (g *Game) BestMove(c board.Color, depth int) (from, to int, ok bool) {
	m, ok := g.BestMoveFull(c, depth)
	if !ok {
		return 0, 0, false
	}
	return int(m.From()), int(m.To()), true
}

// BestMoveFull is BestMove returning the complete move, including the
// promotion piece.
func (g *Game) BestMoveFull(c board.Color, depth int) (board.Move, bool) {
	if g.pos.PendingPromotion != board.NoSquare || c != g.pos.SideToMove {
		return board.NoMove, false
	}
	m, _, ok := g.eng.BestMove(g.pos.Copy(), c, depth)
	return m, ok
}

// Record returns what Replay needs to rebuild the game.
func (g *Game) Record() (startFEN string, moves []string) {
	return g.startFEN, g.History()
}

// Replay rebuilds a game from its starting FEN and UCI moves.
func Replay(startFEN string, moves []string) (*Game, error) {
	g, err := NewGameFromFEN(startFEN)
	if err != nil {
		return nil, err
	}
	for i, s := range moves {
		if err := g.PlayUCI(s); err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
	}
	return g, nil
}

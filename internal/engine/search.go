package engine

import (
	"github.com/hailam/chessrules/internal/board"
)

// Search constants
const (
	// MateScore is returned, signed, when a side has no legal move and is
	// in check. It does not depend on the distance to mate.
	MateScore = 1000000
	// Infinity bounds the alpha-beta window and exceeds any reachable score.
	Infinity = MateScore + 1
)

// Searcher performs a fixed-depth minimax search with alpha-beta pruning
// over one position. The position is mutated during the search and is
// restored exactly before every call returns.
type Searcher struct {
	pos   *board.Position
	nodes uint64
}

// NewSearcher creates a searcher over pos.
func NewSearcher(pos *board.Position) *Searcher {
	return &Searcher{pos: pos}
}

// Position returns the position being searched.
func (s *Searcher) Position() *board.Position {
	return s.pos
}

// Reset clears the node counter.
func (s *Searcher) Reset() {
	s.nodes = 0
}

// Nodes returns the number of nodes visited since the last Reset.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

func colorFor(maximizing bool) board.Color {
	if maximizing {
		return board.White
	}
	return board.Black
}

// Minimax returns the score of the position searched depth plies deep.
// White is the maximizing side. The cutoff is fail-hard: the loop stops as
// soon as beta <= alpha.
func (s *Searcher) Minimax(depth, alpha, beta int, maximizing bool) int {
	s.nodes++
	if depth == 0 {
		return Evaluate(s.pos)
	}

	us := colorFor(maximizing)
	moves := s.pos.GenerateLegalMoves(us)
	if moves.Len() == 0 {
		if s.pos.IsInCheck(us) {
			if maximizing {
				return -MateScore
			}
			return MateScore
		}
		return 0
	}

	OrderMoves(s.pos, moves)

	bestScore := Infinity
	if maximizing {
		bestScore = -Infinity
	}

	for _, m := range moves.Slice() {
		undo := s.pos.MakeMove(m)
		score := s.Minimax(depth-1, alpha, beta, !maximizing)
		s.pos.UnmakeMove(m, undo)

		if maximizing {
			bestScore = max(bestScore, score)
			alpha = max(alpha, score)
		} else {
			bestScore = min(bestScore, score)
			beta = min(beta, score)
		}

		if beta <= alpha {
			break
		}
	}

	return bestScore
}

// RootResult is the outcome of scoring one root move.
type RootResult struct {
	Move  board.Move
	Score int
}

// FindBestMove returns the best move for c, searching depth plies below
// each root move. Root moves are visited in generation order and only a
// strict improvement replaces the current best, so ties go to the earliest
// move. When no move beats the mate sentinel the first legal move is
// returned. ok is false only when c has no legal move.
//
// If onRoot is not nil it is called after each root move is scored.
func (s *Searcher) FindBestMove(c board.Color, depth int, onRoot func(RootResult)) (best board.Move, bestScore int, ok bool) {
	moves := s.pos.GenerateLegalMoves(c)
	if moves.Len() == 0 {
		return board.NoMove, 0, false
	}

	white := c == board.White
	bestScore = MateScore
	if white {
		bestScore = -MateScore
	}
	best = board.NoMove
	fallback := moves.Get(0)

	for _, m := range moves.Slice() {
		undo := s.pos.MakeMove(m)
		score := s.Minimax(depth, -Infinity, Infinity, !white)
		s.pos.UnmakeMove(m, undo)

		if onRoot != nil {
			onRoot(RootResult{Move: m, Score: score})
		}

		if (white && score > bestScore) || (!white && score < bestScore) {
			bestScore = score
			best = m
		}
	}

	if best == board.NoMove {
		best = fallback
	}
	return best, bestScore, true
}

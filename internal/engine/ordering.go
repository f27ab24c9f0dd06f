package engine

import (
	"sort"

	"github.com/hailam/chessrules/internal/board"
)

// scoreMove returns the ordering score for a single move. Higher scores
// are searched first.
func scoreMove(pos *board.Position, m board.Move) int {
	from, to := m.From(), m.To()
	mover := pos.PieceAt(from)

	var score int
	switch {
	case m.IsCapture():
		victim := board.Pawn
		if !m.IsEnPassant() {
			victim = pos.PieceAt(to).Type()
		}
		score = board.PieceValue[victim] - board.PieceValue[mover.Type()]
	default:
		score = PieceSquareBonus(mover, to) - PieceSquareBonus(mover, from)
	}

	if promo := m.Promotion(); promo != board.NoPieceType {
		score += board.PieceValue[promo] - PawnValue
	}
	return score
}

// ScoreMoves assigns an ordering score to every move in the list.
func ScoreMoves(pos *board.Position, moves *board.MoveList) []int {
	scores := make([]int, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		scores[i] = scoreMove(pos, moves.Get(i))
	}
	return scores
}

// moveSorter sorts moves and their scores together.
type moveSorter struct {
	moves  *board.MoveList
	scores []int
}

func (s moveSorter) Len() int           { return len(s.scores) }
func (s moveSorter) Less(i, j int) bool { return s.scores[i] > s.scores[j] }
func (s moveSorter) Swap(i, j int) {
	s.moves.Swap(i, j)
	s.scores[i], s.scores[j] = s.scores[j], s.scores[i]
}

// SortMoves sorts moves by score, descending. Equal scores keep their
// generation order.
func SortMoves(moves *board.MoveList, scores []int) {
	sort.Stable(moveSorter{moves: moves, scores: scores})
}

// OrderMoves scores and sorts the moves in place.
func OrderMoves(pos *board.Position, moves *board.MoveList) {
	SortMoves(moves, ScoreMoves(pos, moves))
}

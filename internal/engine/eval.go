// Package engine implements the computer player: a material plus
// piece-square evaluator and a fixed-depth minimax search with alpha-beta
// pruning.
package engine

import (
	"github.com/hailam/chessrules/internal/board"
)

// Evaluation constants, shared with board.Position.Material.
const (
	PawnValue   = board.PawnValue
	KnightValue = board.KnightValue
	BishopValue = board.BishopValue
	RookValue   = board.RookValue
	QueenValue  = board.QueenValue
	KingValue   = board.KingValue
)

// Piece-square tables. Each is laid out as seen from White's side of the
// board with rank 8 in the first row, so index 0 is a8 and index 63 is h1.

var pawnPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	50, 50, 50, 50, 50, 50, 50, 50,
	10, 10, 20, 30, 30, 20, 10, 10,
	5, 5, 10, 25, 25, 10, 5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, -5, -10, 0, 0, -10, -5, 5,
	5, 10, 10, -20, -20, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightPST = [64]int{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var bishopPST = [64]int{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var rookPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, 10, 10, 10, 10, 5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	0, 0, 0, 5, 5, 0, 0, 0,
}

var queenPST = [64]int{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-5, 0, 5, 5, 5, 5, 0, -5,
	0, 0, 5, 5, 5, 5, 0, -5,
	-10, 5, 5, 5, 5, 5, 0, -10,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

// King PST - encourages staying castled
var kingPST = [64]int{
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	20, 20, 0, 0, 0, 0, 20, 20,
	20, 30, 10, 0, 0, 10, 30, 20,
}

// All PSTs combined for easy lookup
var psts = [...]*[64]int{
	&pawnPST, &knightPST, &bishopPST, &rookPST, &queenPST, &kingPST,
}

// PieceSquareBonus returns the positional bonus of piece standing on sq,
// from the point of view of the piece's own side.
func PieceSquareBonus(piece board.Piece, sq board.Square) int {
	pt := piece.Type()
	if pt == board.NoPieceType {
		return 0
	}
	// Tables start at a8, so White reads the vertically mirrored square.
	if piece.Color() == board.White {
		sq = sq.Mirror()
	}
	return psts[pt][sq]
}

// Evaluate returns the static evaluation of the position from White's
// perspective: material plus piece-square bonuses for White minus the same
// for Black.
func Evaluate(pos *board.Position) int {
	score := 0
	for sq := board.A1; sq <= board.H8; sq++ {
		piece := pos.Cells[sq]
		if piece == board.NoPiece {
			continue
		}
		v := board.PieceValue[piece.Type()] + PieceSquareBonus(piece, sq)
		if piece.Color() == board.White {
			score += v
		} else {
			score -= v
		}
	}
	return score
}

// EvaluateMaterial returns just the material balance from White's
// perspective, kings excluded.
func EvaluateMaterial(pos *board.Position) int {
	return pos.Material()
}

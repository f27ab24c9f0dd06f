package board

import (
	"fmt"
	"strings"
)

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	var sb strings.Builder
	for i, c := range "KQkq" {
		if cr&(1<<i) != 0 {
			sb.WriteRune(c)
		}
	}
	return sb.String()
}

// castleRight returns the single right for a color and side.
func castleRight(c Color, kingSide bool) CastlingRights {
	switch {
	case c == White && kingSide:
		return WhiteKingSideCastle
	case c == White:
		return WhiteQueenSideCastle
	case kingSide:
		return BlackKingSideCastle
	default:
		return BlackQueenSideCastle
	}
}

// CanCastle returns true if the given side still holds the right.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	return cr&castleRight(c, kingSide) != 0
}

// Position is the complete game state on a 64-cell mailbox.
// A Position is not safe for concurrent use.
type Position struct {
	Cells [64]Piece

	SideToMove     Color
	CastlingRights CastlingRights
	EnPassant      Square // NoSquare if none
	// PendingPromotion is the square of a pawn waiting for its promotion
	// piece. The side to move does not flip until it is resolved.
	PendingPromotion Square

	HalfMoveClock  int
	FullMoveNumber int
}

// NewPosition creates the starting position.
func NewPosition() *Position {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return pos
}

// EmptyPosition returns a position with no pieces and White to move.
func EmptyPosition() *Position {
	return &Position{
		EnPassant:        NoSquare,
		PendingPromotion: NoSquare,
		FullMoveNumber:   1,
	}
}

// Copy creates a deep copy of the position.
func (p *Position) Copy() *Position {
	newPos := *p
	return &newPos
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	if sq >= NoSquare {
		return NoPiece
	}
	return p.Cells[sq]
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.Cells[sq] == NoPiece
}

// SetPiece places a piece on a square, replacing whatever was there.
func (p *Position) SetPiece(piece Piece, sq Square) {
	p.Cells[sq] = piece
}

// KingSquare returns the square of c's king. A position without that king
// is corrupt and KingSquare panics.
func (p *Position) KingSquare(c Color) Square {
	king := NewPiece(King, c)
	for sq := A1; sq <= H8; sq++ {
		if p.Cells[sq] == king {
			return sq
		}
	}
	panic(fmt.Sprintf("board: no %v king on the board", c))
}

// Count returns how many pieces of the given kind and color are on the board.
func (p *Position) Count(pt PieceType, c Color) int {
	piece := NewPiece(pt, c)
	n := 0
	for _, cell := range p.Cells {
		if cell == piece {
			n++
		}
	}
	return n
}

// Codes returns the board in the external piece encoding.
func (p *Position) Codes() [64]uint8 {
	var out [64]uint8
	for i, cell := range p.Cells {
		out[i] = cell.Code()
	}
	return out
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			piece := p.Cells[NewSquare(file, rank)]
			if piece == NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(piece.String() + " ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", p.SideToMove)
	fmt.Fprintf(&sb, "Castling: %s\n", p.CastlingRights)
	fmt.Fprintf(&sb, "En passant: %s\n", p.EnPassant)
	if p.PendingPromotion != NoSquare {
		fmt.Fprintf(&sb, "Pending promotion: %s\n", p.PendingPromotion)
	}
	fmt.Fprintf(&sb, "Half-move clock: %d\n", p.HalfMoveClock)
	fmt.Fprintf(&sb, "Full move: %d\n", p.FullMoveNumber)
	return sb.String()
}

// Validate checks if the position is one the rules engine can work with.
func (p *Position) Validate() error {
	if n := p.Count(King, White); n != 1 {
		return fmt.Errorf("white must have exactly one king, found %d", n)
	}
	if n := p.Count(King, Black); n != 1 {
		return fmt.Errorf("black must have exactly one king, found %d", n)
	}

	for file := 0; file < 8; file++ {
		for _, rank := range []int{0, 7} {
			if p.Cells[NewSquare(file, rank)].Type() == Pawn {
				return fmt.Errorf("pawns cannot be on rank 1 or 8")
			}
		}
	}

	if p.EnPassant != NoSquare {
		if err := p.validateEnPassant(); err != nil {
			return err
		}
	}

	if p.IsInCheck(p.SideToMove.Other()) {
		return fmt.Errorf("side not to move is in check")
	}

	return nil
}

// validateEnPassant checks that the en passant target is the empty square
// a double-stepped enemy pawn just crossed.
func (p *Position) validateEnPassant() error {
	ep := p.EnPassant
	if !ep.IsValid() {
		return fmt.Errorf("invalid en passant square %d", ep)
	}
	them := p.SideToMove.Other()
	if ep.RelativeRank(p.SideToMove) != 5 {
		return fmt.Errorf("en passant square %s is on the wrong rank", ep)
	}
	// step is the direction the enemy pawn moved in.
	step := 1
	if them == Black {
		step = -1
	}
	pawnSq, _ := ep.offset(0, step)
	originSq, _ := ep.offset(0, -step)
	if p.Cells[ep] != NoPiece || p.Cells[originSq] != NoPiece {
		return fmt.Errorf("en passant square %s is not behind a double-stepped pawn", ep)
	}
	if p.Cells[pawnSq] != NewPiece(Pawn, them) {
		return fmt.Errorf("no pawn to capture en passant on %s", pawnSq)
	}
	return nil
}

// Material returns the material balance without kings (positive favors white).
func (p *Position) Material() int {
	score := 0
	for _, cell := range p.Cells {
		if cell == NoPiece || cell.Type() == King {
			continue
		}
		if cell.Color() == White {
			score += cell.Value()
		} else {
			score -= cell.Value()
		}
	}
	return score
}

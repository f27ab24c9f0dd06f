package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// PieceType represents the type of a chess piece.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType PieceType = 6
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the FEN character for the piece type (lowercase).
func (pt PieceType) Char() byte {
	chars := []byte{'p', 'n', 'b', 'r', 'q', 'k', ' '}
	if pt > NoPieceType {
		return ' '
	}
	return chars[pt]
}

// PieceTypeFromChar parses a promotion letter (either case).
func PieceTypeFromChar(c byte) PieceType {
	switch c {
	case 'p', 'P':
		return Pawn
	case 'n', 'N':
		return Knight
	case 'b', 'B':
		return Bishop
	case 'r', 'R':
		return Rook
	case 'q', 'Q':
		return Queen
	case 'k', 'K':
		return King
	default:
		return NoPieceType
	}
}

// IsPromotionChoice reports whether a pawn may promote to pt.
func (pt PieceType) IsPromotionChoice() bool {
	return pt >= Knight && pt <= Queen
}

// Material values in centipawns.
const (
	PawnValue   = 100
	KnightValue = 320
	BishopValue = 330
	RookValue   = 500
	QueenValue  = 900
	KingValue   = 20000
)

// PieceValue is the material value of each piece type, indexed by PieceType.
// Position.Material and the engine's evaluator both score from it.
var PieceValue = [7]int{PawnValue, KnightValue, BishopValue, RookValue, QueenValue, KingValue, 0}

// Piece combines PieceType and Color into a single value.
// The encoding is the external board encoding: 0 is empty, odd codes are
// white (1 pawn, 3 knight, 5 bishop, 7 rook, 9 queen, 11 king) and even
// codes are black (same order, +1).
type Piece uint8

const (
	NoPiece     Piece = 0
	WhitePawn   Piece = 1
	BlackPawn   Piece = 2
	WhiteKnight Piece = 3
	BlackKnight Piece = 4
	WhiteBishop Piece = 5
	BlackBishop Piece = 6
	WhiteRook   Piece = 7
	BlackRook   Piece = 8
	WhiteQueen  Piece = 9
	BlackQueen  Piece = 10
	WhiteKing   Piece = 11
	BlackKing   Piece = 12
)

// NewPiece creates a Piece from PieceType and Color.
func NewPiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType || c >= NoColor {
		return NoPiece
	}
	return Piece(pt)*2 + 1 + Piece(c)
}

// PieceFromCode converts an external board code into a Piece.
// Codes outside 0-12 map to NoPiece.
func PieceFromCode(code uint8) Piece {
	if code > uint8(BlackKing) {
		return NoPiece
	}
	return Piece(code)
}

// Code returns the external board code of the piece.
func (p Piece) Code() uint8 {
	return uint8(p)
}

// Type returns the PieceType of the piece.
func (p Piece) Type() PieceType {
	if p == NoPiece || p > BlackKing {
		return NoPieceType
	}
	return PieceType((p - 1) / 2)
}

// Color returns the Color of the piece.
func (p Piece) Color() Color {
	if p == NoPiece || p > BlackKing {
		return NoColor
	}
	return Color((p - 1) % 2)
}

// String returns the FEN character for the piece.
// Uppercase for white, lowercase for black.
func (p Piece) String() string {
	if p == NoPiece || p > BlackKing {
		return " "
	}
	c := p.Type().Char()
	if p.Color() == White {
		c -= 'a' - 'A'
	}
	return string(c)
}

// PieceFromChar converts a FEN character to a Piece.
func PieceFromChar(c byte) Piece {
	pt := PieceTypeFromChar(c)
	if pt == NoPieceType {
		return NoPiece
	}
	if c >= 'A' && c <= 'Z' {
		return NewPiece(pt, White)
	}
	return NewPiece(pt, Black)
}

// Value returns the material value of the piece in centipawns.
func (p Piece) Value() int {
	return PieceValue[p.Type()]
}

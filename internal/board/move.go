package board

import "fmt"

// MoveKind classifies a move. It is decided once by Classify and carried
// in the move so the executor never re-derives it.
type MoveKind uint8

const (
	Quiet MoveKind = iota
	Capture
	EnPassant
	CastleKingSide
	CastleQueenSide
	Promotion
	PromotionCapture
)

// String returns the kind name.
func (k MoveKind) String() string {
	switch k {
	case Quiet:
		return "quiet"
	case Capture:
		return "capture"
	case EnPassant:
		return "en-passant"
	case CastleKingSide:
		return "castle-kingside"
	case CastleQueenSide:
		return "castle-queenside"
	case Promotion:
		return "promotion"
	case PromotionCapture:
		return "promotion-capture"
	default:
		return "unknown"
	}
}

// Move encodes a chess move:
// bits 0-5:   from square
// bits 6-11:  to square
// bits 12-15: MoveKind
// bits 16-18: promotion piece type, 0 when staged or not a promotion
type Move uint32

// NoMove represents an invalid or null move.
const NoMove Move = 0

// NewMove creates a move of the given kind without a promotion piece.
func NewMove(from, to Square, kind MoveKind) Move {
	return Move(from) | Move(to)<<6 | Move(kind)<<12
}

// NewPromotion creates a promotion move carrying the promoted piece type.
func NewPromotion(from, to Square, capture bool, promo PieceType) Move {
	kind := Promotion
	if capture {
		kind = PromotionCapture
	}
	m := Move(from) | Move(to)<<6 | Move(kind)<<12
	return m.WithPromotion(promo)
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & 0x3F)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> 6) & 0x3F)
}

// Kind returns the move classification.
func (m Move) Kind() MoveKind {
	return MoveKind((m >> 12) & 0xF)
}

// Promotion returns the promotion piece type, NoPieceType if none.
func (m Move) Promotion() PieceType {
	pt := PieceType((m >> 16) & 0x7)
	if !pt.IsPromotionChoice() {
		return NoPieceType
	}
	return pt
}

// WithPromotion returns the move with the promotion piece set.
// Anything other than knight, bishop, rook or queen clears it.
func (m Move) WithPromotion(pt PieceType) Move {
	m &^= 0x7 << 16
	if pt.IsPromotionChoice() {
		m |= Move(pt) << 16
	}
	return m
}

// IsPromotion returns true if a pawn reaches the last rank with this move.
func (m Move) IsPromotion() bool {
	k := m.Kind()
	return k == Promotion || k == PromotionCapture
}

// IsCastling returns true if this is a castling move.
func (m Move) IsCastling() bool {
	k := m.Kind()
	return k == CastleKingSide || k == CastleQueenSide
}

// IsEnPassant returns true if this is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.Kind() == EnPassant
}

// IsCapture returns true if this move captures a piece.
func (m Move) IsCapture() bool {
	k := m.Kind()
	return k == Capture || k == EnPassant || k == PromotionCapture
}

// String returns the UCI format of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}

	s := m.From().String() + m.To().String()
	if pt := m.Promotion(); pt.IsPromotionChoice() {
		s += string(pt.Char())
	}
	return s
}

// ParseMove parses a UCI move string against the position and returns the
// classified move. The move is not checked for legality.
func ParseMove(s string, pos *Position) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NoMove, fmt.Errorf("invalid move string: %q", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	if pos.PieceAt(from) == NoPiece {
		return NoMove, fmt.Errorf("no piece at %s", from)
	}

	m := pos.Classify(from, to)
	if len(s) == 5 {
		promo := PieceTypeFromChar(s[4])
		if !m.IsPromotion() || !promo.IsPromotionChoice() {
			return NoMove, fmt.Errorf("invalid promotion in %q", s)
		}
		m = m.WithPromotion(promo)
	}

	return m, nil
}

// MoveList is a fixed-size list of moves to avoid allocations.
type MoveList struct {
	moves [256]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Swap swaps two moves in the list.
func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}

// Contains returns true if the list contains a move between from and to.
func (ml *MoveList) Contains(from, to Square) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i].From() == from && ml.moves[i].To() == to {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}

// UndoInfo stores everything needed to take back a move.
type UndoInfo struct {
	Moved            Piece
	Captured         Piece
	CapturedSquare   Square
	CastlingRights   CastlingRights
	EnPassant        Square
	PendingPromotion Square
	SideToMove       Color
	HalfMoveClock    int
	FullMoveNumber   int
}

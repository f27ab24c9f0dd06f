package board

// castlingPath describes one castling option.
type castlingPath struct {
	right    CastlingRights
	king     Square
	kingTo   Square
	rook     Square
	rookTo   Square
	empty    []Square // must be vacant
	safe     []Square // king start, transit and landing squares
	kingSide bool
}

var castlingPaths = [4]castlingPath{
	{WhiteKingSideCastle, E1, G1, H1, F1, []Square{F1, G1}, []Square{E1, F1, G1}, true},
	{WhiteQueenSideCastle, E1, C1, A1, D1, []Square{B1, C1, D1}, []Square{E1, D1, C1}, false},
	{BlackKingSideCastle, E8, G8, H8, F8, []Square{F8, G8}, []Square{E8, F8, G8}, true},
	{BlackQueenSideCastle, E8, C8, A8, D8, []Square{B8, C8, D8}, []Square{E8, D8, C8}, false},
}

// castlingFor returns the castling option a king move from-to would be.
func castlingFor(from, to Square) (castlingPath, bool) {
	for _, cp := range castlingPaths {
		if cp.king == from && cp.kingTo == to {
			return cp, true
		}
	}
	return castlingPath{}, false
}

func pawnDirection(c Color) int {
	if c == White {
		return 8
	}
	return -8
}

// epCaptureRank is the rank a c pawn lands on when capturing en passant.
func epCaptureRank(c Color) int {
	if c == White {
		return 5
	}
	return 2
}

// IsPseudoLegal reports whether the piece on from may move to to by its
// movement rules, ignoring whether its own king is left attacked.
func (p *Position) IsPseudoLegal(from, to Square) bool {
	if from >= NoSquare || to >= NoSquare || from == to {
		return false
	}
	piece := p.Cells[from]
	if piece == NoPiece {
		return false
	}
	us := piece.Color()
	target := p.Cells[to]
	if target != NoPiece && target.Color() == us {
		return false
	}

	switch piece.Type() {
	case Pawn:
		return p.pawnPseudoLegal(from, to, us)
	case Knight:
		return containsSquare(knightTargets[from], to)
	case Bishop, Rook, Queen:
		return p.Attacks(from, to)
	case King:
		return p.kingPseudoLegal(from, to, us)
	}
	return false
}

func (p *Position) pawnPseudoLegal(from, to Square, us Color) bool {
	dir := pawnDirection(us)
	step := int(to) - int(from)

	// Pushes stay on the file.
	if from.File() == to.File() {
		if step == dir {
			return p.Cells[to] == NoPiece
		}
		if step == 2*dir && from.RelativeRank(us) == 1 {
			mid := Square(int(from) + dir)
			return p.Cells[mid] == NoPiece && p.Cells[to] == NoPiece
		}
		return false
	}

	if !containsSquare(pawnCaptures[us][from], to) {
		return false
	}
	if target := p.Cells[to]; target != NoPiece {
		return target.Color() != us
	}
	return to == p.EnPassant && to.Rank() == epCaptureRank(us)
}

func (p *Position) kingPseudoLegal(from, to Square, us Color) bool {
	them := us.Other()

	if containsSquare(kingTargets[from], to) {
		// The king may not take a defended piece.
		if p.Cells[to] != NoPiece && p.IsSquareAttacked(to, them) {
			return false
		}
		return true
	}

	cp, ok := castlingFor(from, to)
	if !ok || p.CastlingRights&cp.right == 0 {
		return false
	}
	if p.Cells[cp.king] != NewPiece(King, us) || p.Cells[cp.rook] != NewPiece(Rook, us) {
		return false
	}
	for _, sq := range cp.empty {
		if p.Cells[sq] != NoPiece {
			return false
		}
	}
	for _, sq := range cp.safe {
		if p.IsSquareAttacked(sq, them) {
			return false
		}
	}
	return true
}

// LeavesKingInCheck simulates from-to on a scratch copy and reports
// whether the mover's king would be attacked afterwards.
func (p *Position) LeavesKingInCheck(from, to Square) bool {
	scratch := *p
	piece := scratch.Cells[from]
	us := piece.Color()

	if piece.Type() == Pawn && to == scratch.EnPassant && from.File() != to.File() && scratch.Cells[to] == NoPiece {
		scratch.Cells[int(to)-pawnDirection(us)] = NoPiece
	}
	scratch.Cells[to] = piece
	scratch.Cells[from] = NoPiece

	var kingSq Square
	if piece.Type() == King {
		kingSq = to
	} else {
		kingSq = scratch.KingSquare(us)
	}
	return scratch.IsSquareAttacked(kingSq, us.Other())
}

// IsLegal reports whether from-to is pseudo-legal and keeps the mover's
// king safe.
func (p *Position) IsLegal(from, to Square) bool {
	return p.IsPseudoLegal(from, to) && !p.LeavesKingInCheck(from, to)
}

// Classify derives the kind of the move from-to from the board. Promotions
// are returned without a promotion piece.
func (p *Position) Classify(from, to Square) Move {
	piece := p.Cells[from]
	capture := p.Cells[to] != NoPiece

	switch piece.Type() {
	case Pawn:
		if to.RelativeRank(piece.Color()) == 7 {
			if capture {
				return NewMove(from, to, PromotionCapture)
			}
			return NewMove(from, to, Promotion)
		}
		if !capture && to == p.EnPassant && from.File() != to.File() {
			return NewMove(from, to, EnPassant)
		}
	case King:
		if cp, ok := castlingFor(from, to); ok {
			if cp.kingSide {
				return NewMove(from, to, CastleKingSide)
			}
			return NewMove(from, to, CastleQueenSide)
		}
	}

	if capture {
		return NewMove(from, to, Capture)
	}
	return NewMove(from, to, Quiet)
}

package board

// rookHomeRights maps rook home squares to the right they guard.
var rookHomeRights = map[Square]CastlingRights{
	A1: WhiteQueenSideCastle,
	H1: WhiteKingSideCastle,
	A8: BlackQueenSideCastle,
	H8: BlackKingSideCastle,
}

// MakeMove applies a legal move and returns the information needed to take
// it back. A promotion move without a promotion piece is staged: the pawn
// stays on the last rank, PendingPromotion is set and the side to move
// does not flip until ResolvePromotion.
func (p *Position) MakeMove(m Move) UndoInfo {
	from, to := m.From(), m.To()
	piece := p.Cells[from]
	us := piece.Color()

	undo := UndoInfo{
		Moved:            piece,
		Captured:         p.Cells[to],
		CapturedSquare:   to,
		CastlingRights:   p.CastlingRights,
		EnPassant:        p.EnPassant,
		PendingPromotion: p.PendingPromotion,
		SideToMove:       p.SideToMove,
		HalfMoveClock:    p.HalfMoveClock,
		FullMoveNumber:   p.FullMoveNumber,
	}

	// En passant removes the pawn behind the target square.
	if m.IsEnPassant() {
		capSq := Square(int(to) - pawnDirection(us))
		undo.Captured = p.Cells[capSq]
		undo.CapturedSquare = capSq
		p.Cells[capSq] = NoPiece
	}

	// Castling relocates the rook.
	if m.IsCastling() {
		if cp, ok := castlingFor(from, to); ok {
			p.Cells[cp.rookTo] = p.Cells[cp.rook]
			p.Cells[cp.rook] = NoPiece
		}
	}

	p.Cells[from] = NoPiece
	p.Cells[to] = piece

	p.EnPassant = NoSquare
	if piece.Type() == Pawn && abs(int(to)-int(from)) == 16 {
		p.EnPassant = Square((int(from) + int(to)) / 2)
	}

	if piece.Type() == King {
		p.CastlingRights &^= castleRight(us, true) | castleRight(us, false)
	}
	if right, ok := rookHomeRights[from]; ok {
		p.CastlingRights &^= right
	}
	if right, ok := rookHomeRights[to]; ok {
		p.CastlingRights &^= right
	}

	if piece.Type() == Pawn || undo.Captured != NoPiece {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}

	if m.IsPromotion() {
		promo := m.Promotion()
		if promo == NoPieceType {
			p.PendingPromotion = to
			return undo
		}
		p.Cells[to] = NewPiece(promo, us)
	}

	p.finishTurn()
	return undo
}

// finishTurn hands the move to the other side.
func (p *Position) finishTurn() {
	if p.SideToMove == Black {
		p.FullMoveNumber++
	}
	p.SideToMove = p.SideToMove.Other()
}

// UnmakeMove takes back a move made with MakeMove, restoring every field
// including en passant, castling rights and any pending promotion.
func (p *Position) UnmakeMove(m Move, undo UndoInfo) {
	from, to := m.From(), m.To()

	p.Cells[to] = NoPiece
	p.Cells[undo.CapturedSquare] = undo.Captured
	p.Cells[from] = undo.Moved

	if m.IsCastling() {
		if cp, ok := castlingFor(from, to); ok {
			p.Cells[cp.rook] = p.Cells[cp.rookTo]
			p.Cells[cp.rookTo] = NoPiece
		}
	}

	p.CastlingRights = undo.CastlingRights
	p.EnPassant = undo.EnPassant
	p.PendingPromotion = undo.PendingPromotion
	p.SideToMove = undo.SideToMove
	p.HalfMoveClock = undo.HalfMoveClock
	p.FullMoveNumber = undo.FullMoveNumber
}

// ApplyMove validates and plays from-to for the side to move. It returns
// false, leaving the position untouched, for out-of-range squares, an
// empty origin, a piece of the wrong side, a pending promotion, or an
// illegal move. Promotions are staged; see ResolvePromotion.
func (p *Position) ApplyMove(from, to Square) (Move, UndoInfo, bool) {
	if from >= NoSquare || to >= NoSquare || p.PendingPromotion != NoSquare {
		return NoMove, UndoInfo{}, false
	}
	piece := p.Cells[from]
	if piece == NoPiece || piece.Color() != p.SideToMove {
		return NoMove, UndoInfo{}, false
	}
	if !p.IsLegal(from, to) {
		return NoMove, UndoInfo{}, false
	}

	m := p.Classify(from, to)
	return m, p.MakeMove(m), true
}

// ResolvePromotion completes a staged promotion on sq with kind.
// It returns false and changes nothing unless sq is the pending square and
// kind is a knight, bishop, rook or queen.
func (p *Position) ResolvePromotion(sq Square, kind PieceType) bool {
	if p.PendingPromotion == NoSquare || sq != p.PendingPromotion || !kind.IsPromotionChoice() {
		return false
	}
	pawn := p.Cells[sq]
	if pawn.Type() != Pawn || pawn.Color() != p.SideToMove {
		return false
	}

	p.Cells[sq] = NewPiece(kind, pawn.Color())
	p.PendingPromotion = NoSquare
	p.finishTurn()
	return true
}

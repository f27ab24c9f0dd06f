package board

// promotionOrder is the order promotion moves are generated in.
var promotionOrder = [4]PieceType{Queen, Rook, Bishop, Knight}

// candidateTargets appends the destinations worth testing for the piece
// on from. It is a superset of the pseudo-legal destinations; every
// candidate still goes through IsLegal.
func (p *Position) candidateTargets(from Square, buf []Square) []Square {
	piece := p.Cells[from]
	c := piece.Color()

	switch piece.Type() {
	case Pawn:
		dir := pawnDirection(c)
		if one := int(from) + dir; one >= 0 && one < 64 {
			buf = append(buf, Square(one))
			if two := one + dir; from.RelativeRank(c) == 1 {
				buf = append(buf, Square(two))
			}
		}
		buf = append(buf, pawnCaptures[c][from]...)
	case Knight:
		buf = append(buf, knightTargets[from]...)
	case King:
		buf = append(buf, kingTargets[from]...)
		for _, cp := range castlingPaths {
			if cp.king == from {
				buf = append(buf, cp.kingTo)
			}
		}
	case Bishop, Rook, Queen:
		pt := piece.Type()
		for dir := 0; dir < 8; dir++ {
			if pt == Bishop && !isDiagonal(dir) || pt == Rook && !isOrthogonal(dir) {
				continue
			}
			for _, sq := range rays[from][dir] {
				buf = append(buf, sq)
				if p.Cells[sq] != NoPiece {
					break
				}
			}
		}
	}
	return buf
}

// addLegalFrom appends every legal move of the piece on from to ml.
func (p *Position) addLegalFrom(ml *MoveList, from Square) {
	var buf [32]Square
	for _, to := range p.candidateTargets(from, buf[:0]) {
		if !p.IsLegal(from, to) {
			continue
		}
		m := p.Classify(from, to)
		if m.IsPromotion() {
			for _, pt := range promotionOrder {
				ml.Add(m.WithPromotion(pt))
			}
			continue
		}
		ml.Add(m)
	}
}

// GenerateLegalMoves generates all legal moves for color c.
func (p *Position) GenerateLegalMoves(c Color) *MoveList {
	ml := NewMoveList()
	for from := A1; from <= H8; from++ {
		piece := p.Cells[from]
		if piece == NoPiece || piece.Color() != c {
			continue
		}
		p.addLegalFrom(ml, from)
	}
	return ml
}

// LegalMovesFrom generates the legal moves of the piece on sq.
func (p *Position) LegalMovesFrom(sq Square) *MoveList {
	ml := NewMoveList()
	if sq < NoSquare && p.Cells[sq] != NoPiece {
		p.addLegalFrom(ml, sq)
	}
	return ml
}

// HasAnyLegalMove returns true if color c has at least one legal move.
func (p *Position) HasAnyLegalMove(c Color) bool {
	var buf [32]Square
	for from := A1; from <= H8; from++ {
		piece := p.Cells[from]
		if piece == NoPiece || piece.Color() != c {
			continue
		}
		for _, to := range p.candidateTargets(from, buf[:0]) {
			if p.IsLegal(from, to) {
				return true
			}
		}
	}
	return false
}

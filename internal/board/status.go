package board

// IsCheckmate returns true if c is in check with no legal move.
func (p *Position) IsCheckmate(c Color) bool {
	return p.IsInCheck(c) && !p.HasAnyLegalMove(c)
}

// IsStalemate returns true if the side to move is not in check and has no
// legal move.
func (p *Position) IsStalemate() bool {
	us := p.SideToMove
	return !p.IsInCheck(us) && !p.HasAnyLegalMove(us)
}

// IsFiftyMoveDraw returns true once a hundred half-moves have passed without
// a pawn move or capture.
func (p *Position) IsFiftyMoveDraw() bool {
	return p.HalfMoveClock >= 100
}

// IsInsufficientMaterial returns true for the material configurations from
// which this engine declares mate impossible: K v K, K+minor v K,
// K+B v K+B with bishops on the same square color, and K+N v K+N.
func (p *Position) IsInsufficientMaterial() bool {
	var knights, bishops [2]int
	var bishopLight [2]bool

	for sq := A1; sq <= H8; sq++ {
		piece := p.Cells[sq]
		if piece == NoPiece {
			continue
		}
		c := piece.Color()
		switch piece.Type() {
		case Pawn, Rook, Queen:
			return false
		case Knight:
			knights[c]++
		case Bishop:
			bishops[c]++
			bishopLight[c] = sq.IsLight()
		}
	}

	wMinor := knights[White] + bishops[White]
	bMinor := knights[Black] + bishops[Black]

	switch {
	case wMinor == 0 && bMinor == 0:
		return true
	case wMinor == 1 && bMinor == 0, wMinor == 0 && bMinor == 1:
		return true
	case bishops[White] == 1 && bishops[Black] == 1 && knights[White] == 0 && knights[Black] == 0:
		return bishopLight[White] == bishopLight[Black]
	case knights[White] == 1 && knights[Black] == 1 && bishops[White] == 0 && bishops[Black] == 0:
		return true
	}
	return false
}

package board

// Perft counts the leaf nodes of the legal move tree at the given depth.
func (p *Position) Perft(depth int) int64 {
	if depth == 0 {
		return 1
	}

	moves := p.GenerateLegalMoves(p.SideToMove)
	if depth == 1 {
		return int64(moves.Len())
	}

	var nodes int64
	for _, m := range moves.Slice() {
		undo := p.MakeMove(m)
		nodes += p.Perft(depth - 1)
		p.UnmakeMove(m, undo)
	}
	return nodes
}

// Divide returns the perft count below each root move.
func (p *Position) Divide(depth int) map[Move]int64 {
	out := make(map[Move]int64)
	if depth < 1 {
		return out
	}
	for _, m := range p.GenerateLegalMoves(p.SideToMove).Slice() {
		undo := p.MakeMove(m)
		out[m] = p.Perft(depth - 1)
		p.UnmakeMove(m, undo)
	}
	return out
}

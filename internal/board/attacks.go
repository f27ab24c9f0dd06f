package board

// Ray directions. The first four are orthogonal, the last four diagonal.
const (
	dirNorth = iota
	dirSouth
	dirEast
	dirWest
	dirNorthEast
	dirNorthWest
	dirSouthEast
	dirSouthWest
	noDirection = -1
)

var dirDelta = [8][2]int{
	{0, 1}, {0, -1}, {1, 0}, {-1, 0},
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
}

// Pre-computed target tables for the mailbox attack oracle.
var (
	knightTargets [64][]Square
	kingTargets   [64][]Square
	pawnCaptures  [2][64][]Square // [Color][Square]

	// rays[sq][dir] lists the squares from sq outward, nearest first.
	rays [64][8][]Square

	// direction[from][to] is the ray index leading from one square to the
	// other, or noDirection when they do not share a line.
	direction [64][64]int8
)

func init() {
	initLeaperTargets()
	initPawnCaptures()
	initRays()
}

func initLeaperTargets() {
	knightSteps := [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	for sq := A1; sq <= H8; sq++ {
		for _, d := range knightSteps {
			if to, ok := sq.offset(d[0], d[1]); ok {
				knightTargets[sq] = append(knightTargets[sq], to)
			}
		}
		for _, d := range dirDelta {
			if to, ok := sq.offset(d[0], d[1]); ok {
				kingTargets[sq] = append(kingTargets[sq], to)
			}
		}
	}
}

func initPawnCaptures() {
	for sq := A1; sq <= H8; sq++ {
		for _, df := range []int{-1, 1} {
			if to, ok := sq.offset(df, 1); ok {
				pawnCaptures[White][sq] = append(pawnCaptures[White][sq], to)
			}
			if to, ok := sq.offset(df, -1); ok {
				pawnCaptures[Black][sq] = append(pawnCaptures[Black][sq], to)
			}
		}
	}
}

func initRays() {
	for from := A1; from <= H8; from++ {
		for to := A1; to <= H8; to++ {
			direction[from][to] = noDirection
		}
		for dir, d := range dirDelta {
			sq := from
			for {
				next, ok := sq.offset(d[0], d[1])
				if !ok {
					break
				}
				rays[from][dir] = append(rays[from][dir], next)
				direction[from][next] = int8(dir)
				sq = next
			}
		}
	}
}

func isOrthogonal(dir int) bool {
	return dir >= dirNorth && dir <= dirWest
}

func isDiagonal(dir int) bool {
	return dir >= dirNorthEast && dir <= dirSouthWest
}

func containsSquare(list []Square, sq Square) bool {
	for _, s := range list {
		if s == sq {
			return true
		}
	}
	return false
}

// KnightTargets returns the squares a knight on sq reaches.
func KnightTargets(sq Square) []Square {
	return knightTargets[sq]
}

// KingTargets returns the squares adjacent to sq.
func KingTargets(sq Square) []Square {
	return kingTargets[sq]
}

// PawnCaptureTargets returns the diagonal-forward squares of a c pawn on sq.
func PawnCaptureTargets(sq Square, c Color) []Square {
	return pawnCaptures[c][sq]
}

// pathClear reports whether every square strictly between from and to on
// ray dir is empty.
func (p *Position) pathClear(from, to Square, dir int) bool {
	for _, sq := range rays[from][dir] {
		if sq == to {
			return true
		}
		if p.Cells[sq] != NoPiece {
			return false
		}
	}
	return false
}

// Attacks returns true if the piece on from geometrically threatens to.
// Whose turn it is and the safety of either king are ignored.
func (p *Position) Attacks(from, to Square) bool {
	if from == to || from >= NoSquare || to >= NoSquare {
		return false
	}
	piece := p.Cells[from]

	switch piece.Type() {
	case Pawn:
		return containsSquare(pawnCaptures[piece.Color()][from], to)
	case Knight:
		return containsSquare(knightTargets[from], to)
	case King:
		return containsSquare(kingTargets[from], to)
	case Bishop, Rook, Queen:
		dir := int(direction[from][to])
		if dir == noDirection {
			return false
		}
		pt := piece.Type()
		if pt == Bishop && !isDiagonal(dir) || pt == Rook && !isOrthogonal(dir) {
			return false
		}
		return p.pathClear(from, to, dir)
	}

	return false
}

// IsSquareAttacked returns true if any piece of byColor attacks sq.
func (p *Position) IsSquareAttacked(sq Square, byColor Color) bool {
	for from := A1; from <= H8; from++ {
		piece := p.Cells[from]
		if piece == NoPiece || piece.Color() != byColor {
			continue
		}
		if p.Attacks(from, sq) {
			return true
		}
	}
	return false
}

// Attackers returns every square holding a byColor piece that attacks sq.
func (p *Position) Attackers(sq Square, byColor Color) []Square {
	var out []Square
	for from := A1; from <= H8; from++ {
		piece := p.Cells[from]
		if piece != NoPiece && piece.Color() == byColor && p.Attacks(from, sq) {
			out = append(out, from)
		}
	}
	return out
}

// IsInCheck returns true if c's king is attacked.
func (p *Position) IsInCheck(c Color) bool {
	return p.IsSquareAttacked(p.KingSquare(c), c.Other())
}

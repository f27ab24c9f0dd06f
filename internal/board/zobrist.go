package board

// Zobrist keys for position hashing, drawn from a fixed-seed PRNG so hashes
// are stable across runs and can be stored.
var (
	zobristPiece      [13][64]uint64 // indexed by Piece code, 0 unused
	zobristEnPassant  [8]uint64
	zobristCastling   [16]uint64
	zobristSideToMove uint64
)

func init() {
	initZobrist()
}

type prng struct {
	state uint64
}

// xorshift64*
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := &prng{state: 0x98F107A2BEEF1234}

	for piece := WhitePawn; piece <= BlackKing; piece++ {
		for sq := A1; sq <= H8; sq++ {
			zobristPiece[piece][sq] = rng.next()
		}
	}
	for file := 0; file < 8; file++ {
		zobristEnPassant[file] = rng.next()
	}
	for i := 0; i < 16; i++ {
		zobristCastling[i] = rng.next()
	}
	zobristSideToMove = rng.next()
}

// Hash computes the Zobrist key of the position from scratch. Two positions
// that repeat for the draw rules share a key; the move clocks are not hashed.
func (p *Position) Hash() uint64 {
	var h uint64
	for sq, piece := range p.Cells {
		if piece != NoPiece {
			h ^= zobristPiece[piece][sq]
		}
	}
	if p.EnPassant != NoSquare {
		h ^= zobristEnPassant[p.EnPassant.File()]
	}
	h ^= zobristCastling[p.CastlingRights&AllCastling]
	if p.SideToMove == Black {
		h ^= zobristSideToMove
	}
	return h
}

package board

import (
	"fmt"
	"strings"
)

// ToSAN converts a move to Standard Algebraic Notation.
func (m Move) ToSAN(pos *Position) string {
	if m == NoMove {
		return "-"
	}

	from := m.From()
	to := m.To()
	piece := pos.PieceAt(from)

	if piece == NoPiece {
		return m.String()
	}

	var sb strings.Builder

	if m.IsCastling() {
		if m.Kind() == CastleKingSide {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}
	} else {
		pt := piece.Type()

		if pt != Pawn {
			sb.WriteByte("PNBRQK"[pt])
			sb.WriteString(disambiguation(pos, m, piece))
		}

		if m.IsCapture() {
			if pt == Pawn {
				sb.WriteByte('a' + byte(from.File()))
			}
			sb.WriteByte('x')
		}

		sb.WriteString(to.String())

		if promo := m.Promotion(); promo != NoPieceType {
			sb.WriteByte('=')
			sb.WriteByte("PNBRQK"[promo])
		}
	}

	// A staged promotion has not handed over the move yet.
	if m.IsPromotion() && m.Promotion() == NoPieceType {
		return sb.String()
	}

	after := pos.Copy()
	after.MakeMove(m)
	them := after.SideToMove
	if after.IsCheckmate(them) {
		sb.WriteByte('#')
	} else if after.IsInCheck(them) {
		sb.WriteByte('+')
	}

	return sb.String()
}

// disambiguation returns the file, rank or square needed to tell m apart
// from moves of same-kind pieces to the same square.
func disambiguation(pos *Position, m Move, piece Piece) string {
	from := m.From()
	to := m.To()

	var candidates []Square
	for sq := A1; sq <= H8; sq++ {
		if sq == from || pos.Cells[sq] != piece {
			continue
		}
		if pos.IsLegal(sq, to) {
			candidates = append(candidates, sq)
		}
	}

	if len(candidates) == 0 {
		return ""
	}

	sameFile := false
	sameRank := false
	for _, sq := range candidates {
		if sq.File() == from.File() {
			sameFile = true
		}
		if sq.Rank() == from.Rank() {
			sameRank = true
		}
	}

	if !sameFile {
		return string(rune('a' + from.File()))
	}
	if !sameRank {
		return string(rune('1' + from.Rank()))
	}
	return from.String()
}

// ParseSAN parses a SAN string and returns the matching legal move.
func ParseSAN(s string, pos *Position) (Move, error) {
	orig := s
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "+#!?")

	moves := pos.GenerateLegalMoves(pos.SideToMove)

	if s == "O-O" || s == "0-0" || s == "O-O-O" || s == "0-0-0" {
		kind := CastleKingSide
		if len(s) == 5 {
			kind = CastleQueenSide
		}
		for _, m := range moves.Slice() {
			if m.Kind() == kind {
				return m, nil
			}
		}
		return NoMove, fmt.Errorf("illegal castling: %q", orig)
	}

	promo := NoPieceType
	if idx := strings.Index(s, "="); idx >= 0 {
		if idx+1 >= len(s) {
			return NoMove, fmt.Errorf("missing promotion piece: %q", orig)
		}
		promo = PieceTypeFromChar(s[idx+1])
		if !promo.IsPromotionChoice() {
			return NoMove, fmt.Errorf("invalid promotion piece: %q", orig)
		}
		s = s[:idx]
	}

	isCapture := strings.Contains(s, "x")
	s = strings.ReplaceAll(s, "x", "")

	pt := Pawn
	if len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z' {
		pt = PieceTypeFromChar(s[0])
		if pt == NoPieceType || pt == Pawn {
			return NoMove, fmt.Errorf("invalid piece letter: %q", orig)
		}
		s = s[1:]
	}

	if len(s) < 2 {
		return NoMove, fmt.Errorf("invalid SAN: %q", orig)
	}
	dest, err := ParseSquare(s[len(s)-2:])
	if err != nil {
		return NoMove, err
	}
	s = s[:len(s)-2]

	disambigFile, disambigRank := -1, -1
	for _, c := range s {
		if c >= 'a' && c <= 'h' {
			disambigFile = int(c - 'a')
		} else if c >= '1' && c <= '8' {
			disambigRank = int(c - '1')
		}
	}

	for _, m := range moves.Slice() {
		if m.To() != dest {
			continue
		}
		from := m.From()
		if pos.PieceAt(from).Type() != pt {
			continue
		}
		if disambigFile >= 0 && from.File() != disambigFile {
			continue
		}
		if disambigRank >= 0 && from.Rank() != disambigRank {
			continue
		}
		if isCapture && !m.IsCapture() {
			continue
		}
		if m.IsPromotion() {
			if promo == NoPieceType {
				promo = Queen
			}
			if m.Promotion() != promo {
				continue
			}
		}
		return m, nil
	}

	return NoMove, fmt.Errorf("no legal move matches %q", orig)
}

// MovesToSAN converts a sequence of moves played from pos to SAN.
func MovesToSAN(pos *Position, moves []Move) []string {
	result := make([]string, len(moves))
	p := pos.Copy()

	for i, m := range moves {
		result[i] = m.ToSAN(p)
		p.MakeMove(m)
	}

	return result
}

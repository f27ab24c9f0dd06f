package board

import "testing"

func TestMoveEncoding(t *testing.T) {
	m := NewMove(E2, E4, Quiet)
	if m.From() != E2 || m.To() != E4 || m.Kind() != Quiet || m.Promotion() != NoPieceType {
		t.Errorf("NewMove fields = %v %v %v %v", m.From(), m.To(), m.Kind(), m.Promotion())
	}
	if m.String() != "e2e4" {
		t.Errorf("String() = %q, want e2e4", m.String())
	}

	p := NewPromotion(G7, H8, true, Knight)
	if !p.IsPromotion() || !p.IsCapture() || p.Promotion() != Knight {
		t.Errorf("promotion capture decoded as %v/%v", p.Kind(), p.Promotion())
	}
	if p.String() != "g7h8n" {
		t.Errorf("String() = %q, want g7h8n", p.String())
	}
	if p.WithPromotion(King).Promotion() != NoPieceType {
		t.Error("WithPromotion(King) should clear the promotion piece")
	}
	if NoMove.String() != "0000" {
		t.Errorf("NoMove.String() = %q", NoMove.String())
	}
}

func TestParseMove(t *testing.T) {
	pos := mustParse(t, "4k2r/P7/8/3pP3/8/8/8/R3K2R w KQk d6 0 1")

	tests := []struct {
		in   string
		kind MoveKind
	}{
		{"e1g1", CastleKingSide},
		{"e1c1", CastleQueenSide},
		{"e5d6", EnPassant},
		{"a1a6", Quiet},
		{"a7a8q", Promotion},
		{"h1h8", Capture},
	}

	for _, tc := range tests {
		m, err := ParseMove(tc.in, pos)
		if err != nil {
			t.Errorf("ParseMove(%q): %v", tc.in, err)
			continue
		}
		if m.Kind() != tc.kind {
			t.Errorf("ParseMove(%q) kind = %v, want %v", tc.in, m.Kind(), tc.kind)
		}
		if m.String() != tc.in {
			t.Errorf("ParseMove(%q).String() = %q", tc.in, m.String())
		}
	}

	for _, bad := range []string{"", "e2", "z1a1", "a3a4", "e5d6q", "a7a8k"} {
		if _, err := ParseMove(bad, pos); err == nil {
			t.Errorf("ParseMove(%q) succeeded, want error", bad)
		}
	}
}

func TestMoveListContains(t *testing.T) {
	ml := NewMoveList()
	ml.Add(NewMove(E2, E4, Quiet))
	ml.Add(NewMove(G1, F3, Quiet))
	if !ml.Contains(G1, F3) || ml.Contains(E2, E3) {
		t.Error("Contains reported the wrong membership")
	}
	ml.Swap(0, 1)
	if ml.Get(0).From() != G1 || ml.Len() != 2 {
		t.Error("Swap did not exchange moves")
	}
}

func TestSquareHelpers(t *testing.T) {
	sq, err := ParseSquare("e4")
	if err != nil || sq != E4 {
		t.Fatalf("ParseSquare(e4) = %v, %v", sq, err)
	}
	if sq.File() != 4 || sq.Rank() != 3 {
		t.Errorf("e4 file/rank = %d/%d", sq.File(), sq.Rank())
	}
	if E2.Mirror() != E7 {
		t.Errorf("e2 mirror = %v, want e7", E2.Mirror())
	}
	if A1.IsLight() || !H1.IsLight() {
		t.Error("a1 is dark and h1 is light")
	}
	if _, ok := SquareFromIndex(64); ok {
		t.Error("index 64 is out of range")
	}
	if _, err := ParseSquare("i9"); err == nil {
		t.Error("ParseSquare(i9) should fail")
	}
}

func TestHashTracksPosition(t *testing.T) {
	a := NewPosition()
	b := NewPosition()
	if a.Hash() != b.Hash() {
		t.Fatal("identical positions hash differently")
	}

	for _, s := range []string{"g1f3", "g8f6", "f3g1", "f6g8"} {
		m, _ := ParseMove(s, a)
		a.MakeMove(m)
	}
	if a.Hash() != b.Hash() {
		t.Error("knight shuffle should return to the starting hash")
	}

	m, _ := ParseMove("e2e4", a)
	a.MakeMove(m)
	if a.Hash() == b.Hash() {
		t.Error("different positions share a hash")
	}
}

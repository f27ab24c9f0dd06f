package board

import "testing"

func TestToSAN(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		move string
		want string
	}{
		{"pawn push", StartFEN, "e2e4", "e4"},
		{"knight", StartFEN, "g1f3", "Nf3"},
		{"pawn capture", "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1", "e4d5", "exd5"},
		{"castle king side", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1g1", "O-O"},
		{"castle queen side", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1c1", "O-O-O"},
		{"file disambiguation", "4k3/8/8/8/8/8/4K3/R6R w - - 0 1", "a1d1", "Rad1"},
		{"rank disambiguation", "4k3/8/8/R7/8/8/8/R3K3 w - - 0 1", "a1a3", "R1a3"},
		{"promotion with check", "4k3/P7/8/8/8/8/8/4K3 w - - 0 1", "a7a8q", "a8=Q+"},
		{"mate", "7k/8/6K1/8/8/8/8/R7 w - - 0 1", "a1a8", "Ra8#"},
		{"en passant", "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1", "e5d6", "exd6"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := mustParse(t, tc.fen)
			m, err := ParseMove(tc.move, pos)
			if err != nil {
				t.Fatalf("ParseMove(%q): %v", tc.move, err)
			}
			if got := m.ToSAN(pos); got != tc.want {
				t.Errorf("ToSAN() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParseSAN(t *testing.T) {
	pos := mustParse(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")

	for _, s := range []string{"O-O", "O-O-O", "Rb1", "Kd2", "Rxa8+"} {
		m, err := ParseSAN(s, pos)
		if err != nil {
			t.Errorf("ParseSAN(%q): %v", s, err)
			continue
		}
		if got := m.ToSAN(pos); got != s {
			t.Errorf("ParseSAN(%q) round trip = %q", s, got)
		}
	}

	if _, err := ParseSAN("Nf3", pos); err == nil {
		t.Error("ParseSAN(Nf3) without a knight should fail")
	}
}

func TestMovesToSAN(t *testing.T) {
	pos := NewPosition()
	var moves []Move
	for _, s := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		m, err := ParseMove(s, pos)
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", s, err)
		}
		moves = append(moves, m)
		pos.MakeMove(m)
	}

	got := MovesToSAN(NewPosition(), moves)
	want := []string{"f3", "e5", "g4", "Qh4#"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("move %d = %q, want %q", i, got[i], want[i])
		}
	}
}

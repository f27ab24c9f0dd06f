package diagram

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/hailam/chessrules/internal/board"
)

func mustParse(t *testing.T, fen string) *board.Position {
	t.Helper()
	pos, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return pos
}

func near(got color.Color, want color.RGBA) bool {
	r, g, b, _ := got.RGBA()
	d := func(x uint32, y uint8) bool {
		v := int(x>>8) - int(y)
		return v >= -3 && v <= 3
	}
	return d(r, want.R) && d(g, want.G) && d(b, want.B)
}

func TestRenderSquares(t *testing.T) {
	pos := board.NewPosition()
	theme := DefaultTheme()

	img, err := Render(pos, Options{SquareSize: 32})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 256, 256) {
		t.Fatalf("bounds = %v, want 256x256", img.Bounds())
	}

	tests := []struct {
		name string
		sq   board.Square
		want color.RGBA
	}{
		{"e4 light", board.E4, theme.LightSquare},
		{"d4 dark", board.D4, theme.DarkSquare},
		{"a3 dark", board.A3, theme.DarkSquare},
		{"h6 light", board.H6, theme.LightSquare},
	}
	opts := Options{SquareSize: 32}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := opts.origin(tt.sq)
			if got := img.At(x+2, y+2); !near(got, tt.want) {
				t.Errorf("pixel at %s = %v, want %v", tt.sq, got, tt.want)
			}
		})
	}
}

func TestRenderFlipped(t *testing.T) {
	pos := mustParse(t, "8/8/8/8/8/8/8/K6k w - - 0 1")
	theme := DefaultTheme()

	normal, err := Render(pos, Options{SquareSize: 32})
	if err != nil {
		t.Fatal(err)
	}
	flipped, err := Render(pos, Options{SquareSize: 32, Flipped: true})
	if err != nil {
		t.Fatal(err)
	}

	// a1 is dark; the king's token covers the middle of its square.
	if near(normal.At(16, 7*32+16), theme.DarkSquare) {
		t.Error("expected a piece in the bottom-left square")
	}
	if near(flipped.At(7*32+16, 16), theme.DarkSquare) {
		t.Error("expected a piece in the top-right square when flipped")
	}
	if !near(flipped.At(16, 7*32+16), theme.DarkSquare) {
		t.Error("h8 should be empty and dark at the bottom-left when flipped")
	}
}

func TestRenderHighlightAndCheck(t *testing.T) {
	pos := mustParse(t, "4k3/8/8/8/8/8/8/4RK2 b - - 0 1")
	theme := DefaultTheme()
	opts := Options{SquareSize: 32, Highlight: []board.Square{board.E2}}

	img, err := Render(pos, opts)
	if err != nil {
		t.Fatal(err)
	}

	x, y := opts.origin(board.E2)
	if got := img.At(x+2, y+2); !near(got, blend(theme.LightSquare, theme.Highlight)) {
		t.Errorf("highlighted e2 = %v", got)
	}
	x, y = opts.origin(board.E8)
	if got := img.At(x+2, y+2); !near(got, blend(theme.LightSquare, theme.Check)) {
		t.Errorf("checked king square e8 = %v", got)
	}
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, board.NewPosition(), Options{SquareSize: 16, Coordinates: true}); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if img.Bounds().Dx() != 128 || img.Bounds().Dy() != 128 {
		t.Errorf("decoded bounds = %v", img.Bounds())
	}
}

func TestPieceImage(t *testing.T) {
	img, err := PieceImage(board.WhiteQueen, 48)
	if err != nil {
		t.Fatalf("PieceImage: %v", err)
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Errorf("corner should be transparent, alpha = %d", a)
	}
	if _, _, _, a := img.At(10, 24).RGBA(); a == 0 {
		t.Error("token body should be opaque")
	}

	if _, err := PieceImage(board.NoPiece, 48); err == nil {
		t.Error("PieceImage(NoPiece) should fail")
	}
	if _, err := PieceImage(board.BlackKing, 0); err == nil {
		t.Error("PieceImage with zero size should fail")
	}
}

// Package diagram renders positions as raster board diagrams. Squares and
// piece tokens are built as SVG and rasterized with oksvg; letters are drawn
// with the Go fonts.
package diagram

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/hailam/chessrules/internal/board"
)

// Theme defines the board colors.
type Theme struct {
	LightSquare color.RGBA
	DarkSquare  color.RGBA
	Highlight   color.RGBA // blended over highlighted squares
	Check       color.RGBA // blended over a king in check
	Coordinate  color.RGBA
}

// DefaultTheme returns the tan and brown board.
func DefaultTheme() Theme {
	return Theme{
		LightSquare: color.RGBA{240, 217, 181, 255},
		DarkSquare:  color.RGBA{181, 136, 99, 255},
		Highlight:   color.RGBA{247, 247, 105, 180},
		Check:       color.RGBA{255, 100, 100, 180},
		Coordinate:  color.RGBA{60, 44, 32, 255},
	}
}

// Options controls a rendering.
type Options struct {
	SquareSize  int  // pixels per square, default 64
	Flipped     bool // Black at the bottom
	Coordinates bool // file and rank labels
	Highlight   []board.Square
	Theme       *Theme
}

func (o Options) squareSize() int {
	if o.SquareSize <= 0 {
		return 64
	}
	return o.SquareSize
}

func (o Options) theme() Theme {
	if o.Theme == nil {
		return DefaultTheme()
	}
	return *o.Theme
}

// origin returns the top-left pixel of sq.
func (o Options) origin(sq board.Square) (int, int) {
	size := o.squareSize()
	col, row := sq.File(), 7-sq.Rank()
	if o.Flipped {
		col, row = 7-sq.File(), sq.Rank()
	}
	return col * size, row * size
}

// Render draws pos. A king in check is tinted with the theme's check color.
func Render(pos *board.Position, opts Options) (*image.RGBA, error) {
	size := opts.squareSize()
	theme := opts.theme()
	total := size * 8

	highlighted := make(map[board.Square]bool, len(opts.Highlight))
	for _, sq := range opts.Highlight {
		highlighted[sq] = true
	}
	checked := board.NoSquare
	for _, c := range []board.Color{board.White, board.Black} {
		if pos.Count(board.King, c) == 1 && pos.IsInCheck(c) {
			checked = pos.KingSquare(c)
		}
	}

	var sb strings.Builder
	openSVG(&sb, total, total)
	for sq := board.A1; sq <= board.H8; sq++ {
		fill := theme.DarkSquare
		if sq.IsLight() {
			fill = theme.LightSquare
		}
		if highlighted[sq] {
			fill = blend(fill, theme.Highlight)
		}
		if sq == checked {
			fill = blend(fill, theme.Check)
		}
		x, y := opts.origin(sq)
		fmt.Fprintf(&sb, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`, x, y, size, size, hexColor(fill))
	}
	for sq := board.A1; sq <= board.H8; sq++ {
		if p := pos.PieceAt(sq); p != board.NoPiece {
			x, y := opts.origin(sq)
			tokenSVG(&sb, p, float64(x), float64(y), float64(size))
		}
	}
	sb.WriteString("</svg>")

	img, err := rasterize(sb.String(), total, total)
	if err != nil {
		return nil, err
	}

	for sq := board.A1; sq <= board.H8; sq++ {
		if p := pos.PieceAt(sq); p != board.NoPiece {
			x, y := opts.origin(sq)
			if err := drawLetter(img, p, x, y, size); err != nil {
				return nil, err
			}
		}
	}

	if opts.Coordinates {
		if err := drawCoordinates(img, opts, theme); err != nil {
			return nil, err
		}
	}
	return img, nil
}

// drawCoordinates labels the bottom rank with files and the left file with
// ranks.
func drawCoordinates(img *image.RGBA, opts Options, theme Theme) error {
	size := opts.squareSize()
	face, err := newFace(regularFont, float64(size)*0.2)
	if err != nil {
		return err
	}
	defer face.Close()

	label := size / 4
	for i := 0; i < 8; i++ {
		file, rank := i, i
		if opts.Flipped {
			file, rank = 7-i, 7-i
		}
		// File letter in the bottom-right corner of the bottom row.
		drawCentered(img, face, string(rune('a'+file)), theme.Coordinate, i*size+size-label, 8*size-label, label, label)
		// Rank digit in the top-left corner of the left column.
		drawCentered(img, face, string(rune('1'+rank)), theme.Coordinate, 0, (7-i)*size, label, label)
	}
	return nil
}

// WritePNG renders pos and encodes it as PNG to w.
func WritePNG(w io.Writer, pos *board.Position, opts Options) error {
	img, err := Render(pos, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode diagram: %w", err)
	}
	return nil
}

func openSVG(sb *strings.Builder, w, h int) {
	fmt.Fprintf(sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`, w, h, w, h)
}

// rasterize parses an SVG document and draws it onto a new w x h image.
func rasterize(svg string, w, h int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(strings.NewReader(svg))
	if err != nil {
		return nil, fmt.Errorf("parse diagram svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)
	return rgba, nil
}

// blend composites over onto an opaque base.
func blend(base, over color.RGBA) color.RGBA {
	a := uint32(over.A)
	mix := func(b, o uint8) uint8 {
		return uint8((uint32(o)*a + uint32(b)*(255-a)) / 255)
	}
	return color.RGBA{mix(base.R, over.R), mix(base.G, over.G), mix(base.B, over.B), 255}
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

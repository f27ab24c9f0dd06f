package diagram

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/hailam/chessrules/internal/board"
)

// Piece token colors.
var (
	whiteToken  = color.RGBA{248, 248, 248, 255}
	blackToken  = color.RGBA{48, 48, 48, 255}
	tokenBorder = color.RGBA{16, 16, 16, 255}
)

// tokenSVG draws the round token a piece letter sits on.
func tokenSVG(sb *strings.Builder, p board.Piece, x, y, size float64) {
	fill := whiteToken
	if p.Color() == board.Black {
		fill = blackToken
	}
	r := size * 0.42
	fmt.Fprintf(sb, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" stroke="%s" stroke-width="%.2f"/>`,
		x+size/2, y+size/2, r, hexColor(fill), hexColor(tokenBorder), size*0.04)
}

// drawLetter centers the piece letter in the size x size cell at (x, y).
func drawLetter(dst *image.RGBA, p board.Piece, x, y, size int) error {
	face, err := newFace(boldFont, float64(size)*0.5)
	if err != nil {
		return err
	}
	defer face.Close()

	ink := blackToken
	if p.Color() == board.Black {
		ink = whiteToken
	}
	label := strings.ToUpper(p.String())
	drawCentered(dst, face, label, ink, x, y, size, size)
	return nil
}

// drawCentered draws s centered in the w x h box at (x, y).
func drawCentered(dst *image.RGBA, face font.Face, s string, c color.Color, x, y, w, h int) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
	}
	m := face.Metrics()
	width := d.MeasureString(s)
	height := m.Ascent + m.Descent

	d.Dot = fixed.Point26_6{
		X: fixed.I(x) + (fixed.I(w)-width)/2,
		Y: fixed.I(y) + (fixed.I(h)-height)/2 + m.Ascent,
	}
	d.DrawString(s)
}

// PieceImage renders a single piece as a size x size token on a
// transparent background.
func PieceImage(p board.Piece, size int) (*image.RGBA, error) {
	if p == board.NoPiece || p > board.BlackKing {
		return nil, fmt.Errorf("no image for piece code %d", p.Code())
	}
	if size <= 0 {
		return nil, fmt.Errorf("invalid piece size %d", size)
	}

	var sb strings.Builder
	openSVG(&sb, size, size)
	tokenSVG(&sb, p, 0, 0, float64(size))
	sb.WriteString("</svg>")

	img, err := rasterize(sb.String(), size, size)
	if err != nil {
		return nil, err
	}
	if err := drawLetter(img, p, 0, 0, size); err != nil {
		return nil, err
	}
	return img, nil
}

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/chessrules/internal/board"
)

var (
	pickerShade = color.RGBA{0, 0, 0, 140}
	pickerBg    = color.RGBA{240, 240, 245, 255}
	pickerHover = color.RGBA{200, 225, 205, 255}
)

// promotionChoices is the picker order, nearest the promotion square first.
var promotionChoices = []board.PieceType{board.Queen, board.Knight, board.Rook, board.Bishop}

// PromotionPicker is the column of pieces shown over a pawn that reached
// the last rank.
type PromotionPicker struct {
	square board.Square
	color  board.Color
	hover  int
}

// NewPromotionPicker opens a picker for the pawn of color c on sq.
func NewPromotionPicker(sq board.Square, c board.Color) *PromotionPicker {
	return &PromotionPicker{square: sq, color: c, hover: -1}
}

// Square returns the square of the staged pawn.
func (pp *PromotionPicker) Square() board.Square {
	return pp.square
}

// cells returns the top-left pixel of each choice. The column starts on
// the promotion square and grows toward the middle of the board.
func (pp *PromotionPicker) cells(geo geometry) [][2]int {
	x, y := geo.squareToScreen(pp.square)
	step := geo.squareSize
	if y > 0 {
		step = -step
	}
	out := make([][2]int, len(promotionChoices))
	for i := range out {
		out[i] = [2]int{x, y + i*step}
	}
	return out
}

// choiceAt returns the index of the choice under (mx, my), or -1.
func (pp *PromotionPicker) choiceAt(geo geometry, mx, my int) int {
	for i, c := range pp.cells(geo) {
		if mx >= c[0] && mx < c[0]+geo.squareSize && my >= c[1] && my < c[1]+geo.squareSize {
			return i
		}
	}
	return -1
}

// Update returns the chosen piece type once the player clicks one.
// cancel is true for a click outside the picker or Escape.
func (pp *PromotionPicker) Update(input *InputHandler, geo geometry) (kind board.PieceType, chosen, cancel bool) {
	mx, my := input.MousePosition()
	pp.hover = pp.choiceAt(geo, mx, my)

	if IsKeyJustPressed(ebiten.KeyEscape) {
		return board.NoPieceType, false, true
	}
	if !input.IsLeftJustPressed() {
		return board.NoPieceType, false, false
	}
	if pp.hover < 0 {
		return board.NoPieceType, false, true
	}
	return promotionChoices[pp.hover], true, false
}

// Draw shades the board and draws the choices.
func (pp *PromotionPicker) Draw(screen *ebiten.Image, r *Renderer) {
	vector.DrawFilledRect(screen, 0, 0, BoardSize, BoardSize, pickerShade, false)

	size := float32(r.squareSize)
	for i, c := range pp.cells(r.geometry) {
		bg := pickerBg
		if i == pp.hover {
			bg = pickerHover
		}
		vector.DrawFilledRect(screen, float32(c[0]), float32(c[1]), size, size, bg, false)
		vector.StrokeRect(screen, float32(c[0]), float32(c[1]), size, size, 1, buttonBorder, false)
		r.sprites.DrawPieceAt(screen, board.NewPiece(promotionChoices[i], pp.color), float64(c[0]), float64(c[1]))
	}
}

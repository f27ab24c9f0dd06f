package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/chessrules/internal/board"
)

// Theme defines the color scheme for the board.
type Theme struct {
	LightSquare    color.RGBA
	DarkSquare     color.RGBA
	SelectedSquare color.RGBA
	LegalMoveColor color.RGBA
	LastMoveColor  color.RGBA
	CheckColor     color.RGBA
	HintColor      color.RGBA
	Background     color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare:    color.RGBA{240, 217, 181, 255}, // Tan
		DarkSquare:     color.RGBA{181, 136, 99, 255},  // Brown
		SelectedSquare: color.RGBA{247, 247, 105, 180},
		LegalMoveColor: color.RGBA{130, 151, 105, 200},
		LastMoveColor:  color.RGBA{180, 190, 100, 90},
		CheckColor:     color.RGBA{255, 100, 100, 180},
		HintColor:      color.RGBA{100, 160, 255, 110},
		Background:     color.RGBA{40, 44, 52, 255},
	}
}

// geometry maps squares to pixels and back. Rank 1 is at the bottom
// unless the board is flipped.
type geometry struct {
	squareSize int
	flipped    bool
}

// squareToScreen returns the top-left pixel of sq.
func (g geometry) squareToScreen(sq board.Square) (int, int) {
	col, row := sq.File(), 7-sq.Rank()
	if g.flipped {
		col, row = 7-col, 7-row
	}
	return col * g.squareSize, row * g.squareSize
}

// screenToSquare returns the square under (x, y), or NoSquare off the board.
func (g geometry) screenToSquare(x, y int) board.Square {
	size := 8 * g.squareSize
	if x < 0 || x >= size || y < 0 || y >= size {
		return board.NoSquare
	}
	col, row := x/g.squareSize, y/g.squareSize
	if g.flipped {
		col, row = 7-col, 7-row
	}
	return board.NewSquare(col, 7-row)
}

// Renderer draws the board, highlights and pieces.
type Renderer struct {
	geometry
	sprites *SpriteManager
	theme   *Theme
}

// NewRenderer creates a renderer for squares of squareSize pixels.
func NewRenderer(squareSize int) *Renderer {
	return &Renderer{
		geometry: geometry{squareSize: squareSize},
		sprites:  NewSpriteManager(squareSize),
		theme:    DefaultTheme(),
	}
}

// SetFlipped puts Black at the bottom when flipped is true.
func (r *Renderer) SetFlipped(flipped bool) {
	r.flipped = flipped
}

// Flipped reports whether Black is at the bottom.
func (r *Renderer) Flipped() bool {
	return r.flipped
}

// DrawBoard draws the squares and their coordinates.
func (r *Renderer) DrawBoard(screen *ebiten.Image) {
	size := float32(r.squareSize)
	for i := 0; i < 64; i++ {
		sq := board.Square(i)
		c := r.theme.DarkSquare
		if sq.IsLight() {
			c = r.theme.LightSquare
		}
		x, y := r.squareToScreen(sq)
		vector.DrawFilledRect(screen, float32(x), float32(y), size, size, c, false)
	}
	r.drawCoordinates(screen)
}

// drawCoordinates labels the files along the bottom edge and the ranks
// along the left edge, in the opposite square color.
func (r *Renderer) drawCoordinates(screen *ebiten.Image) {
	face := regularFace(coordFontSize)
	if face == nil {
		return
	}
	for i := 0; i < 8; i++ {
		// Bottom row squares carry the file letters.
		fileSq := board.NewSquare(i, 0)
		rankSq := board.NewSquare(0, i)
		if r.flipped {
			fileSq = board.NewSquare(i, 7)
			rankSq = board.NewSquare(7, i)
		}

		x, y := r.squareToScreen(fileSq)
		label := string(rune('a' + i))
		w, h := measureText(label, face)
		r.drawLabel(screen, face, label, fileSq,
			float64(x+r.squareSize)-w-3, float64(y+r.squareSize)-h-2)

		x, y = r.squareToScreen(rankSq)
		r.drawLabel(screen, face, string(rune('1'+i)), rankSq, float64(x+3), float64(y+2))
	}
}

func (r *Renderer) drawLabel(screen *ebiten.Image, face *text.GoTextFace, label string, sq board.Square, x, y float64) {
	c := r.theme.LightSquare
	if sq.IsLight() {
		c = r.theme.DarkSquare
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, label, face, op)
}

// DrawHighlights draws the last move, the selection and the legal
// destinations of the selected piece.
func (r *Renderer) DrawHighlights(screen *ebiten.Image, selected board.Square, targets []int, lastMove board.Move) {
	if lastMove != board.NoMove {
		r.highlightSquare(screen, lastMove.From(), r.theme.LastMoveColor)
		r.highlightSquare(screen, lastMove.To(), r.theme.LastMoveColor)
	}
	if selected != board.NoSquare {
		r.highlightSquare(screen, selected, r.theme.SelectedSquare)
	}
	for _, t := range targets {
		r.drawLegalMoveIndicator(screen, board.Square(t))
	}
}

// DrawCheck tints the square of a king in check.
func (r *Renderer) DrawCheck(screen *ebiten.Image, kingSq board.Square) {
	r.highlightSquare(screen, kingSq, r.theme.CheckColor)
}

// DrawFlash tints sq with c at the given opacity.
func (r *Renderer) DrawFlash(screen *ebiten.Image, sq board.Square, c color.RGBA, alpha float64) {
	c.A = uint8(float64(c.A) * alpha)
	r.highlightSquare(screen, sq, c)
}

func (r *Renderer) highlightSquare(screen *ebiten.Image, sq board.Square, c color.RGBA) {
	if !sq.IsValid() {
		return
	}
	x, y := r.squareToScreen(sq)
	size := float32(r.squareSize)
	vector.DrawFilledRect(screen, float32(x), float32(y), size, size, c, false)
}

func (r *Renderer) drawLegalMoveIndicator(screen *ebiten.Image, sq board.Square) {
	x, y := r.squareToScreen(sq)
	half := float32(r.squareSize) / 2
	vector.DrawFilledCircle(screen, float32(x)+half, float32(y)+half, float32(r.squareSize)*0.15, r.theme.LegalMoveColor, true)
}

// DrawPieces draws every piece except the one being dragged from skip.
// anims may be nil.
func (r *Renderer) DrawPieces(screen *ebiten.Image, pos *board.Position, skip board.Square, anims *AnimationManager) {
	for i := 0; i < 64; i++ {
		sq := board.Square(i)
		if sq == skip {
			continue
		}
		p := pos.PieceAt(sq)
		if p == board.NoPiece {
			continue
		}
		x, y := r.squareToScreen(sq)
		fx, fy := float64(x), float64(y)
		if anims != nil {
			dx, dy := anims.ShakeOffset(sq)
			fx += dx
			fy += dy
		}
		r.sprites.DrawPieceAt(screen, p, fx, fy)
	}
}

// DrawDraggedPiece draws p centered on the cursor.
func (r *Renderer) DrawDraggedPiece(screen *ebiten.Image, p board.Piece, mouseX, mouseY int) {
	if p == board.NoPiece {
		return
	}
	half := float64(r.squareSize) / 2
	r.sprites.DrawPieceAt(screen, p, float64(mouseX)-half, float64(mouseY)-half)
}

// Sprites returns the sprite manager.
func (r *Renderer) Sprites() *SpriteManager {
	return r.sprites
}

package ui

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/diagram"
)

// SpriteManager holds one image per piece, rendered at square size.
type SpriteManager struct {
	sprites    map[board.Piece]*ebiten.Image
	squareSize int
}

// NewSpriteManager renders the twelve piece sprites.
func NewSpriteManager(squareSize int) *SpriteManager {
	sm := &SpriteManager{
		sprites:    make(map[board.Piece]*ebiten.Image),
		squareSize: squareSize,
	}
	sm.load()
	return sm
}

func (sm *SpriteManager) load() {
	for code := uint8(1); code <= 12; code++ {
		p := board.PieceFromCode(code)
		img, err := diagram.PieceImage(p, sm.squareSize)
		if err != nil {
			log.Printf("Failed to render sprite for %s: %v", p, err)
			continue
		}
		sm.sprites[p] = ebiten.NewImageFromImage(img)
	}
}

// DrawPieceAt draws p with its top-left corner at (x, y).
func (sm *SpriteManager) DrawPieceAt(screen *ebiten.Image, p board.Piece, x, y float64) {
	sm.drawScaled(screen, p, x, y, 1)
}

// drawScaled draws p scaled by s, for the promotion picker and drag.
func (sm *SpriteManager) drawScaled(screen *ebiten.Image, p board.Piece, x, y, s float64) {
	img, ok := sm.sprites[p]
	if !ok {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

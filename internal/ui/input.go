package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputHandler snapshots mouse state once per frame so every widget sees
// the same press and release.
type InputHandler struct {
	mouseX, mouseY   int
	leftPressed      bool
	leftJustPressed  bool
	leftJustReleased bool
	chars            []rune
}

// NewInputHandler creates a new input handler.
func NewInputHandler() *InputHandler {
	return &InputHandler{}
}

// Update reads the input state. Call this once per frame.
func (ih *InputHandler) Update() {
	// Cursor positions are already in layout coordinates.
	ih.mouseX, ih.mouseY = ebiten.CursorPosition()

	ih.leftJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	ih.leftJustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	ih.leftPressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	ih.chars = ebiten.AppendInputChars(ih.chars[:0])
}

// MousePosition returns the cursor position in layout coordinates.
func (ih *InputHandler) MousePosition() (int, int) {
	return ih.mouseX, ih.mouseY
}

func (ih *InputHandler) IsLeftJustPressed() bool {
	return ih.leftJustPressed
}

func (ih *InputHandler) IsLeftJustReleased() bool {
	return ih.leftJustReleased
}

func (ih *InputHandler) IsLeftPressed() bool {
	return ih.leftPressed
}

// InputChars returns the characters typed this frame.
func (ih *InputHandler) InputChars() []rune {
	return ih.chars
}

// IsInBounds reports whether the cursor is inside the rectangle.
func (ih *InputHandler) IsInBounds(x, y, w, h int) bool {
	return ih.mouseX >= x && ih.mouseX < x+w && ih.mouseY >= y && ih.mouseY < y+h
}

// ClickedInBounds reports a press that started inside the rectangle this frame.
func (ih *InputHandler) ClickedInBounds(x, y, w, h int) bool {
	return ih.leftJustPressed && ih.IsInBounds(x, y, w, h)
}

// IsKeyJustPressed returns true if the key went down this frame.
func IsKeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}

// isKeyRepeated is true on the first frame a key is held and then at a
// steady rate, for text editing.
func isKeyRepeated(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || (d >= 30 && d%3 == 0)
}

package ui

import (
	"image/color"
	"unicode"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Widget and panel colors.
var (
	panelBg          = color.RGBA{38, 40, 45, 255}
	buttonBg         = color.RGBA{50, 54, 60, 255}
	buttonHoverBg    = color.RGBA{65, 70, 78, 255}
	buttonPressedBg  = color.RGBA{40, 44, 50, 255}
	buttonBorder     = color.RGBA{70, 75, 82, 255}
	buttonActiveBg   = color.RGBA{76, 132, 96, 255}
	accentColor      = color.RGBA{76, 175, 120, 255}
	textPrimary      = color.RGBA{240, 240, 245, 255}
	textSecondary    = color.RGBA{160, 165, 175, 255}
	textMuted        = color.RGBA{120, 125, 135, 255}
	dividerColor     = color.RGBA{60, 65, 72, 255}
	moveRowAlt       = color.RGBA{44, 48, 54, 255}
	statusThinking   = color.RGBA{100, 180, 255, 255}
	statusGameOver   = color.RGBA{255, 200, 80, 255}
	widgetBg         = color.RGBA{48, 52, 58, 255}
	widgetBorder     = color.RGBA{68, 72, 78, 255}
	inputPlaceholder = color.RGBA{120, 125, 135, 255}
)

// drawText draws s with its top-left corner at (x, y).
func drawText(screen *ebiten.Image, s string, face *text.GoTextFace, x, y float64, c color.Color) {
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

// drawCenteredText centers s in the given box.
func drawCenteredText(screen *ebiten.Image, s string, face *text.GoTextFace, x, y, w, h int, c color.Color) {
	tw, th := measureText(s, face)
	drawText(screen, s, face, float64(x)+(float64(w)-tw)/2, float64(y)+(float64(h)-th)/2, c)
}

// Button is a clickable rectangle with a label.
type Button struct {
	X, Y, W, H int
	Label      string
	OnClick    func()
	Disabled   bool
	hovered    bool
	pressed    bool
	active     bool
}

// Update tracks hover and fires OnClick on a press inside the button.
func (b *Button) Update(input *InputHandler) bool {
	b.hovered = !b.Disabled && input.IsInBounds(b.X, b.Y, b.W, b.H)
	b.pressed = b.hovered && input.IsLeftPressed()
	if b.hovered && input.IsLeftJustPressed() {
		if b.OnClick != nil {
			b.OnClick()
		}
		return true
	}
	return false
}

// Draw renders the button.
func (b *Button) Draw(screen *ebiten.Image) {
	bg := buttonBg
	border := buttonBorder
	switch {
	case b.active:
		bg, border = buttonActiveBg, buttonActiveBg
	case b.pressed:
		bg = buttonPressedBg
	case b.hovered:
		bg, border = buttonHoverBg, accentColor
	}
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), bg, false)
	vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 1, border, false)

	fg := textPrimary
	if b.Disabled {
		fg = textMuted
	}
	drawCenteredText(screen, b.Label, regularFace(defaultFontSize), b.X, b.Y, b.W, b.H, fg)
}

// ButtonGroup is a row of mutually exclusive toggle buttons.
type ButtonGroup struct {
	X, Y     int
	Options  []string
	Selected int
	ButtonW  int
	ButtonH  int
	OnChange func(int)
	buttons  []*Button
}

// NewButtonGroup lays out one button per option.
func NewButtonGroup(x, y int, options []string, selected, buttonW, buttonH int) *ButtonGroup {
	bg := &ButtonGroup{
		X: x, Y: y,
		Options:  options,
		Selected: selected,
		ButtonW:  buttonW,
		ButtonH:  buttonH,
	}
	for i, label := range options {
		bg.buttons = append(bg.buttons, &Button{
			X: x + i*buttonW, Y: y, W: buttonW, H: buttonH,
			Label: label,
		})
	}
	return bg
}

// Update selects the clicked option. It returns true when the selection
// changed.
func (bg *ButtonGroup) Update(input *InputHandler) bool {
	changed := false
	for i, b := range bg.buttons {
		if b.Update(input) && i != bg.Selected {
			bg.Selected = i
			changed = true
		}
	}
	if changed && bg.OnChange != nil {
		bg.OnChange(bg.Selected)
	}
	return changed
}

func (bg *ButtonGroup) Draw(screen *ebiten.Image) {
	for i, b := range bg.buttons {
		b.active = i == bg.Selected
		b.Draw(screen)
	}
}

// TextInput is a single-line text field.
type TextInput struct {
	X, Y, W, H  int
	Value       string
	Placeholder string
	MaxLength   int
	focused     bool
	cursorBlink int
}

// NewTextInput creates a focused text field.
func NewTextInput(x, y, w, h int, placeholder string, maxLen int) *TextInput {
	return &TextInput{
		X: x, Y: y, W: w, H: h,
		Placeholder: placeholder,
		MaxLength:   maxLen,
		focused:     true,
	}
}

// insert appends printable runes up to MaxLength.
func (ti *TextInput) insert(chars []rune) {
	for _, c := range chars {
		if !unicode.IsPrint(c) {
			continue
		}
		if ti.MaxLength > 0 && utf8.RuneCountInString(ti.Value) >= ti.MaxLength {
			return
		}
		ti.Value += string(c)
	}
}

// backspace removes the last rune.
func (ti *TextInput) backspace() {
	if ti.Value == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(ti.Value)
	ti.Value = ti.Value[:len(ti.Value)-size]
}

// Update edits the value while the field has focus.
func (ti *TextInput) Update(input *InputHandler) {
	if input.IsLeftJustPressed() {
		ti.focused = input.IsInBounds(ti.X, ti.Y, ti.W, ti.H)
	}
	if !ti.focused {
		return
	}
	ti.cursorBlink = (ti.cursorBlink + 1) % 60
	ti.insert(input.InputChars())
	if isKeyRepeated(ebiten.KeyBackspace) {
		ti.backspace()
	}
}

// Draw renders the field with its cursor.
func (ti *TextInput) Draw(screen *ebiten.Image) {
	border := widgetBorder
	if ti.focused {
		border = accentColor
	}
	vector.DrawFilledRect(screen, float32(ti.X), float32(ti.Y), float32(ti.W), float32(ti.H), widgetBg, false)
	vector.StrokeRect(screen, float32(ti.X), float32(ti.Y), float32(ti.W), float32(ti.H), 2, border, false)

	face := regularFace(defaultFontSize + 2)
	if face == nil {
		return
	}
	textX := float64(ti.X + 10)
	midY := float64(ti.Y + ti.H/2)

	s, c := ti.Value, color.Color(textPrimary)
	if s == "" {
		s, c = ti.Placeholder, inputPlaceholder
	}
	_, h := measureText(s, face)
	drawText(screen, s, face, textX, midY-h/2, c)

	if ti.focused && ti.cursorBlink < 30 {
		w, _ := measureText(ti.Value, face)
		vector.DrawFilledRect(screen, float32(textX+w+2), float32(ti.Y+8), 2, float32(ti.H-16), textPrimary, false)
	}
}

// drawDivider draws a horizontal rule.
func drawDivider(screen *ebiten.Image, x, y, w int) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), 1, dividerColor, false)
}

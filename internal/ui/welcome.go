package ui

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/chessrules/internal/storage"
)

// Welcome screen dimensions
const (
	WelcomeWidth  = 400
	WelcomeHeight = 340
	WelcomePadX   = 32
	WelcomePadY   = 24
)

var welcomeShade = color.RGBA{0, 0, 0, 170}

// WelcomeScreen asks for the player's name and side on first launch.
type WelcomeScreen struct {
	visible bool
	x, y    int

	nameInput *TextInput
	colorTabs *ButtonGroup
	startBtn  *Button

	onComplete func(name string, c storage.PlayerColor)
}

// NewWelcomeScreen creates a hidden welcome screen centered on the window.
func NewWelcomeScreen() *WelcomeScreen {
	ws := &WelcomeScreen{
		x: (ScreenWidth - WelcomeWidth) / 2,
		y: (ScreenHeight - WelcomeHeight) / 2,
	}
	contentX := ws.x + WelcomePadX
	contentW := WelcomeWidth - WelcomePadX*2

	ws.nameInput = NewTextInput(contentX, ws.y+120, contentW, 40, "Enter your name", 20)
	ws.colorTabs = NewButtonGroup(contentX, ws.y+200, []string{"Play White", "Play Black"}, 0, contentW/2, TabHeight)

	btnW, btnH := 160, 44
	ws.startBtn = &Button{
		X: ws.x + (WelcomeWidth-btnW)/2, Y: ws.y + WelcomeHeight - WelcomePadY - btnH,
		W: btnW, H: btnH,
		Label:   "Start Playing",
		OnClick: ws.handleStart,
	}
	return ws
}

// Show opens the screen. onComplete receives the entered name and side.
func (ws *WelcomeScreen) Show(onComplete func(name string, c storage.PlayerColor)) {
	ws.visible = true
	ws.onComplete = onComplete
	ws.nameInput.Value = ""
	ws.colorTabs.Selected = 0
}

// IsVisible returns true if the screen is visible.
func (ws *WelcomeScreen) IsVisible() bool {
	return ws.visible
}

// playerName trims the entered name, defaulting to "Player".
func playerName(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "Player"
	}
	return s
}

func (ws *WelcomeScreen) handleStart() {
	ws.visible = false
	if ws.onComplete != nil {
		ws.onComplete(playerName(ws.nameInput.Value), storage.PlayerColor(ws.colorTabs.Selected))
	}
}

// Update handles input while visible. It returns true when the screen
// consumed the frame's input.
func (ws *WelcomeScreen) Update(input *InputHandler) bool {
	if !ws.visible {
		return false
	}
	if IsKeyJustPressed(ebiten.KeyEnter) {
		ws.handleStart()
		return true
	}
	ws.nameInput.Update(input)
	ws.colorTabs.Update(input)
	ws.startBtn.Update(input)
	return true
}

// Draw renders the dialog over a shaded window.
func (ws *WelcomeScreen) Draw(screen *ebiten.Image) {
	if !ws.visible {
		return
	}
	vector.DrawFilledRect(screen, 0, 0, ScreenWidth, ScreenHeight, welcomeShade, false)
	vector.DrawFilledRect(screen, float32(ws.x), float32(ws.y), WelcomeWidth, WelcomeHeight, panelBg, false)
	vector.StrokeRect(screen, float32(ws.x), float32(ws.y), WelcomeWidth, WelcomeHeight, 1, buttonBorder, false)

	drawCenteredText(screen, "Welcome to Chess", titleFace(), ws.x, ws.y+WelcomePadY, WelcomeWidth, 30, textPrimary)
	drawCenteredText(screen, "What should we call you?", regularFace(defaultFontSize), ws.x, ws.y+70, WelcomeWidth, 24, textSecondary)

	ws.nameInput.Draw(screen)
	ws.colorTabs.Draw(screen)
	ws.startBtn.Draw(screen)
}

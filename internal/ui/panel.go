package ui

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/chessrules/internal/storage"
)

// Panel layout
const (
	PanelPadding  = 20
	ButtonHeight  = 36
	TabHeight     = 30
	SectionLabelH = 20
	RowHeight     = 22
	statusBarH    = 70
)

// Panel is the side panel with the game controls and move history.
type Panel struct {
	game *Game

	newGameBtn *Button
	undoBtn    *Button
	flipBtn    *Button
	saveBtn    *Button
	modeTabs   *ButtonGroup
	colorTabs  *ButtonGroup
	diffTabs   *ButtonGroup

	scrollY int
}

// NewPanel builds the panel for g.
func NewPanel(g *Game) *Panel {
	p := &Panel{game: g}

	x := BoardSize + PanelPadding
	w := PanelWidth - PanelPadding*2
	half := (w - 8) / 2
	y := PanelPadding + 28

	p.newGameBtn = &Button{X: x, Y: y, W: half, H: ButtonHeight, Label: "New Game", OnClick: g.NewGameAction}
	p.undoBtn = &Button{X: x + half + 8, Y: y, W: half, H: ButtonHeight, Label: "Undo", OnClick: g.UndoAction}
	y += ButtonHeight + 8
	p.flipBtn = &Button{X: x, Y: y, W: half, H: ButtonHeight, Label: "Flip Board", OnClick: g.FlipAction}
	p.saveBtn = &Button{X: x + half + 8, Y: y, W: half, H: ButtonHeight, Label: "Save Game", OnClick: g.SaveAction}
	y += ButtonHeight + 16 + SectionLabelH

	p.modeTabs = NewButtonGroup(x, y, []string{"vs Human", "vs Computer"}, int(g.prefs.GameMode), w/2, TabHeight)
	p.modeTabs.OnChange = func(i int) { g.SetMode(storage.GameMode(i)) }
	y += TabHeight + 8 + SectionLabelH

	p.colorTabs = NewButtonGroup(x, y, []string{"White", "Black"}, int(g.prefs.PlayerColor), w/2, TabHeight)
	p.colorTabs.OnChange = func(i int) { g.SetPlayerColor(storage.PlayerColor(i)) }
	y += TabHeight + 8 + SectionLabelH

	p.diffTabs = NewButtonGroup(x, y, []string{"Easy", "Medium", "Hard"}, int(g.prefs.Difficulty), w/3, TabHeight)
	p.diffTabs.OnChange = func(i int) { g.SetDifficulty(storage.Difficulty(i)) }

	return p
}

func (p *Panel) historyTop() int {
	return p.diffTabs.Y + TabHeight + 16
}

// HandleInput updates the controls. It returns true when the panel used
// the click.
func (p *Panel) HandleInput(input *InputHandler) bool {
	vsComputer := p.game.prefs.GameMode == storage.ModeHumanVsComputer
	p.saveBtn.Disabled = p.game.store == nil
	p.colorTabs.Selected = int(p.game.prefs.PlayerColor)

	used := false
	for _, b := range []*Button{p.newGameBtn, p.undoBtn, p.flipBtn, p.saveBtn} {
		used = b.Update(input) || used
	}
	used = p.modeTabs.Update(input) || used
	if vsComputer {
		used = p.colorTabs.Update(input) || used
		used = p.diffTabs.Update(input) || used
	}

	mx, my := input.MousePosition()
	if _, wheelY := ebiten.Wheel(); wheelY != 0 && mx >= BoardSize && my >= p.historyTop() {
		p.scrollY -= int(wheelY * RowHeight)
	}
	return used
}

// Draw renders the panel.
func (p *Panel) Draw(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, BoardSize, 0, PanelWidth, ScreenHeight, panelBg, false)

	x := BoardSize + PanelPadding
	w := PanelWidth - PanelPadding*2
	drawText(screen, "Chess", titleFace(), float64(x), PanelPadding-4, textPrimary)
	if name := p.game.prefs.Username; name != "" {
		face := regularFace(defaultFontSize)
		nw, _ := measureText(name, face)
		drawText(screen, name, face, float64(x+w)-nw, PanelPadding, textSecondary)
	}

	for _, b := range []*Button{p.newGameBtn, p.undoBtn, p.flipBtn, p.saveBtn} {
		b.Draw(screen)
	}

	p.sectionLabel(screen, "Mode", p.modeTabs.Y)
	p.modeTabs.Draw(screen)
	if p.game.prefs.GameMode == storage.ModeHumanVsComputer {
		p.sectionLabel(screen, "Play as", p.colorTabs.Y)
		p.colorTabs.Draw(screen)
		p.sectionLabel(screen, "Difficulty", p.diffTabs.Y)
		p.diffTabs.Draw(screen)
	}

	top := p.historyTop()
	drawDivider(screen, x, top-8, w)
	p.sectionLabel(screen, "Moves", top+SectionLabelH)
	p.drawMoveHistory(screen, top+SectionLabelH+4)
	p.drawStatusBar(screen)
}

func (p *Panel) sectionLabel(screen *ebiten.Image, label string, tabY int) {
	drawText(screen, label, regularFace(defaultFontSize-2), float64(BoardSize+PanelPadding), float64(tabY-SectionLabelH), textMuted)
}

// moveRows pairs SAN moves into numbered rows: "1. e4 e5".
func moveRows(san []string) []string {
	var rows []string
	for i := 0; i < len(san); i += 2 {
		row := fmt.Sprintf("%d. %s", i/2+1, san[i])
		if i+1 < len(san) {
			row += " " + san[i+1]
		}
		rows = append(rows, row)
	}
	return rows
}

func (p *Panel) drawMoveHistory(screen *ebiten.Image, startY int) {
	face := regularFace(defaultFontSize)
	rows := moveRows(p.game.sanHistory)
	bottom := ScreenHeight - statusBarH - 10
	visible := max((bottom-startY)/RowHeight, 1)

	// Follow the newest move unless the player scrolled back.
	maxScroll := max(len(rows)-visible, 0) * RowHeight
	p.scrollY = max(0, min(p.scrollY, maxScroll))
	first := (maxScroll - p.scrollY) / RowHeight

	x := BoardSize + PanelPadding
	w := PanelWidth - PanelPadding*2
	for i := first; i < len(rows) && i < first+visible; i++ {
		y := startY + (i-first)*RowHeight
		if i%2 == 1 {
			vector.DrawFilledRect(screen, float32(x-4), float32(y), float32(w+8), RowHeight, moveRowAlt, false)
		}
		drawText(screen, rows[i], face, float64(x), float64(y+3), textSecondary)
	}
}

func (p *Panel) drawStatusBar(screen *ebiten.Image) {
	x := BoardSize + PanelPadding
	y := ScreenHeight - statusBarH
	drawDivider(screen, x, y-10, PanelWidth-PanelPadding*2)

	face := regularFace(defaultFontSize)
	status, c := p.game.statusLine()
	drawText(screen, status, face, float64(x), float64(y), c)
	if stats := p.game.stats; stats != nil {
		drawText(screen, statsLine(stats), face, float64(x), float64(y+24), textMuted)
	}
}

// statsLine summarizes the saved statistics.
func statsLine(s *storage.GameStats) string {
	parts := []string{
		fmt.Sprintf("Won %d", s.Wins),
		fmt.Sprintf("Lost %d", s.Losses),
		fmt.Sprintf("Drawn %d", s.Draws),
	}
	if s.GamesPlayed > 0 {
		parts = append(parts, fmt.Sprintf("(%.0f%%)", s.GetWinRate()))
	}
	return strings.Join(parts, "  ")
}

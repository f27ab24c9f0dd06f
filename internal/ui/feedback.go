package ui

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
)

// InvalidMoveReason represents why a move was rejected.
type InvalidMoveReason int

const (
	ReasonUnknown InvalidMoveReason = iota
	ReasonWouldLeaveKingInCheck
	ReasonBlockedByOwnPiece
	ReasonInvalidPieceMovement
	ReasonNotYourTurn
)

// Message returns the text shown to the player.
func (r InvalidMoveReason) Message() string {
	switch r {
	case ReasonWouldLeaveKingInCheck:
		return "Illegal move: king would be in check"
	case ReasonBlockedByOwnPiece:
		return "Square occupied by your piece"
	case ReasonInvalidPieceMovement:
		return "Invalid move for this piece"
	case ReasonNotYourTurn:
		return "Not your turn"
	default:
		return "Invalid move"
	}
}

// reasonFor explains why from-to is not legal in pos.
func reasonFor(pos *board.Position, from, to board.Square) InvalidMoveReason {
	piece := pos.PieceAt(from)
	switch {
	case piece == board.NoPiece:
		return ReasonUnknown
	case piece.Color() != pos.SideToMove:
		return ReasonNotYourTurn
	case pos.PieceAt(to) != board.NoPiece && pos.PieceAt(to).Color() == piece.Color():
		return ReasonBlockedByOwnPiece
	case !pos.IsPseudoLegal(from, to):
		return ReasonInvalidPieceMovement
	case pos.LeavesKingInCheck(from, to):
		return ReasonWouldLeaveKingInCheck
	}
	return ReasonUnknown
}

// ToastType represents the type of toast notification.
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastWarning
	ToastError
	ToastSuccess
)

// Toast is a short notification drawn over the board.
type Toast struct {
	Message   string
	Type      ToastType
	StartTime time.Time
	Duration  time.Duration
}

// ToastManager keeps the most recent toasts.
type ToastManager struct {
	toasts   []*Toast
	maxStack int
	now      func() time.Time
}

// NewToastManager creates a new toast manager.
func NewToastManager() *ToastManager {
	return &ToastManager{maxStack: 3, now: time.Now}
}

// Show adds a toast, dropping the oldest beyond the stack limit.
func (tm *ToastManager) Show(message string, toastType ToastType, duration time.Duration) {
	tm.toasts = append(tm.toasts, &Toast{
		Message:   message,
		Type:      toastType,
		StartTime: tm.now(),
		Duration:  duration,
	})
	if len(tm.toasts) > tm.maxStack {
		tm.toasts = tm.toasts[len(tm.toasts)-tm.maxStack:]
	}
}

// Update removes expired toasts.
func (tm *ToastManager) Update() {
	now := tm.now()
	active := tm.toasts[:0]
	for _, t := range tm.toasts {
		if now.Sub(t.StartTime) < t.Duration {
			active = append(active, t)
		}
	}
	tm.toasts = active
}

// Messages returns the visible messages, oldest first.
func (tm *ToastManager) Messages() []string {
	out := make([]string, len(tm.toasts))
	for i, t := range tm.toasts {
		out[i] = t.Message
	}
	return out
}

func toastColors(t ToastType, alpha float64) (bg, fg color.RGBA) {
	a := func(v float64) uint8 { return uint8(v * alpha) }
	switch t {
	case ToastWarning:
		return color.RGBA{180, 140, 20, a(220)}, color.RGBA{40, 30, 0, a(255)}
	case ToastError:
		return color.RGBA{180, 50, 50, a(220)}, color.RGBA{255, 255, 255, a(255)}
	case ToastSuccess:
		return color.RGBA{50, 150, 50, a(220)}, color.RGBA{255, 255, 255, a(255)}
	default:
		return color.RGBA{50, 100, 150, a(220)}, color.RGBA{255, 255, 255, a(255)}
	}
}

// Draw renders the toasts stacked from the top of the board.
func (tm *ToastManager) Draw(screen *ebiten.Image) {
	face := regularFace(defaultFontSize)
	if face == nil {
		return
	}

	const (
		padding  = 12.0
		fadeTime = 0.2
	)
	y := 50.0
	now := tm.now()
	for _, t := range tm.toasts {
		elapsed := now.Sub(t.StartTime).Seconds()
		duration := t.Duration.Seconds()
		alpha := 1.0
		if elapsed < fadeTime {
			alpha = elapsed / fadeTime
		} else if elapsed > duration-fadeTime {
			alpha = (duration - elapsed) / fadeTime
		}
		alpha = max(0, min(1, alpha))
		bg, fg := toastColors(t.Type, alpha)

		w, h := measureText(t.Message, face)
		boxW, boxH := w+padding*2, h+padding*2
		x := float64(BoardSize)/2 - boxW/2
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(boxW), float32(boxH), bg, false)

		op := &text.DrawOptions{}
		op.GeoM.Translate(x+padding, y+padding)
		op.ColorScale.ScaleWithColor(fg)
		text.Draw(screen, t.Message, face, op)

		y += boxH + 8
	}
}

type shake struct {
	square    board.Square
	start     time.Time
	duration  time.Duration
	intensity float64
}

type flash struct {
	square   board.Square
	start    time.Time
	duration time.Duration
	color    color.RGBA
}

// AnimationManager runs piece shakes and square flashes.
type AnimationManager struct {
	shakes  []shake
	flashes []flash
	now     func() time.Time
}

// NewAnimationManager creates a new animation manager.
func NewAnimationManager() *AnimationManager {
	return &AnimationManager{now: time.Now}
}

// StartShake shakes the piece on sq.
func (am *AnimationManager) StartShake(sq board.Square) {
	am.shakes = append(am.shakes, shake{square: sq, start: am.now(), duration: 300 * time.Millisecond, intensity: 8})
}

// StartFlash fades a colored overlay on sq.
func (am *AnimationManager) StartFlash(sq board.Square, c color.RGBA) {
	am.flashes = append(am.flashes, flash{square: sq, start: am.now(), duration: 400 * time.Millisecond, color: c})
}

// Update removes expired animations.
func (am *AnimationManager) Update() {
	now := am.now()
	shakes := am.shakes[:0]
	for _, s := range am.shakes {
		if now.Sub(s.start) < s.duration {
			shakes = append(shakes, s)
		}
	}
	am.shakes = shakes

	flashes := am.flashes[:0]
	for _, f := range am.flashes {
		if now.Sub(f.start) < f.duration {
			flashes = append(flashes, f)
		}
	}
	am.flashes = flashes
}

// ShakeOffset returns the horizontal displacement of the piece on sq, a
// damped sine.
func (am *AnimationManager) ShakeOffset(sq board.Square) (float64, float64) {
	for _, s := range am.shakes {
		if s.square != sq {
			continue
		}
		progress := am.now().Sub(s.start).Seconds() / s.duration.Seconds()
		if progress >= 1 {
			return 0, 0
		}
		amplitude := s.intensity * math.Exp(-5*progress)
		return amplitude * math.Sin(40*progress), 0
	}
	return 0, 0
}

// DrawFlashes renders the flash overlays.
func (am *AnimationManager) DrawFlashes(screen *ebiten.Image, r *Renderer) {
	now := am.now()
	for _, f := range am.flashes {
		progress := now.Sub(f.start).Seconds() / f.duration.Seconds()
		if progress < 1 {
			r.DrawFlash(screen, f.square, f.color, 1-progress)
		}
	}
}

// FeedbackManager turns game events into toasts, animations and sounds.
type FeedbackManager struct {
	toasts     *ToastManager
	animations *AnimationManager
	audio      *AudioManager
}

// NewFeedbackManager creates a new feedback manager.
func NewFeedbackManager() *FeedbackManager {
	return &FeedbackManager{
		toasts:     NewToastManager(),
		animations: NewAnimationManager(),
		audio:      NewAudioManager(),
	}
}

func (fm *FeedbackManager) Update() {
	fm.toasts.Update()
	fm.animations.Update()
}

// Draw renders flashes over the board and toasts over everything.
func (fm *FeedbackManager) Draw(screen *ebiten.Image, r *Renderer) {
	fm.animations.DrawFlashes(screen, r)
	fm.toasts.Draw(screen)
}

// Animations returns the animation manager for the renderer.
func (fm *FeedbackManager) Animations() *AnimationManager {
	return fm.animations
}

// Toast shows a plain message.
func (fm *FeedbackManager) Toast(message string, t ToastType) {
	fm.toasts.Show(message, t, 2*time.Second)
}

// OnInvalidMove shakes the piece, flashes the target and says why.
func (fm *FeedbackManager) OnInvalidMove(from, to board.Square, reason InvalidMoveReason) {
	fm.toasts.Show(reason.Message(), ToastWarning, 2*time.Second)
	fm.animations.StartShake(from)
	fm.animations.StartFlash(to, color.RGBA{255, 80, 80, 150})
	fm.audio.Play(SoundInvalid)
}

// OnMoveMade plays the sound for m.
func (fm *FeedbackManager) OnMoveMade(m board.Move) {
	switch {
	case m.IsPromotion():
		fm.audio.Play(SoundPromote)
	case m.IsCastling():
		fm.audio.Play(SoundCastle)
	case m.IsCapture():
		fm.audio.Play(SoundCapture)
	default:
		fm.audio.Play(SoundMove)
	}
}

// OnCheck announces a check.
func (fm *FeedbackManager) OnCheck() {
	fm.toasts.Show("Check!", ToastWarning, 2*time.Second)
	fm.audio.Play(SoundCheck)
}

// OnGameOver announces the end of the game.
func (fm *FeedbackManager) OnGameOver(status game.Status, result string) {
	fm.toasts.Show(gameOverMessage(status, result), ToastSuccess, 5*time.Second)
	fm.audio.Play(SoundGameEnd)
}

func gameOverMessage(status game.Status, result string) string {
	if status == game.Checkmate {
		winner := board.White
		if result == "0-1" {
			winner = board.Black
		}
		return fmt.Sprintf("Checkmate! %s wins", winner)
	}
	return fmt.Sprintf("Draw by %s", status)
}

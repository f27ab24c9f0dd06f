package ui

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/engine"
	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/storage"
)

// UI Constants
const (
	ScreenWidth  = 960
	ScreenHeight = 640
	BoardSize    = 640
	SquareSize   = BoardSize / 8
	PanelWidth   = ScreenWidth - BoardSize
)

var errNoStorage = errors.New("storage not available")

// searchResult is a finished background search. gen ties it to the game
// state it was started from.
type searchResult struct {
	move board.Move
	gen  int
	hint bool
}

// Game implements ebiten.Game on top of a game.Game.
type Game struct {
	game       *game.Game
	sanHistory []string
	lastMove   board.Move

	// Board interaction
	selected   board.Square
	targets    []int
	dragging   bool
	dragPiece  board.Piece
	dragSquare board.Square
	picker     *PromotionPicker

	// Persistence
	store    *storage.Storage
	prefs    *storage.UserPreferences
	stats    *storage.GameStats
	gameID   string
	started  time.Time
	recorded bool

	// Components
	renderer *Renderer
	input    *InputHandler
	panel    *Panel
	feedback *FeedbackManager
	welcome  *WelcomeScreen

	// Background searches
	results     chan searchResult
	searchGen   int
	aiThinking  bool
	hintRunning bool
	hint        board.Move
}

// NewGame creates the window's game with a fresh board.
func NewGame() *Game {
	g := &Game{
		game:       game.NewGame(),
		selected:   board.NoSquare,
		dragSquare: board.NoSquare,
		prefs:      storage.DefaultPreferences(),
		started:    time.Now(),
		renderer:   NewRenderer(SquareSize),
		input:      NewInputHandler(),
		feedback:   NewFeedbackManager(),
		welcome:    NewWelcomeScreen(),
		results:    make(chan searchResult, 2),
	}

	var err error
	g.store, err = storage.NewStorage()
	if err != nil {
		log.Printf("Warning: Failed to initialize storage: %v", err)
		g.store = nil
	}

	g.loadPreferences()
	g.panel = NewPanel(g)
	g.renderer.SetFlipped(g.flipForPlayer())
	g.checkFirstLaunch()
	g.maybeStartAI()
	return g
}

// Close releases the database.
func (g *Game) Close() {
	if g.store != nil {
		if err := g.store.Close(); err != nil {
			log.Printf("Warning: Failed to close storage: %v", err)
		}
	}
}

func (g *Game) loadPreferences() {
	if g.store == nil {
		return
	}
	prefs, err := g.store.LoadPreferences()
	if err != nil {
		log.Printf("Warning: Failed to load preferences: %v", err)
	} else {
		g.prefs = prefs
	}
	stats, err := g.store.LoadStats()
	if err != nil {
		log.Printf("Warning: Failed to load stats: %v", err)
		return
	}
	g.stats = stats
}

func (g *Game) savePreferences() {
	if g.store == nil {
		return
	}
	g.prefs.LastPlayed = time.Now()
	if err := g.store.SavePreferences(g.prefs); err != nil {
		log.Printf("Warning: Failed to save preferences: %v", err)
	}
}

func (g *Game) checkFirstLaunch() {
	if g.store == nil {
		return
	}
	first, err := g.store.IsFirstLaunch()
	if err != nil {
		log.Printf("Warning: Failed to check first launch: %v", err)
		return
	}
	if !first {
		return
	}
	g.welcome.Show(func(name string, c storage.PlayerColor) {
		g.prefs.Username = name
		g.prefs.PlayerColor = c
		g.savePreferences()
		if err := g.store.MarkFirstLaunchComplete(); err != nil {
			log.Printf("Warning: Failed to mark first launch complete: %v", err)
		}
		g.renderer.SetFlipped(g.flipForPlayer())
		g.maybeStartAI()
	})
}

// Update advances one frame.
func (g *Game) Update() error {
	g.input.Update()
	g.feedback.Update()
	g.checkSearchResults()

	if g.welcome.Update(g.input) {
		return nil
	}

	if g.picker != nil {
		g.updatePicker()
		return nil
	}

	g.handleShortcuts()
	if !g.panel.HandleInput(g.input) {
		g.handleBoardInput()
	}
	g.updateCursor()
	return nil
}

func (g *Game) handleShortcuts() {
	switch {
	case IsKeyJustPressed(ebiten.KeyN):
		g.NewGameAction()
	case IsKeyJustPressed(ebiten.KeyU), IsKeyJustPressed(ebiten.KeyBackspace):
		g.UndoAction()
	case IsKeyJustPressed(ebiten.KeyF):
		g.FlipAction()
	case IsKeyJustPressed(ebiten.KeyH):
		g.startHint()
	case IsKeyJustPressed(ebiten.KeyEscape):
		g.clearSelection()
	}
}

func (g *Game) updateCursor() {
	shape := ebiten.CursorShapeDefault
	mx, my := g.input.MousePosition()
	if g.dragging {
		shape = ebiten.CursorShapeMove
	} else if sq := g.renderer.screenToSquare(mx, my); sq != board.NoSquare && g.canMove() {
		if p := g.game.Position().PieceAt(sq); p != board.NoPiece && p.Color() == g.game.CurrentTurn() {
			shape = ebiten.CursorShapePointer
		}
	}
	ebiten.SetCursorShape(shape)
}

// Draw renders one frame.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.renderer.theme.Background)

	r := g.renderer
	r.DrawBoard(screen)
	r.DrawHighlights(screen, g.selected, g.targets, g.lastMove)
	if g.hint != board.NoMove {
		r.highlightSquare(screen, g.hint.From(), r.theme.HintColor)
		r.highlightSquare(screen, g.hint.To(), r.theme.HintColor)
	}
	if turn := g.game.CurrentTurn(); g.game.IsInCheck(turn) {
		r.DrawCheck(screen, g.game.Position().KingSquare(turn))
	}

	skip := board.NoSquare
	if g.dragging {
		skip = g.dragSquare
	}
	r.DrawPieces(screen, g.game.Position(), skip, g.feedback.Animations())
	if g.dragging {
		mx, my := g.input.MousePosition()
		r.DrawDraggedPiece(screen, g.dragPiece, mx, my)
	}

	if g.picker != nil {
		g.picker.Draw(screen, r)
	}
	g.feedback.Draw(screen, r)
	g.panel.Draw(screen)
	g.welcome.Draw(screen)
}

// Layout keeps a fixed logical size; Ebitengine scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// humanColor is the side the player plays against the computer.
func (g *Game) humanColor() board.Color {
	if g.prefs.PlayerColor == storage.ColorBlack {
		return board.Black
	}
	return board.White
}

func (g *Game) vsComputer() bool {
	return g.prefs.GameMode == storage.ModeHumanVsComputer
}

func (g *Game) flipForPlayer() bool {
	return g.vsComputer() && g.humanColor() == board.Black
}

// canMove reports whether a human may move now.
func (g *Game) canMove() bool {
	if g.aiThinking || g.picker != nil || g.game.Status().IsOver() {
		return false
	}
	return !g.vsComputer() || g.game.CurrentTurn() == g.humanColor()
}

func (g *Game) handleBoardInput() {
	if !g.canMove() {
		g.dragging = false
		return
	}
	mx, my := g.input.MousePosition()
	sq := g.renderer.screenToSquare(mx, my)

	if g.input.IsLeftJustPressed() && sq != board.NoSquare {
		p := g.game.Position().PieceAt(sq)
		own := p != board.NoPiece && p.Color() == g.game.CurrentTurn()
		switch {
		case g.selected != board.NoSquare && sq != g.selected && !own:
			g.tryMove(g.selected, sq)
		case g.selected != board.NoSquare && own && castlingTarget(g.game.Position(), g.selected, sq) != sq:
			g.tryMove(g.selected, sq)
		case own:
			g.selectSquare(sq)
			g.dragging = true
			g.dragPiece = p
			g.dragSquare = sq
		default:
			g.clearSelection()
		}
		return
	}

	if g.input.IsLeftJustReleased() && g.dragging {
		g.dragging = false
		if sq != board.NoSquare && sq != g.dragSquare {
			g.tryMove(g.dragSquare, sq)
		}
	}
}

func (g *Game) selectSquare(sq board.Square) {
	g.selected = sq
	g.targets = g.game.LegalTargets(int(sq))
}

func (g *Game) clearSelection() {
	g.selected = board.NoSquare
	g.targets = nil
	g.dragging = false
	g.dragSquare = board.NoSquare
}

// castlingTarget maps a king dropped on its own rook to the castling
// destination. Any other move is returned unchanged.
func castlingTarget(pos *board.Position, from, to board.Square) board.Square {
	king, rook := pos.PieceAt(from), pos.PieceAt(to)
	if king.Type() != board.King || rook.Type() != board.Rook || king.Color() != rook.Color() || from.Rank() != to.Rank() {
		return to
	}
	if to.File() > from.File() {
		return board.NewSquare(6, from.Rank())
	}
	return board.NewSquare(2, from.Rank())
}

func (g *Game) tryMove(from, to board.Square) {
	pos := g.game.Position()
	to = castlingTarget(pos, from, to)
	if !g.game.ApplyMove(int(from), int(to)) {
		g.feedback.OnInvalidMove(from, to, reasonFor(pos, from, to))
		g.clearSelection()
		return
	}
	g.clearSelection()

	if sq, pending := g.game.PendingPromotion(); pending {
		promo := board.Square(sq)
		g.picker = NewPromotionPicker(promo, g.game.Position().PieceAt(promo).Color())
		return
	}
	g.afterMove()
}

func (g *Game) updatePicker() {
	kind, chosen, cancel := g.picker.Update(g.input, g.renderer.geometry)
	switch {
	case cancel:
		g.game.Undo()
		g.picker = nil
	case chosen:
		if g.game.ResolvePromotion(int(g.picker.Square()), kind) {
			g.picker = nil
			g.afterMove()
		}
	}
}

// afterMove refreshes the view after any completed move and hands the
// turn to the computer when it is its move.
func (g *Game) afterMove() {
	g.cancelSearches()
	g.lastMove = g.game.LastMove()
	g.sanHistory = g.game.SANHistory()
	g.feedback.OnMoveMade(g.lastMove)

	if g.checkGameEnd() {
		return
	}
	if g.game.IsInCheck(g.game.CurrentTurn()) {
		g.feedback.OnCheck()
	}
	g.maybeStartAI()
}

// checkGameEnd announces and records a finished game once. It returns
// true when the game is over.
func (g *Game) checkGameEnd() bool {
	status := g.game.Status()
	if !status.IsOver() {
		return false
	}
	if g.recorded {
		return true
	}
	g.recorded = true
	result := g.game.Result()
	g.feedback.OnGameOver(status, result)
	g.recordResult(result)
	g.saveGame()
	return true
}

func (g *Game) recordResult(result string) {
	if g.store == nil || !g.vsComputer() {
		return
	}
	won := (result == "1-0" && g.humanColor() == board.White) || (result == "0-1" && g.humanColor() == board.Black)
	err := g.store.RecordResult(storage.GameResult{
		Won:        won,
		Draw:       result == "1/2-1/2",
		Mode:       g.prefs.GameMode,
		Difficulty: g.prefs.Difficulty,
		Duration:   time.Since(g.started),
	})
	if err != nil {
		log.Printf("Warning: Failed to record result: %v", err)
		return
	}
	if stats, err := g.store.LoadStats(); err == nil {
		g.stats = stats
	}
}

// names returns the White and Black player names for a saved record.
func (g *Game) names() (white, black string) {
	white, black = g.prefs.Username, g.prefs.Username
	if g.vsComputer() {
		if g.humanColor() == board.White {
			black = "computer"
		} else {
			white = "computer"
		}
	}
	return white, black
}

func (g *Game) saveGame() error {
	if g.store == nil {
		return errNoStorage
	}
	startFEN, moves := g.game.Record()
	white, black := g.names()
	rec := &storage.GameRecord{
		ID:       g.gameID,
		White:    white,
		Black:    black,
		StartFEN: startFEN,
		Moves:    moves,
		Result:   g.game.Result(),
	}
	if g.gameID != "" {
		if old, err := g.store.LoadGame(g.gameID); err == nil {
			rec.Created = old.Created
		}
	}
	if err := g.store.SaveGame(rec); err != nil {
		log.Printf("Warning: Failed to save game: %v", err)
		return err
	}
	g.gameID = rec.ID
	return nil
}

// searchEngine returns an engine at the chosen difficulty. Each search
// gets its own so a running search never sees a settings change.
func (g *Game) searchEngine() *engine.Engine {
	eng := engine.NewEngine()
	eng.SetDifficulty(engine.Difficulty(g.prefs.Difficulty))
	return eng
}

func (g *Game) maybeStartAI() {
	if !g.vsComputer() || g.aiThinking || g.picker != nil || g.welcome.IsVisible() {
		return
	}
	if g.game.Status().IsOver() || g.game.CurrentTurn() == g.humanColor() {
		return
	}
	g.startAIThinking()
}

func (g *Game) startAIThinking() {
	g.aiThinking = true
	pos := g.game.Position().Copy()
	gen := g.searchGen
	eng := g.searchEngine()
	go func() {
		g.results <- searchResult{move: eng.Search(pos), gen: gen}
	}()
}

// startHint searches for the player and highlights the suggestion.
func (g *Game) startHint() {
	if !g.canMove() || g.hintRunning {
		return
	}
	g.hintRunning = true
	pos := g.game.Position().Copy()
	gen := g.searchGen
	eng := g.searchEngine()
	go func() {
		g.results <- searchResult{move: eng.Search(pos), gen: gen, hint: true}
	}()
}

// cancelSearches makes every running search stale.
func (g *Game) cancelSearches() {
	g.searchGen++
	g.aiThinking = false
	g.hintRunning = false
	g.hint = board.NoMove
}

func (g *Game) checkSearchResults() {
	for {
		select {
		case r := <-g.results:
			g.handleSearchResult(r)
		default:
			return
		}
	}
}

func (g *Game) handleSearchResult(r searchResult) {
	if r.gen != g.searchGen {
		return
	}
	if r.hint {
		g.hintRunning = false
		if r.move != board.NoMove {
			g.hint = r.move
			g.feedback.Toast("Hint: "+r.move.ToSAN(g.game.Position()), ToastInfo)
		}
		return
	}

	g.aiThinking = false
	if r.move == board.NoMove {
		return
	}
	san := r.move.ToSAN(g.game.Position())
	if !g.game.PlayMove(r.move) {
		log.Printf("Engine returned illegal move %s", r.move)
		return
	}
	log.Printf("Computer played %s", san)
	g.afterMove()
}

// NewGameAction starts a new game from the initial position.
func (g *Game) NewGameAction() {
	g.cancelSearches()
	g.game = game.NewGame()
	g.sanHistory = nil
	g.lastMove = board.NoMove
	g.picker = nil
	g.gameID = ""
	g.recorded = false
	g.started = time.Now()
	g.clearSelection()
	g.renderer.SetFlipped(g.flipForPlayer())
	g.maybeStartAI()
}

// UndoAction takes back the last move. Against the computer it takes back
// the computer's reply as well so the player is to move again.
func (g *Game) UndoAction() {
	g.cancelSearches()
	if g.picker != nil {
		g.game.Undo()
		g.picker = nil
		return
	}
	if !g.game.Undo() {
		g.feedback.Toast("Nothing to undo", ToastInfo)
		return
	}
	if g.vsComputer() && g.game.CurrentTurn() != g.humanColor() {
		g.game.Undo()
	}
	g.lastMove = g.game.LastMove()
	g.sanHistory = g.game.SANHistory()
	g.clearSelection()
	g.maybeStartAI()
}

// FlipAction turns the board around.
func (g *Game) FlipAction() {
	g.renderer.SetFlipped(!g.renderer.Flipped())
}

// SaveAction stores the current game.
func (g *Game) SaveAction() {
	if err := g.saveGame(); err != nil {
		g.feedback.Toast("Could not save game", ToastError)
		return
	}
	g.feedback.Toast("Game saved", ToastSuccess)
}

// SetMode switches between two players and playing the computer.
func (g *Game) SetMode(mode storage.GameMode) {
	g.prefs.GameMode = mode
	g.savePreferences()
	g.cancelSearches()
	g.maybeStartAI()
}

// SetPlayerColor chooses the side the player takes against the computer.
func (g *Game) SetPlayerColor(c storage.PlayerColor) {
	g.prefs.PlayerColor = c
	g.savePreferences()
	g.cancelSearches()
	g.renderer.SetFlipped(g.flipForPlayer())
	g.maybeStartAI()
}

// SetDifficulty sets the computer's strength for the next search.
func (g *Game) SetDifficulty(d storage.Difficulty) {
	g.prefs.Difficulty = d
	g.savePreferences()
}

// statusLine is the text and color of the panel's status bar.
func (g *Game) statusLine() (string, color.RGBA) {
	switch {
	case g.picker != nil:
		return "Choose a promotion piece", textPrimary
	case g.game.Status().IsOver():
		return gameOverMessage(g.game.Status(), g.game.Result()), statusGameOver
	case g.aiThinking:
		return "Computer thinking...", statusThinking
	}
	turn := g.game.CurrentTurn()
	if g.game.IsInCheck(turn) {
		return fmt.Sprintf("%s to move (check)", turn), textPrimary
	}
	return fmt.Sprintf("%s to move", turn), textPrimary
}

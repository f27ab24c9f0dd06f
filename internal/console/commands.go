package console

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/diagram"
	"github.com/hailam/chessrules/internal/engine"
	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/storage"
)

// handleNew starts a new game, from a FEN when one is given.
// Formats:
//   - new
//   - new fen <fen>
func (c *Console) handleNew(args []string) {
	fen := board.StartFEN
	if len(args) > 1 && args[0] == "fen" {
		fen = strings.Join(args[1:], " ")
	}
	if err := c.SetPosition(fen); err != nil {
		c.errorf("%v", err)
		return
	}
	fmt.Fprintf(c.out, "new game, %s to move\n", c.game.CurrentTurn())
	c.maybeComputerMove()
}

// handlePosition sets up a position and replays moves from it.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
func (c *Console) handlePosition(args []string) {
	if len(args) == 0 {
		c.errorf("usage: position startpos|fen <fen> [moves ...]")
		return
	}

	movesAt := len(args)
	for i, arg := range args {
		if arg == "moves" {
			movesAt = i
			break
		}
	}

	var fen string
	switch args[0] {
	case "startpos":
		fen = board.StartFEN
	case "fen":
		fen = strings.Join(args[1:movesAt], " ")
	default:
		c.errorf("unknown position type: %s", args[0])
		return
	}

	var moves []string
	if movesAt < len(args) {
		moves = args[movesAt+1:]
	}
	g, err := game.Replay(fen, moves)
	if err != nil {
		c.errorf("%v", err)
		return
	}
	c.reset(g)
	fmt.Fprintln(c.out, c.game.FEN())
}

// parseMove reads UCI or SAN against the current position. staged is true
// for a four-character UCI pawn move to the last rank, which waits for
// "promote".
func (c *Console) parseMove(s string) (m board.Move, staged bool, err error) {
	if sq, pending := c.game.PendingPromotion(); pending {
		return board.NoMove, false, fmt.Errorf("promotion pending on %s", board.Square(sq))
	}
	pos := c.game.Position()

	if isUCI(s) {
		m, err := board.ParseMove(s, pos)
		if err != nil {
			return board.NoMove, false, err
		}
		if !c.game.IsLegalMove(int(m.From()), int(m.To())) {
			return board.NoMove, false, fmt.Errorf("illegal move: %s", s)
		}
		return m, len(s) == 4 && m.IsPromotion(), nil
	}

	m, err = board.ParseSAN(s, pos)
	return m, false, err
}

// looksLikeMove reports whether s has the shape of a UCI or SAN move.
func looksLikeMove(s string) bool {
	if isUCI(s) {
		return true
	}
	s = strings.TrimRight(s, "+#!?")
	switch s {
	case "O-O", "O-O-O", "0-0", "0-0-0":
		return true
	}
	if i := strings.Index(s, "="); i >= 0 {
		s = s[:i]
	}
	if len(s) < 2 {
		return false
	}
	_, err := board.ParseSquare(s[len(s)-2:])
	return err == nil
}

func isUCI(s string) bool {
	if len(s) != 4 && len(s) != 5 {
		return false
	}
	_, ferr := board.ParseSquare(s[0:2])
	_, terr := board.ParseSquare(s[2:4])
	return ferr == nil && terr == nil
}

func (c *Console) handleMove(s string) {
	m, staged, err := c.parseMove(s)
	if err != nil {
		c.errorf("%v", err)
		return
	}
	c.play(m, staged)
}

func (c *Console) play(m board.Move, staged bool) {
	if staged {
		if !c.game.ApplyMove(int(m.From()), int(m.To())) {
			c.errorf("illegal move: %s", m)
			return
		}
		fmt.Fprintf(c.out, "promotion pending on %s: promote q|r|b|n\n", m.To())
		return
	}

	san := m.ToSAN(c.game.Position())
	if !c.game.PlayMove(m) {
		c.errorf("illegal move: %s", m)
		return
	}
	fmt.Fprintf(c.out, "played %s\n", san)
	c.afterMove()
}

func (c *Console) handlePromote(args []string) {
	sq, pending := c.game.PendingPromotion()
	if !pending {
		c.errorf("no promotion pending")
		return
	}
	if len(args) != 1 || len(args[0]) != 1 {
		c.errorf("usage: promote q|r|b|n")
		return
	}
	kind := board.PieceTypeFromChar(args[0][0])
	if !c.game.ResolvePromotion(sq, kind) {
		c.errorf("invalid promotion piece: %s", args[0])
		return
	}
	fmt.Fprintf(c.out, "promoted to %s\n", kind)
	c.afterMove()
}

// afterMove reports a finished game or lets the computer reply.
func (c *Console) afterMove() {
	if c.checkGameOver() {
		return
	}
	c.maybeComputerMove()
}

func (c *Console) maybeComputerMove() {
	if c.computer == board.NoColor || c.game.CurrentTurn() != c.computer || c.game.Status().IsOver() {
		return
	}
	if _, pending := c.game.PendingPromotion(); pending {
		return
	}
	c.computerMove(c.depth, false)
}

// computerMove searches for the side to move and plays the result.
func (c *Console) computerMove(depth int, info bool) {
	if info {
		c.game.Engine().OnInfo = c.sendInfo
		defer func() { c.game.Engine().OnInfo = nil }()
	}

	start := time.Now()
	m, ok := c.game.BestMoveFull(c.game.CurrentTurn(), depth)
	if !ok {
		c.errorf("no legal move")
		return
	}
	log.Printf("Computer chose %s at depth %d in %v", m, depth, time.Since(start))

	san := m.ToSAN(c.game.Position())
	fmt.Fprintf(c.out, "bestmove %s\n", m)
	if !c.game.PlayMove(m) {
		c.errorf("search returned illegal move %s", m)
		return
	}
	fmt.Fprintf(c.out, "played %s\n", san)
	c.afterMove()
}

// handleGo lets the computer play the side to move.
func (c *Console) handleGo(args []string) {
	if _, pending := c.game.PendingPromotion(); pending {
		c.errorf("promotion pending")
		return
	}
	if st := c.game.Status(); st.IsOver() {
		c.errorf("game over: %s", st)
		return
	}
	c.computerMove(c.parseDepth(args), true)
}

func (c *Console) handleHint(args []string) {
	m, ok := c.game.BestMoveFull(c.game.CurrentTurn(), c.parseDepth(args))
	if !ok {
		c.errorf("no move available")
		return
	}
	fmt.Fprintf(c.out, "hint %s (%s)\n", m.ToSAN(c.game.Position()), m)
}

// sendInfo outputs search progress, one line per scored root move.
func (c *Console) sendInfo(info engine.SearchInfo) {
	var parts []string

	parts = append(parts, fmt.Sprintf("depth %d", info.Depth))

	switch {
	case info.Score >= engine.MateScore:
		parts = append(parts, "score mate white")
	case info.Score <= -engine.MateScore:
		parts = append(parts, "score mate black")
	default:
		parts = append(parts, fmt.Sprintf("score cp %d", info.Score))
	}

	parts = append(parts, fmt.Sprintf("nodes %d", info.Nodes))
	parts = append(parts, fmt.Sprintf("time %d", info.Time.Milliseconds()))
	if info.Move != board.NoMove {
		parts = append(parts, "pv "+info.Move.String())
	}

	fmt.Fprintf(c.out, "info %s\n", strings.Join(parts, " "))
}

func (c *Console) handleUndo() {
	if !c.game.Undo() {
		c.errorf("nothing to undo")
		return
	}
	// Take back the computer's reply too, so the human is to move again.
	if c.computer != board.NoColor && c.game.CurrentTurn() == c.computer {
		c.game.Undo()
	}
	fmt.Fprintln(c.out, c.game.FEN())
}

// checkGameOver prints the result of a finished game and counts it in the
// statistics. It reports whether the game is over.
func (c *Console) checkGameOver() bool {
	st := c.game.Status()
	if !st.IsOver() {
		if c.game.IsInCheck(c.game.CurrentTurn()) {
			fmt.Fprintln(c.out, "check")
		}
		return false
	}
	fmt.Fprintf(c.out, "game over: %s %s\n", st, c.game.Result())
	c.recordResult()
	return true
}

func (c *Console) recordResult() {
	if c.store == nil || c.recorded || c.computer == board.NoColor {
		return
	}
	c.recorded = true

	result := c.game.Result()
	human := c.computer.Other()
	won := (result == "1-0" && human == board.White) || (result == "0-1" && human == board.Black)

	err := c.store.RecordResult(storage.GameResult{
		Won:        won,
		Draw:       result == "1/2-1/2",
		Mode:       storage.ModeHumanVsComputer,
		Difficulty: storage.Difficulty(c.difficulty),
	})
	if err != nil {
		log.Printf("Failed to record result: %v", err)
	}
}

func (c *Console) printStatus() {
	st := c.game.Status()
	fmt.Fprintf(c.out, "status %s result %s turn %s\n", st, c.game.Result(), c.game.CurrentTurn())
	if sq, pending := c.game.PendingPromotion(); pending {
		fmt.Fprintf(c.out, "promotion pending on %s\n", board.Square(sq))
	}
}

// handleHistory prints the moves in numbered SAN.
func (c *Console) handleHistory() {
	sans := c.game.SANHistory()
	if len(sans) == 0 {
		fmt.Fprintln(c.out, "no moves")
		return
	}
	start, err := board.ParseFEN(c.game.StartFEN())
	if err != nil {
		c.errorf("%v", err)
		return
	}

	var sb strings.Builder
	num, side := start.FullMoveNumber, start.SideToMove
	for i, san := range sans {
		switch {
		case side == board.White:
			fmt.Fprintf(&sb, "%d. ", num)
		case i == 0:
			fmt.Fprintf(&sb, "%d... ", num)
		}
		sb.WriteString(san)
		sb.WriteByte(' ')
		if side == board.Black {
			num++
		}
		side = side.Other()
	}
	fmt.Fprintln(c.out, strings.TrimSpace(sb.String()))
}

// handlePerft runs a perft test and prints the per-move breakdown.
func (c *Console) handlePerft(args []string) {
	depth := 1
	if len(args) > 0 {
		if _, err := fmt.Sscanf(args[0], "%d", &depth); err != nil || depth < 0 {
			c.errorf("invalid depth: %s", args[0])
			return
		}
	}

	pos := c.game.Position().Copy()
	start := time.Now()
	divide := pos.Divide(depth)
	elapsed := time.Since(start)

	lines := make([]string, 0, len(divide))
	var nodes int64
	for m, n := range divide {
		lines = append(lines, fmt.Sprintf("%s: %d", m, n))
		nodes += n
	}
	sort.Strings(lines)
	for _, l := range lines {
		fmt.Fprintln(c.out, l)
	}
	if depth == 0 {
		nodes = 1
	}

	fmt.Fprintf(c.out, "Nodes: %d\n", nodes)
	fmt.Fprintf(c.out, "Time: %v\n", elapsed)
	if elapsed > 0 {
		fmt.Fprintf(c.out, "NPS: %.0f\n", float64(nodes)/elapsed.Seconds())
	}
}

func (c *Console) handleDifficulty(args []string) {
	if len(args) != 1 {
		fmt.Fprintf(c.out, "difficulty %s (depth %d)\n", c.difficulty, c.depth)
		return
	}
	d, err := engine.ParseDifficulty(args[0])
	if err != nil {
		c.errorf("%v", err)
		return
	}
	c.SetDifficulty(d)
	fmt.Fprintf(c.out, "difficulty %s (depth %d)\n", d, c.depth)
}

// SetDifficulty sets the engine difficulty and the matching depth.
func (c *Console) SetDifficulty(d engine.Difficulty) {
	c.difficulty = d
	c.game.Engine().SetDifficulty(d)
	c.depth = engine.DifficultySettings[d].Depth
}

func (c *Console) handleComputer(args []string) {
	if len(args) != 1 {
		c.errorf("usage: computer white|black|off")
		return
	}
	switch args[0] {
	case "white":
		c.computer = board.White
	case "black":
		c.computer = board.Black
	case "off":
		c.computer = board.NoColor
		fmt.Fprintln(c.out, "computer off")
		return
	default:
		c.errorf("usage: computer white|black|off")
		return
	}
	fmt.Fprintf(c.out, "computer plays %s\n", c.computer)
	c.maybeComputerMove()
}

// handleDiagram writes a PNG of the current position, highlighting the
// last move.
func (c *Console) handleDiagram(args []string) {
	if len(args) == 0 {
		c.errorf("usage: diagram <file.png> [flip]")
		return
	}
	opts := diagram.Options{
		SquareSize:  64,
		Coordinates: true,
		Flipped:     len(args) > 1 && args[1] == "flip",
	}
	if last := c.game.LastMove(); last != board.NoMove {
		opts.Highlight = []board.Square{last.From(), last.To()}
	}

	f, err := os.Create(args[0])
	if err != nil {
		c.errorf("%v", err)
		return
	}
	defer f.Close()

	if err := diagram.WritePNG(f, c.game.Position(), opts); err != nil {
		c.errorf("%v", err)
		return
	}
	fmt.Fprintf(c.out, "wrote %s\n", args[0])
}

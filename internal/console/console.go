// Package console implements a line-based front end for playing and
// debugging games.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/engine"
	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/storage"
)

// Console reads commands and writes replies. It owns one game at a time.
type Console struct {
	game  *game.Game
	store *storage.Storage // nil when persistence is unavailable
	out   io.Writer

	depth      int
	difficulty engine.Difficulty
	player     string
	computer   board.Color // NoColor when both sides are human

	// Saved record ID of the current game, reused by later saves.
	gameID string
	// Set once the finished game has been counted in the statistics.
	recorded bool
}

// New creates a console writing to out. store may be nil.
func New(out io.Writer, store *storage.Storage) *Console {
	return &Console{
		game:       game.NewGame(),
		store:      store,
		out:        out,
		depth:      engine.DefaultDepth,
		difficulty: engine.Hard,
		player:     "Player",
		computer:   board.NoColor,
	}
}

// Game returns the current game.
func (c *Console) Game() *game.Game {
	return c.game
}

// SetDepth sets the computer's search depth.
func (c *Console) SetDepth(depth int) {
	c.depth = max(depth, 0)
}

// SetPlayerName sets the name saved with game records.
func (c *Console) SetPlayerName(name string) {
	if name != "" {
		c.player = name
	}
}

// SetComputer makes the computer play color after every human move.
// NoColor turns the computer off.
func (c *Console) SetComputer(color board.Color) {
	c.computer = color
}

// SetPosition starts a new game from fen.
func (c *Console) SetPosition(fen string) error {
	g, err := game.NewGameFromFEN(fen)
	if err != nil {
		return err
	}
	c.reset(g)
	return nil
}

func (c *Console) reset(g *game.Game) {
	g.Engine().SetDifficulty(c.difficulty)
	c.game = g
	c.gameID = ""
	c.recorded = false
}

// Start lets the computer open when it has the move.
func (c *Console) Start() {
	c.maybeComputerMove()
}

// Run reads commands from in until "quit" or end of input.
func (c *Console) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if quit := c.Execute(line); quit {
			return nil
		}
	}
	return scanner.Err()
}

// Execute runs one command line. It returns true for "quit".
func (c *Console) Execute(line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "quit", "exit":
		return true
	case "help":
		c.handleHelp()
	case "new":
		c.handleNew(args)
	case "position":
		c.handlePosition(args)
	case "fen":
		fmt.Fprintln(c.out, c.game.FEN())
	case "move":
		if len(args) != 1 {
			c.errorf("usage: move <move>")
			return false
		}
		c.handleMove(args[0])
	case "promote":
		c.handlePromote(args)
	case "go":
		c.handleGo(args)
	case "hint":
		c.handleHint(args)
	case "undo":
		c.handleUndo()
	case "d":
		fmt.Fprint(c.out, c.game.Position().String())
		fmt.Fprintf(c.out, "FEN: %s\n", c.game.FEN())
	case "status":
		c.printStatus()
	case "history":
		c.handleHistory()
	case "eval":
		fmt.Fprintf(c.out, "eval %s\n", engine.ScoreToString(engine.Evaluate(c.game.Position())))
	case "perft":
		c.handlePerft(args)
	case "difficulty":
		c.handleDifficulty(args)
	case "computer":
		c.handleComputer(args)
	case "diagram":
		c.handleDiagram(args)
	case "save":
		c.handleSave(args)
	case "load":
		c.handleLoad(args)
	case "games":
		c.handleGames()
	case "delete":
		c.handleDelete(args)
	default:
		if len(parts) == 1 && looksLikeMove(cmd) {
			c.handleMove(cmd)
			return false
		}
		c.errorf("unknown command: %s", cmd)
	}
	return false
}

func (c *Console) errorf(format string, args ...any) {
	fmt.Fprintf(c.out, "error: "+format+"\n", args...)
}

func (c *Console) handleHelp() {
	fmt.Fprint(c.out, `commands:
  new [fen <fen>]             start a new game
  position startpos|fen <fen> [moves ...]
  move <uci|san>              play a move (the word "move" is optional)
  promote q|r|b|n             finish a pending promotion
  go [depth N]                let the computer play the side to move
  hint [depth N]              show the computer's choice without playing it
  undo                        take back the last move
  d | fen | status | history | eval
  perft N                     count leaf nodes N plies deep
  difficulty easy|medium|hard
  computer white|black|off    choose the side the computer plays
  diagram <file.png> [flip]   write a board diagram
  save [id] | load <id> | games | delete <id>
  quit
`)
}

// parseDepth reads "depth N" from args, falling back to the console depth.
func (c *Console) parseDepth(args []string) int {
	depth := c.depth
	for i := 0; i < len(args); i++ {
		if args[i] == "depth" && i+1 < len(args) {
			if d, err := strconv.Atoi(args[i+1]); err == nil && d >= 0 {
				depth = d
			}
			i++
		}
	}
	return depth
}

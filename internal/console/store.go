package console

import (
	"errors"
	"fmt"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/storage"
)

var errNoStorage = errors.New("storage not available")

func (c *Console) requireStore() bool {
	if c.store == nil {
		c.errorf("%v", errNoStorage)
		return false
	}
	return true
}

// names returns the White and Black names for a saved record.
func (c *Console) names() (white, black string) {
	white, black = c.player, c.player
	switch c.computer {
	case board.White:
		white = "computer"
	case board.Black:
		black = "computer"
	}
	return white, black
}

// handleSave stores the current game, under id when one is given.
func (c *Console) handleSave(args []string) {
	if !c.requireStore() {
		return
	}

	startFEN, moves := c.game.Record()
	white, black := c.names()
	rec := &storage.GameRecord{
		ID:       c.gameID,
		White:    white,
		Black:    black,
		StartFEN: startFEN,
		Moves:    moves,
		Result:   c.game.Result(),
	}
	if len(args) > 0 {
		rec.ID = args[0]
	}
	if rec.ID != "" && rec.ID == c.gameID {
		// Keep the original creation time on re-save.
		if old, err := c.store.LoadGame(rec.ID); err == nil {
			rec.Created = old.Created
		}
	}

	if err := c.store.SaveGame(rec); err != nil {
		c.errorf("save: %v", err)
		return
	}
	c.gameID = rec.ID
	fmt.Fprintf(c.out, "saved %s\n", rec.ID)
}

// handleLoad replays a saved game and makes it current.
func (c *Console) handleLoad(args []string) {
	if !c.requireStore() {
		return
	}
	if len(args) != 1 {
		c.errorf("usage: load <id>")
		return
	}

	rec, err := c.store.LoadGame(args[0])
	if err != nil {
		c.errorf("%v", err)
		return
	}
	g, err := game.Replay(rec.StartFEN, rec.Moves)
	if err != nil {
		c.errorf("replay %s: %v", rec.ID, err)
		return
	}
	c.reset(g)
	c.gameID = rec.ID
	// A finished game was counted when it ended.
	c.recorded = g.Status().IsOver()
	fmt.Fprintf(c.out, "loaded %s: %d moves, %s to move\n", rec.ID, len(rec.Moves), g.CurrentTurn())
}

func (c *Console) handleGames() {
	if !c.requireStore() {
		return
	}
	games, err := c.store.ListGames()
	if err != nil {
		c.errorf("%v", err)
		return
	}
	if len(games) == 0 {
		fmt.Fprintln(c.out, "no saved games")
		return
	}
	for _, rec := range games {
		fmt.Fprintf(c.out, "%s  %s vs %s  %s  %d moves  %s\n",
			rec.ID, rec.White, rec.Black, rec.Result, len(rec.Moves), rec.Updated.Format("2006-01-02 15:04"))
	}
}

func (c *Console) handleDelete(args []string) {
	if !c.requireStore() {
		return
	}
	if len(args) != 1 {
		c.errorf("usage: delete <id>")
		return
	}
	if err := c.store.DeleteGame(args[0]); err != nil {
		c.errorf("%v", err)
		return
	}
	if c.gameID == args[0] {
		c.gameID = ""
	}
	fmt.Fprintf(c.out, "deleted %s\n", args[0])
}

package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/console"
	"github.com/hailam/chessrules/internal/engine"
	"github.com/hailam/chessrules/internal/storage"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	depth      = flag.Int("depth", 0, "search depth for the computer (overrides -difficulty)")
	difficulty = flag.String("difficulty", "", "easy, medium or hard (default from saved preferences)")
	dbDir      = flag.String("db", "", "database directory (default: platform data directory)")
	noDB       = flag.Bool("nodb", false, "run without persistent storage")
	fen        = flag.String("fen", "", "start from this FEN instead of the initial position")
	color      = flag.String("color", "black", "side the computer plays: white, black or none")
)

func main() {
	flag.Parse()

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	store := openStorage()
	if store != nil {
		defer store.Close()
	}

	c := console.New(os.Stdout, store)
	configure(c, store)

	if *fen != "" {
		if err := c.SetPosition(*fen); err != nil {
			log.Fatalf("Invalid FEN: %v", err)
		}
	}

	c.Start()
	if err := c.Run(os.Stdin); err != nil {
		log.Printf("Input error: %v", err)
	}
}

// openStorage opens the game database. The console still works without
// one, so failures are only logged.
func openStorage() *storage.Storage {
	if *noDB {
		return nil
	}

	var (
		store *storage.Storage
		err   error
	)
	if *dbDir != "" {
		store, err = storage.Open(*dbDir)
	} else {
		store, err = storage.NewStorage()
	}
	if err != nil {
		log.Printf("Warning: Failed to initialize storage: %v", err)
		return nil
	}
	return store
}

// configure applies saved preferences, then the command-line flags.
func configure(c *console.Console, store *storage.Storage) {
	d := engine.Hard
	if store != nil {
		prefs, err := store.LoadPreferences()
		if err != nil {
			log.Printf("Warning: Failed to load preferences: %v", err)
		} else {
			c.SetPlayerName(prefs.Username)
			d = engine.Difficulty(prefs.Difficulty)
		}
	}

	if *difficulty != "" {
		parsed, err := engine.ParseDifficulty(*difficulty)
		if err != nil {
			log.Fatal(err)
		}
		d = parsed
	}
	c.SetDifficulty(d)
	if *depth > 0 {
		c.SetDepth(*depth)
	}

	switch *color {
	case "white":
		c.SetComputer(board.White)
	case "black":
		c.SetComputer(board.Black)
	case "none":
		c.SetComputer(board.NoColor)
	default:
		log.Fatalf("Invalid -color %q: want white, black or none", *color)
	}
}

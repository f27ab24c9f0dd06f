package storage

import (
	"errors"
	"os"
	"testing"
	"time"
)

func openTest(t *testing.T) *Storage {
	t.Helper()
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStorage(t *testing.T) {
	t.Run("DefaultPreferences", func(t *testing.T) {
		prefs := DefaultPreferences()
		if prefs.Username != "Player" {
			t.Errorf("Expected username 'Player', got '%s'", prefs.Username)
		}
		if prefs.Difficulty != DifficultyHard {
			t.Errorf("Expected hard difficulty")
		}
		if prefs.PlayerColor != ColorWhite || prefs.GameMode != ModeHumanVsComputer {
			t.Errorf("Expected human as white against the computer")
		}
	})

	t.Run("NewGameStats", func(t *testing.T) {
		stats := NewGameStats()
		if stats.GamesPlayed != 0 {
			t.Errorf("Expected 0 games played")
		}
		if stats.GetWinRate() != 0 {
			t.Errorf("Expected 0 win rate")
		}
	})

	t.Run("WinRate", func(t *testing.T) {
		stats := &GameStats{
			GamesPlayed: 10,
			Wins:        5,
			Losses:      3,
			Draws:       2,
		}
		rate := stats.GetWinRate()
		if rate != 50 {
			t.Errorf("Expected 50%% win rate, got %.2f%%", rate)
		}
	})
}

func TestPreferencesRoundTrip(t *testing.T) {
	s := openTest(t)

	prefs, err := s.LoadPreferences()
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if prefs.Username != "Player" {
		t.Errorf("missing preferences should load defaults, got %+v", prefs)
	}

	prefs.Username = "alice"
	prefs.Difficulty = DifficultyEasy
	prefs.PlayerColor = ColorBlack
	if err := s.SavePreferences(prefs); err != nil {
		t.Fatalf("SavePreferences: %v", err)
	}

	got, err := s.LoadPreferences()
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if got.Username != "alice" || got.Difficulty != DifficultyEasy || got.PlayerColor != ColorBlack {
		t.Errorf("loaded preferences = %+v", got)
	}
}

func TestFirstLaunch(t *testing.T) {
	s := openTest(t)

	first, err := s.IsFirstLaunch()
	if err != nil || !first {
		t.Fatalf("IsFirstLaunch = %v, %v; want true", first, err)
	}
	if err := s.MarkFirstLaunchComplete(); err != nil {
		t.Fatal(err)
	}
	if first, _ := s.IsFirstLaunch(); first {
		t.Error("IsFirstLaunch should be false after marking complete")
	}
}

func TestRecordResult(t *testing.T) {
	s := openTest(t)

	results := []GameResult{
		{Won: true, Mode: ModeHumanVsComputer, Difficulty: DifficultyEasy, Duration: time.Minute},
		{Won: true, Mode: ModeHumanVsComputer, Difficulty: DifficultyHard, Duration: time.Minute},
		{Draw: true, Mode: ModeHumanVsHuman},
		{Mode: ModeHumanVsComputer},
	}
	for _, r := range results {
		if err := s.RecordResult(r); err != nil {
			t.Fatalf("RecordResult: %v", err)
		}
	}

	stats, err := s.LoadStats()
	if err != nil {
		t.Fatalf("LoadStats: %v", err)
	}
	if stats.GamesPlayed != 4 || stats.Wins != 2 || stats.Draws != 1 || stats.Losses != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.LongestWinStrk != 2 || stats.CurrentStreak != 0 {
		t.Errorf("streaks = %d/%d, want 2/0", stats.LongestWinStrk, stats.CurrentStreak)
	}
	if stats.WinsByDiff["easy"] != 1 || stats.WinsByDiff["hard"] != 1 || stats.WinsByMode["hvc"] != 2 {
		t.Errorf("breakdown = %v %v", stats.WinsByDiff, stats.WinsByMode)
	}
	if stats.TotalPlayTime != 2*time.Minute {
		t.Errorf("TotalPlayTime = %v", stats.TotalPlayTime)
	}
}

func TestGameRecords(t *testing.T) {
	s := openTest(t)

	first := &GameRecord{White: "alice", Black: "computer", StartFEN: "start", Moves: []string{"e2e4"}}
	if err := s.SaveGame(first); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}
	if first.ID == "" || first.Result != "*" || first.Created.IsZero() {
		t.Errorf("SaveGame did not fill defaults: %+v", first)
	}

	second := &GameRecord{ID: "named", White: "bob", Moves: []string{"d2d4", "d7d5"}, Result: "1/2-1/2"}
	if err := s.SaveGame(second); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}

	loaded, err := s.LoadGame(first.ID)
	if err != nil {
		t.Fatalf("LoadGame: %v", err)
	}
	if loaded.White != "alice" || len(loaded.Moves) != 1 || loaded.Moves[0] != "e2e4" {
		t.Errorf("loaded = %+v", loaded)
	}

	games, err := s.ListGames()
	if err != nil {
		t.Fatalf("ListGames: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("ListGames returned %d games, want 2", len(games))
	}
	if games[0].ID != "named" {
		t.Errorf("most recent game = %s, want named", games[0].ID)
	}

	if err := s.DeleteGame("named"); err != nil {
		t.Fatalf("DeleteGame: %v", err)
	}
	if _, err := s.LoadGame("named"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("LoadGame after delete = %v, want ErrGameNotFound", err)
	}
	if err := s.DeleteGame("named"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("second DeleteGame = %v, want ErrGameNotFound", err)
	}

	if err := s.SaveGame(&GameRecord{ID: "a/b"}); err == nil {
		t.Error("SaveGame should reject IDs containing '/'")
	}
}

func TestOpenDirectory(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.SaveGame(&GameRecord{ID: "persisted"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if _, err := s.LoadGame("persisted"); err != nil {
		t.Errorf("record did not survive reopen: %v", err)
	}
}

func TestDataPaths(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	dataDir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir failed: %v", err)
	}
	if dataDir == "" {
		t.Error("GetDataDir returned empty path")
	}
	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		t.Errorf("Data directory was not created: %s", dataDir)
	}

	t.Logf("Data directory: %s", dataDir)
}

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const gamePrefix = "game/"

// ErrGameNotFound is returned when no record exists for a game ID.
var ErrGameNotFound = errors.New("game not found")

// GameRecord is a saved game: the starting position and the moves played
// from it in UCI notation.
type GameRecord struct {
	ID       string    `json:"id"`
	White    string    `json:"white"`
	Black    string    `json:"black"`
	StartFEN string    `json:"start_fen"`
	Moves    []string  `json:"moves"`
	Result   string    `json:"result"` // "*", "1-0", "0-1" or "1/2-1/2"
	Created  time.Time `json:"created"`
	Updated  time.Time `json:"updated"`
}

func gameKey(id string) []byte {
	return []byte(gamePrefix + id)
}

// newGameID returns a sortable unique ID derived from the clock.
func newGameID(now time.Time) string {
	return strconv.FormatInt(now.UnixNano(), 36)
}

// SaveGame stores rec, assigning an ID and creation time on first save.
func (s *Storage) SaveGame(rec *GameRecord) error {
	now := time.Now()
	if rec.ID == "" {
		rec.ID = newGameID(now)
	}
	if strings.Contains(rec.ID, "/") {
		return fmt.Errorf("invalid game id %q", rec.ID)
	}
	if rec.Created.IsZero() {
		rec.Created = now
	}
	rec.Updated = now
	if rec.Result == "" {
		rec.Result = "*"
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gameKey(rec.ID), data)
	})
}

// LoadGame returns the record with the given ID.
func (s *Storage) LoadGame(id string) (*GameRecord, error) {
	var rec GameRecord
	found, err := s.getJSON(gamePrefix+id, &rec)
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", id, err)
	}
	if !found {
		return nil, fmt.Errorf("load game %s: %w", id, ErrGameNotFound)
	}
	return &rec, nil
}

// DeleteGame removes the record with the given ID.
func (s *Storage) DeleteGame(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(gameKey(id)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("delete game %s: %w", id, ErrGameNotFound)
			}
			return err
		}
		return txn.Delete(gameKey(id))
	})
}

// ListGames returns every saved game, most recently updated first.
func (s *Storage) ListGames() ([]*GameRecord, error) {
	var games []*GameRecord

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(gamePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			rec := &GameRecord{}
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, rec)
			}); err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			games = append(games, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(games, func(i, j int) bool {
		return games[i].Updated.After(games[j].Updated)
	})
	return games, nil
}

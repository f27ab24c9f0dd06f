package engine

import (
	"fmt"
	"time"

	"github.com/hailam/chessrules/internal/board"
)

// SearchInfo contains information about the current search.
type SearchInfo struct {
	Depth int
	Score int // from White's perspective
	Nodes uint64
	Time  time.Duration
	Move  board.Move // best root move so far
}

// SearchLimits specifies constraints on the search.
type SearchLimits struct {
	Depth int // plies searched below each root move
}

// Difficulty represents the AI difficulty level.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// DefaultDepth is the depth of the computer player at Hard.
const DefaultDepth = 4

// DifficultySettings maps difficulty to search limits.
var DifficultySettings = map[Difficulty]SearchLimits{
	Easy:   {Depth: 2},
	Medium: {Depth: 3},
	Hard:   {Depth: DefaultDepth},
}

// String returns the difficulty name.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseDifficulty parses a difficulty name.
func ParseDifficulty(s string) (Difficulty, error) {
	for d := Easy; d <= Hard; d++ {
		if d.String() == s {
			return d, nil
		}
	}
	return Hard, fmt.Errorf("unknown difficulty %q", s)
}

// Engine is the chess AI engine.
type Engine struct {
	difficulty Difficulty

	// Callbacks
	OnInfo func(SearchInfo)
}

// NewEngine creates a new chess engine at Hard difficulty.
func NewEngine() *Engine {
	return &Engine{difficulty: Hard}
}

// SetDifficulty sets the engine difficulty.
func (e *Engine) SetDifficulty(d Difficulty) {
	e.difficulty = d
}

// Difficulty returns the current difficulty.
func (e *Engine) Difficulty() Difficulty {
	return e.difficulty
}

// Search finds the best move for the side to move.
func (e *Engine) Search(pos *board.Position) board.Move {
	limits, ok := DifficultySettings[e.difficulty]
	if !ok {
		limits = SearchLimits{Depth: DefaultDepth}
	}
	return e.SearchWithLimits(pos, limits)
}

// SearchWithLimits finds the best move for the side to move with specific
// search limits. It returns NoMove when there is no legal move.
func (e *Engine) SearchWithLimits(pos *board.Position, limits SearchLimits) board.Move {
	m, _, _ := e.BestMove(pos, pos.SideToMove, limits.Depth)
	return m
}

// BestMove searches for c at the given depth. pos is restored before
// BestMove returns.
func (e *Engine) BestMove(pos *board.Position, c board.Color, depth int) (board.Move, int, bool) {
	if depth < 0 {
		depth = 0
	}

	s := NewSearcher(pos)
	start := time.Now()

	var onRoot func(RootResult)
	if e.OnInfo != nil {
		best := board.NoMove
		bestScore := 0
		onRoot = func(r RootResult) {
			if best == board.NoMove || (c == board.White && r.Score > bestScore) || (c == board.Black && r.Score < bestScore) {
				best, bestScore = r.Move, r.Score
			}
			e.OnInfo(SearchInfo{
				Depth: depth,
				Score: bestScore,
				Nodes: s.Nodes(),
				Time:  time.Since(start),
				Move:  best,
			})
		}
	}

	return s.FindBestMove(c, depth, onRoot)
}

// Perft performs a perft test (for debugging move generation).
func (e *Engine) Perft(pos *board.Position, depth int) uint64 {
	return uint64(pos.Perft(depth))
}

// Evaluate returns the static evaluation of a position.
func (e *Engine) Evaluate(pos *board.Position) int {
	return Evaluate(pos)
}

// ScoreToString converts a White-relative score to a human-readable string.
func ScoreToString(score int) string {
	if score >= MateScore {
		return "White mates"
	}
	if score <= -MateScore {
		return "Black mates"
	}

	sign := "+"
	if score < 0 {
		sign = "-"
		score = -score
	}
	return fmt.Sprintf("%s%d.%02d", sign, score/100, score%100)
}

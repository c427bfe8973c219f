package models

import (
	"fmt"
	"strconv"
	"time"
)

const (
	// MaxGuesses is the number of guesses a Wordle puzzle allows.
	MaxGuesses = 6

	// ScoreFailed is the sentinel stored when a puzzle was not solved.
	// It is displayed as "X" and never counts as a guess count.
	ScoreFailed = 7

	// DayFormat is the calendar day key layout used throughout the system.
	DayFormat = "2006-01-02"
)

// Submission represents one player's result for one puzzle on one day.
type Submission struct {
	ID           int64     `db:"id"`
	Player       string    `db:"player"`
	Day          string    `db:"day"`
	Score        int       `db:"score"`
	Grid         string    `db:"grid"`
	PuzzleNumber int       `db:"puzzle_number"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// NewSubmission creates a new Submission with validation
func NewSubmission(player, day string, puzzleNumber, score int, grid string) (*Submission, error) {
	if player == "" {
		return nil, fmt.Errorf("player cannot be empty")
	}
	if _, err := time.Parse(DayFormat, day); err != nil {
		return nil, fmt.Errorf("invalid day %q: %w", day, err)
	}
	if score < 1 || score > ScoreFailed {
		return nil, fmt.Errorf("score must be between 1 and %d, got %d", ScoreFailed, score)
	}
	if puzzleNumber < 0 {
		return nil, fmt.Errorf("puzzle number cannot be negative, got %d", puzzleNumber)
	}

	return &Submission{
		Player:       player,
		Day:          day,
		Score:        score,
		Grid:         grid,
		PuzzleNumber: puzzleNumber,
	}, nil
}

// Won reports whether the puzzle was solved
func (s *Submission) Won() bool {
	return s.Score <= MaxGuesses
}

// ScoreLabel returns the display token for the score ("1".."6" or "X")
func (s *Submission) ScoreLabel() string {
	if s.Score == ScoreFailed {
		return "X"
	}
	return strconv.Itoa(s.Score)
}

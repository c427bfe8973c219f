package models

// PlayerStats represents a player's lifetime statistics, derived from history
type PlayerStats struct {
	Player        string
	GamesPlayed   int
	Wins          int
	WinPercentage int
	CurrentStreak int
	MaxStreak     int
	AverageScore  float64     // average winning score, two decimal places
	Distribution  map[int]int // counts keyed by score 1-6 plus ScoreFailed
}

// HeadToHeadStats represents pairwise statistics over the days both players submitted
type HeadToHeadStats struct {
	PlayerA        string
	PlayerB        string
	GamesPlayed    int
	PlayerAWins    int
	PlayerBWins    int
	Ties           int
	PlayerAAverage float64
	PlayerBAverage float64
}

// ScoreboardEntry is one ranked row of a day's revealed results
type ScoreboardEntry struct {
	Rank   int
	Player string
	Score  int
	Label  string
	Grid   string
}

// Board is the reveal-gated view of one day for a group. Before reveal only
// the submitter names are populated; scores stay escrowed.
type Board struct {
	Day       string
	Revealed  bool
	Submitted []string
	Entries   []ScoreboardEntry
	Summary   string
}

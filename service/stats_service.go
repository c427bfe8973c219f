package service

import (
	"math"
	"sort"
	"strings"
	"time"

	"wordleclub/models"
)

// ComputePlayerStats derives a player's lifetime statistics from a history
// snapshot. A player with no submissions gets zeroed counters, not an error.
//
// The current streak only continues across wins on consecutive calendar days;
// a gap resets it to 1 on the next win and a loss resets it to 0. A streak
// also decays to 0 once the player's latest submission is more than one day
// old, even without a new loss.
func ComputePlayerStats(history models.History, player string, now time.Time, loc *time.Location) *models.PlayerStats {
	stats := &models.PlayerStats{
		Player:       player,
		Distribution: newDistribution(),
	}

	subs := history.PlayerSubmissions(player)
	if len(subs) == 0 {
		return stats
	}

	totalWinningScore := 0
	lastDay := ""

	for _, sub := range subs {
		stats.GamesPlayed++
		stats.Distribution[sub.Score]++

		if sub.Won() {
			stats.Wins++
			totalWinningScore += sub.Score
			if lastDay != "" && DaysBetween(lastDay, sub.Day) == 1 {
				stats.CurrentStreak++
			} else {
				stats.CurrentStreak = 1
			}
		} else {
			stats.CurrentStreak = 0
		}

		if stats.CurrentStreak > stats.MaxStreak {
			stats.MaxStreak = stats.CurrentStreak
		}
		lastDay = sub.Day
	}

	// An idle player's streak decays even without a new loss
	if DaysBetween(lastDay, DayKey(now, loc)) > 1 {
		stats.CurrentStreak = 0
	}

	stats.WinPercentage = int(math.Round(float64(stats.Wins) / float64(stats.GamesPlayed) * 100))
	stats.AverageScore = averageScore(totalWinningScore, stats.Wins)

	return stats
}

// ComputeHeadToHead derives pairwise statistics over the days both players
// submitted. Comparing a player against themselves is not applicable and
// returns ErrSamePlayer.
func ComputeHeadToHead(history models.History, playerA, playerB string) (*models.HeadToHeadStats, error) {
	if strings.EqualFold(playerA, playerB) {
		return nil, ErrSamePlayer
	}

	h2h := &models.HeadToHeadStats{
		PlayerA: playerA,
		PlayerB: playerB,
	}

	totalA, winsA := 0, 0
	totalB, winsB := 0, 0

	for _, day := range history.Days() {
		set := history.Day(day)
		subA := set.Get(playerA)
		subB := set.Get(playerB)
		if subA == nil || subB == nil {
			continue
		}

		h2h.GamesPlayed++
		switch {
		case subA.Score < subB.Score:
			h2h.PlayerAWins++
		case subB.Score < subA.Score:
			h2h.PlayerBWins++
		default:
			h2h.Ties++
		}

		if subA.Won() {
			winsA++
			totalA += subA.Score
		}
		if subB.Won() {
			winsB++
			totalB += subB.Score
		}
	}

	h2h.PlayerAAverage = averageScore(totalA, winsA)
	h2h.PlayerBAverage = averageScore(totalB, winsB)

	return h2h, nil
}

// BuildScoreboard ranks a day's submissions by score, breaking score ties
// alphabetically by player name
func BuildScoreboard(set *models.DailyResultSet) []models.ScoreboardEntry {
	if set == nil {
		return nil
	}

	entries := make([]models.ScoreboardEntry, 0, len(set.Results))
	for _, sub := range set.Results {
		entries = append(entries, models.ScoreboardEntry{
			Player: sub.Player,
			Score:  sub.Score,
			Label:  sub.ScoreLabel(),
			Grid:   sub.Grid,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score < entries[j].Score
		}
		return entries[i].Player < entries[j].Player
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries
}

func newDistribution() map[int]int {
	dist := make(map[int]int, models.ScoreFailed)
	for score := 1; score <= models.ScoreFailed; score++ {
		dist[score] = 0
	}
	return dist
}

// averageScore returns the average winning score to two decimal places,
// or 0 when there are no wins
func averageScore(totalWinningScore, wins int) float64 {
	if wins == 0 {
		return 0
	}
	return math.Round(float64(totalWinningScore)/float64(wins)*100) / 100
}

package models

import (
	"sort"
	"strings"
)

// DailyResultSet holds every submission recorded for one day, keyed by player,
// plus the cached narrative summary for that day once one has been generated.
type DailyResultSet struct {
	Results map[string]*Submission
	Summary string
}

// NewDailyResultSet creates an empty result set
func NewDailyResultSet() *DailyResultSet {
	return &DailyResultSet{Results: make(map[string]*Submission)}
}

// Put records a submission, overwriting any previous entry for the same
// player. Resubmission replaces, it never appends.
func (d *DailyResultSet) Put(sub *Submission) {
	if d.Results == nil {
		d.Results = make(map[string]*Submission)
	}
	d.Results[sub.Player] = sub
}

// Players returns the players with a submission, sorted by name
func (d *DailyResultSet) Players() []string {
	players := make([]string, 0, len(d.Results))
	for player := range d.Results {
		players = append(players, player)
	}
	sort.Strings(players)
	return players
}

// Get returns the submission for a player, matching case-insensitively
func (d *DailyResultSet) Get(player string) *Submission {
	if sub, ok := d.Results[player]; ok {
		return sub
	}
	for name, sub := range d.Results {
		if strings.EqualFold(name, player) {
			return sub
		}
	}
	return nil
}

// History maps day keys (YYYY-MM-DD) to that day's results. It only ever
// grows: new days are added and existing days are updated in place.
type History map[string]*DailyResultSet

// Days returns all day keys in ascending order
func (h History) Days() []string {
	days := make([]string, 0, len(h))
	for day := range h {
		days = append(days, day)
	}
	sort.Strings(days)
	return days
}

// Day returns the result set for a day, or nil when none exists
func (h History) Day(day string) *DailyResultSet {
	return h[day]
}

// PlayerSubmissions returns the player's submissions in ascending day order,
// skipping days without an entry for the player.
func (h History) PlayerSubmissions(player string) []*Submission {
	var subs []*Submission
	for _, day := range h.Days() {
		if sub := h[day].Get(player); sub != nil {
			subs = append(subs, sub)
		}
	}
	return subs
}

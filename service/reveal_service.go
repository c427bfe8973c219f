package service

import (
	"strings"
	"time"

	"wordleclub/models"
)

// RevealPolicy decides whether a group's escrowed results for a day may be
// shown. The decision is a pure function of roster, submitted set, target day
// and the supplied wall-clock time; it carries no state and must be
// re-evaluated on every read.
type RevealPolicy struct {
	loc        *time.Location
	cutoffHour int
}

// NewRevealPolicy creates a policy evaluating cutoffs in loc at cutoffHour
func NewRevealPolicy(loc *time.Location, cutoffHour int) *RevealPolicy {
	return &RevealPolicy{
		loc:        loc,
		cutoffHour: cutoffHour,
	}
}

// Location returns the reference time zone the policy evaluates days in
func (p *RevealPolicy) Location() *time.Location {
	return p.loc
}

// ShouldReveal reports whether the results for day may be shown, given the
// group roster and the players who have submitted for that day.
//
// Results reveal when every roster member has submitted (quorum), or once the
// cutoff hour has passed on that day in the reference zone. Any day already
// in the past is always past cutoff. An empty roster never reveals: a group
// with no members has nothing to escrow or show.
func (p *RevealPolicy) ShouldReveal(roster, submitted []string, day string, now time.Time) bool {
	if len(roster) > models.MaxRosterSize {
		roster = roster[:models.MaxRosterSize]
	}
	if len(roster) == 0 {
		return false
	}

	submittedSet := make(map[string]bool, len(submitted))
	for _, player := range submitted {
		submittedSet[strings.ToLower(player)] = true
	}

	quorum := true
	for _, member := range roster {
		if !submittedSet[strings.ToLower(member)] {
			quorum = false
			break
		}
	}
	if quorum {
		return true
	}

	// Day keys compare chronologically as strings
	today := DayKey(now, p.loc)
	if day != today {
		return day < today
	}
	return now.In(p.loc).Hour() >= p.cutoffHour
}

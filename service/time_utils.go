package service

import (
	"time"

	"wordleclub/models"
)

// DayKey returns the calendar day key for t evaluated in loc
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(models.DayFormat)
}

// ParseDay parses a day key into midnight UTC of that calendar day
func ParseDay(day string) (time.Time, error) {
	return time.Parse(models.DayFormat, day)
}

// DaysBetween returns the number of whole calendar days from day a to day b.
// Both arguments must be valid day keys; malformed input counts as no gap.
func DaysBetween(a, b string) int {
	ta, err := ParseDay(a)
	if err != nil {
		return 0
	}
	tb, err := ParseDay(b)
	if err != nil {
		return 0
	}
	return int(tb.Sub(ta).Hours() / 24)
}

package service

import "errors"

var (
	// ErrNoHeader is returned when no line of the share text looks like a
	// Wordle header at all
	ErrNoHeader = errors.New("no Wordle header found")

	// ErrMalformedHeader is returned when a line starts like a Wordle header
	// but its puzzle number or score cannot be extracted
	ErrMalformedHeader = errors.New("Wordle header is garbled")

	// ErrGroupNotFound is returned when no group exists for a slug
	ErrGroupNotFound = errors.New("group not found")

	// ErrNotMember is returned when a player submits to a group they are not on
	ErrNotMember = errors.New("player is not a member of this group")

	// ErrSamePlayer is returned when a head-to-head comparison names the same
	// player twice; the comparison is not applicable rather than an error state
	ErrSamePlayer = errors.New("head-to-head requires two distinct players")

	// ErrRecapUnavailable is returned when the recap service fails; callers
	// surface it as a "try again" state and never retry automatically
	ErrRecapUnavailable = errors.New("recap generation unavailable")
)

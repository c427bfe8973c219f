package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxRosterSize caps how many players a group can hold
const MaxRosterSize = 10

// Group represents a friend group tracking daily puzzle results together
type Group struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Slug      string    `db:"slug"`
	Roster    []string
	CreatedAt time.Time `db:"created_at"`
}

// NewGroup creates a new Group with validation
func NewGroup(name, slug, creator string) (*Group, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("group name cannot be empty")
	}
	if slug == "" {
		return nil, fmt.Errorf("group slug cannot be empty")
	}
	if strings.TrimSpace(creator) == "" {
		return nil, fmt.Errorf("creator cannot be empty")
	}

	return &Group{
		ID:     uuid.New(),
		Name:   name,
		Slug:   slug,
		Roster: []string{creator},
	}, nil
}

// HasMember reports whether player is on the roster, compared case-insensitively
func (g *Group) HasMember(player string) bool {
	for _, member := range g.Roster {
		if strings.EqualFold(member, player) {
			return true
		}
	}
	return false
}

// AddMember appends a player to the roster
func (g *Group) AddMember(player string) error {
	if strings.TrimSpace(player) == "" {
		return fmt.Errorf("player cannot be empty")
	}
	if g.HasMember(player) {
		return fmt.Errorf("player %s is already a member", player)
	}
	if len(g.Roster) >= MaxRosterSize {
		return fmt.Errorf("group is full: roster is capped at %d players", MaxRosterSize)
	}
	g.Roster = append(g.Roster, player)
	return nil
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSubmission_Validation(t *testing.T) {
	tests := []struct {
		name    string
		player  string
		day     string
		score   int
		wantErr bool
	}{
		{name: "valid win", player: "alice", day: "2026-08-28", score: 3},
		{name: "valid failure", player: "alice", day: "2026-08-28", score: ScoreFailed},
		{name: "empty player", player: "", day: "2026-08-28", score: 3, wantErr: true},
		{name: "bad day format", player: "alice", day: "08/28/2026", score: 3, wantErr: true},
		{name: "score zero", player: "alice", day: "2026-08-28", score: 0, wantErr: true},
		{name: "score too high", player: "alice", day: "2026-08-28", score: 8, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, err := NewSubmission(tt.player, tt.day, 1234, tt.score, "")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.score, sub.Score)
		})
	}
}

func TestSubmission_WonAndLabel(t *testing.T) {
	win, err := NewSubmission("alice", "2026-08-28", 1234, 4, "")
	require.NoError(t, err)
	assert.True(t, win.Won())
	assert.Equal(t, "4", win.ScoreLabel())

	loss, err := NewSubmission("alice", "2026-08-28", 1234, ScoreFailed, "")
	require.NoError(t, err)
	assert.False(t, loss.Won())
	assert.Equal(t, "X", loss.ScoreLabel())
}

func TestDailyResultSet(t *testing.T) {
	set := NewDailyResultSet()

	first, err := NewSubmission("Alice", "2026-08-28", 1234, 5, "")
	require.NoError(t, err)
	set.Put(first)

	t.Run("lookup is case-insensitive", func(t *testing.T) {
		require.NotNil(t, set.Get("alice"))
		assert.Equal(t, 5, set.Get("ALICE").Score)
		assert.Nil(t, set.Get("bob"))
	})

	t.Run("put replaces same player", func(t *testing.T) {
		replacement, err := NewSubmission("Alice", "2026-08-28", 1234, 2, "")
		require.NoError(t, err)
		set.Put(replacement)

		assert.Equal(t, 2, set.Get("Alice").Score)
		assert.Equal(t, []string{"Alice"}, set.Players())
	})
}

func TestHistory_PlayerSubmissions(t *testing.T) {
	history := make(History)
	for _, day := range []string{"2026-08-28", "2026-08-26", "2026-08-27"} {
		sub, err := NewSubmission("alice", day, 1234, 3, "")
		require.NoError(t, err)
		set := NewDailyResultSet()
		set.Put(sub)
		history[day] = set
	}

	assert.Equal(t, []string{"2026-08-26", "2026-08-27", "2026-08-28"}, history.Days())

	subs := history.PlayerSubmissions("alice")
	require.Len(t, subs, 3)
	assert.Equal(t, "2026-08-26", subs[0].Day)
	assert.Equal(t, "2026-08-28", subs[2].Day)

	assert.Empty(t, history.PlayerSubmissions("bob"))
}

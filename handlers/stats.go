package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"wordleclub/service"
)

// StatsHandler serves derived statistics endpoints
type StatsHandler struct {
	groups service.GroupService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(groups service.GroupService) *StatsHandler {
	return &StatsHandler{groups: groups}
}

// SetupStatsRoutes registers the statistics endpoints
func SetupStatsRoutes(app *fiber.App, h *StatsHandler) {
	app.Get("/groups/:slug/players/:player/stats", h.PlayerStats)
	app.Get("/groups/:slug/h2h", h.HeadToHead)
}

// PlayerStats returns a player's lifetime statistics
func (h *StatsHandler) PlayerStats(c *fiber.Ctx) error {
	stats, err := h.groups.PlayerStats(c.Context(), c.Params("slug"), c.Params("player"), time.Now())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"player":        stats.Player,
		"gamesPlayed":   stats.GamesPlayed,
		"wins":          stats.Wins,
		"winPercentage": stats.WinPercentage,
		"currentStreak": stats.CurrentStreak,
		"maxStreak":     stats.MaxStreak,
		"averageScore":  stats.AverageScore,
		"distribution":  stats.Distribution,
	})
}

// HeadToHead compares two players over the days both submitted. Picking the
// same player twice is answered with a non-applicable result, not an error.
func (h *StatsHandler) HeadToHead(c *fiber.Ctx) error {
	playerA := c.Query("a")
	playerB := c.Query("b")
	if playerA == "" || playerB == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "query parameters a and b are required"})
	}

	h2h, err := h.groups.HeadToHead(c.Context(), c.Params("slug"), playerA, playerB)
	if err != nil {
		if errors.Is(err, service.ErrSamePlayer) {
			return c.JSON(fiber.Map{"applicable": false})
		}
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"applicable":     true,
		"playerA":        h2h.PlayerA,
		"playerB":        h2h.PlayerB,
		"gamesPlayed":    h2h.GamesPlayed,
		"playerAWins":    h2h.PlayerAWins,
		"playerBWins":    h2h.PlayerBWins,
		"ties":           h2h.Ties,
		"playerAAverage": h2h.PlayerAAverage,
		"playerBAverage": h2h.PlayerBAverage,
	})
}

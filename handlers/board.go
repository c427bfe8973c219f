package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"wordleclub/models"
	"wordleclub/service"
)

// BoardHandler serves submission and daily board endpoints
type BoardHandler struct {
	groups    service.GroupService
	reactions service.ReactionService
	policy    *service.RevealPolicy
}

// NewBoardHandler creates a new board handler
func NewBoardHandler(groups service.GroupService, reactions service.ReactionService, policy *service.RevealPolicy) *BoardHandler {
	return &BoardHandler{
		groups:    groups,
		reactions: reactions,
		policy:    policy,
	}
}

// SetupBoardRoutes registers the submission and board endpoints
func SetupBoardRoutes(app *fiber.App, h *BoardHandler) {
	app.Post("/groups/:slug/submissions", h.Submit)
	app.Get("/groups/:slug/board", h.GetBoard)
}

type submitRequest struct {
	Player    string `json:"player"`
	ShareText string `json:"shareText"`
}

// Submit parses pasted share text and records the player's result for today
func (h *BoardHandler) Submit(c *fiber.Ctx) error {
	var req submitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	sub, err := h.groups.RecordSubmission(c.Context(), c.Params("slug"), req.Player, req.ShareText, time.Now())
	if err != nil {
		return respondError(c, err)
	}

	response := fiber.Map{
		"submission": fiber.Map{
			"player":       sub.Player,
			"day":          sub.Day,
			"puzzleNumber": sub.PuzzleNumber,
			"score":        sub.ScoreLabel(),
			"won":          sub.Won(),
		},
	}

	// Best-effort: an absent reaction image means no element is shown
	if gifURL := h.reactions.LookupReaction(c.Context(), sub.Won()); gifURL != "" {
		response["gifUrl"] = gifURL
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

// GetBoard returns the reveal-gated view of one day. Defaults to today.
func (h *BoardHandler) GetBoard(c *fiber.Ctx) error {
	now := time.Now()
	day := c.Query("date", service.DayKey(now, h.policy.Location()))
	if _, err := service.ParseDay(day); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date must be YYYY-MM-DD"})
	}

	board, err := h.groups.GetBoard(c.Context(), c.Params("slug"), day, now)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(boardJSON(board))
}

func boardJSON(board *models.Board) fiber.Map {
	resp := fiber.Map{
		"day":       board.Day,
		"revealed":  board.Revealed,
		"submitted": board.Submitted,
	}
	if !board.Revealed {
		return resp
	}

	entries := make([]fiber.Map, 0, len(board.Entries))
	for _, entry := range board.Entries {
		entries = append(entries, fiber.Map{
			"rank":   entry.Rank,
			"player": entry.Player,
			"score":  entry.Label,
			"grid":   entry.Grid,
		})
	}
	resp["entries"] = entries
	if board.Summary != "" {
		resp["summary"] = board.Summary
	}
	return resp
}

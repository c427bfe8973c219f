package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"wordleclub/service"
)

// respondError maps service errors to HTTP responses with user-facing reasons
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrGroupNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "group not found",
		})
	case errors.Is(err, service.ErrNotMember):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "you are not a member of this group",
		})
	case errors.Is(err, service.ErrNoHeader):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "that doesn't look like a Wordle share - no result line found",
		})
	case errors.Is(err, service.ErrMalformedHeader):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "the Wordle result line looks garbled - paste the share text unchanged",
		})
	case errors.Is(err, service.ErrRecapUnavailable):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "recap generation failed, try again",
		})
	default:
		log.WithError(err).Error("Request failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal error",
		})
	}
}

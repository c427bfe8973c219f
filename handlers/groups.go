package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	qrcode "github.com/skip2/go-qrcode"

	"wordleclub/models"
	"wordleclub/service"
)

// GroupHandler serves group lifecycle and roster endpoints
type GroupHandler struct {
	groups  service.GroupService
	baseURL string
}

// NewGroupHandler creates a new group handler
func NewGroupHandler(groups service.GroupService, baseURL string) *GroupHandler {
	return &GroupHandler{
		groups:  groups,
		baseURL: baseURL,
	}
}

// SetupGroupRoutes registers the group endpoints
func SetupGroupRoutes(app *fiber.App, h *GroupHandler) {
	app.Post("/groups", h.Create)
	app.Get("/groups/:slug", h.Get)
	app.Post("/groups/:slug/join", h.Join)
	app.Get("/groups/:slug/invite.png", h.InviteQR)
}

type createGroupRequest struct {
	Name   string `json:"name"`
	Player string `json:"player"`
}

// Create creates a group with the requesting player as its first member
func (h *GroupHandler) Create(c *fiber.Ctx) error {
	var req createGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	group, err := h.groups.CreateGroup(c.Context(), req.Name, req.Player)
	if err != nil {
		if req.Name == "" || req.Player == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(groupJSON(group))
}

// Get returns a group and its roster
func (h *GroupHandler) Get(c *fiber.Ctx) error {
	group, err := h.groups.GetGroup(c.Context(), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(groupJSON(group))
}

type joinGroupRequest struct {
	Player string `json:"player"`
}

// Join adds a player to the roster
func (h *GroupHandler) Join(c *fiber.Ctx) error {
	var req joinGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	group, err := h.groups.JoinGroup(c.Context(), c.Params("slug"), req.Player)
	if err != nil {
		if err == service.ErrGroupNotFound {
			return respondError(c, err)
		}
		// Roster cap and duplicate-member violations are client mistakes
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(groupJSON(group))
}

// InviteQR renders a QR code pointing at the group page so an invite can be
// scanned from a friend's screen
func (h *GroupHandler) InviteQR(c *fiber.Ctx) error {
	group, err := h.groups.GetGroup(c.Context(), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}

	inviteURL := fmt.Sprintf("%s/groups/%s", h.baseURL, group.Slug)
	png, err := qrcode.Encode(inviteURL, qrcode.Medium, 256)
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

func groupJSON(group *models.Group) fiber.Map {
	return fiber.Map{
		"id":        group.ID,
		"name":      group.Name,
		"slug":      group.Slug,
		"roster":    group.Roster,
		"createdAt": group.CreatedAt,
	}
}

package handlers

import (
	"bufio"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"wordleclub/service"
)

// WatchHandler streams board-change notifications to clients over SSE
type WatchHandler struct {
	groups      service.GroupService
	broadcaster *Broadcaster
}

// NewWatchHandler creates a new watch handler
func NewWatchHandler(groups service.GroupService, broadcaster *Broadcaster) *WatchHandler {
	return &WatchHandler{
		groups:      groups,
		broadcaster: broadcaster,
	}
}

// SetupWatchRoutes registers the live-update endpoint
func SetupWatchRoutes(app *fiber.App, h *WatchHandler) {
	app.Get("/groups/:slug/events", h.Stream)
}

// Stream sends an SSE event whenever the group's board changes. Events carry
// only the day key; clients fetch the board again to get a fresh snapshot.
func (h *WatchHandler) Stream(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if _, err := h.groups.GetGroup(c.Context(), slug); err != nil {
		return respondError(c, err)
	}

	ch := h.broadcaster.Add(slug)

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer h.broadcaster.Remove(slug, ch)

		keepalive := time.NewTicker(30 * time.Second)
		defer keepalive.Stop()

		for {
			select {
			case change := <-ch:
				fmt.Fprintf(w, "event: board\ndata: {\"day\":%q}\n\n", change.Day)
				if err := w.Flush(); err != nil {
					return
				}
			case <-keepalive.C:
				fmt.Fprint(w, ": keepalive\n\n")
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))

	return nil
}

package handlers

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"wordleclub/events"
)

// BoardChange tells a watcher that a group's board changed for a day; the
// watcher re-reads a fresh snapshot rather than trusting pushed content
type BoardChange struct {
	Day string
}

// Broadcaster fans event-bus notifications out to SSE clients per group
type Broadcaster struct {
	mu      sync.RWMutex
	clients map[string]map[chan BoardChange]bool
}

// NewBroadcaster creates a broadcaster subscribed to the board-changing events
func NewBroadcaster(bus *events.Bus) *Broadcaster {
	b := &Broadcaster{
		clients: make(map[string]map[chan BoardChange]bool),
	}
	bus.Subscribe(events.EventTypeSubmissionRecorded, b.onEvent)
	bus.Subscribe(events.EventTypeSummaryAttached, b.onEvent)
	return b
}

// Add registers a watcher for a group and returns its notification channel
func (b *Broadcaster) Add(slug string) chan BoardChange {
	ch := make(chan BoardChange, 4)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.clients[slug] == nil {
		b.clients[slug] = make(map[chan BoardChange]bool)
	}
	b.clients[slug][ch] = true
	return ch
}

// Remove unregisters a watcher
func (b *Broadcaster) Remove(slug string, ch chan BoardChange) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if watchers := b.clients[slug]; watchers != nil {
		delete(watchers, ch)
		if len(watchers) == 0 {
			delete(b.clients, slug)
		}
	}
}

func (b *Broadcaster) onEvent(ctx context.Context, event events.Event) {
	var slug, day string
	switch e := event.(type) {
	case events.SubmissionRecordedEvent:
		slug, day = e.Slug, e.Day
	case events.SummaryAttachedEvent:
		slug, day = e.Slug, e.Day
	default:
		return
	}
	b.notify(slug, day)
}

// notify pushes a change marker to every watcher of the group, dropping the
// notification for clients whose buffer is full rather than blocking
func (b *Broadcaster) notify(slug, day string) {
	b.mu.RLock()
	watchers := make([]chan BoardChange, 0, len(b.clients[slug]))
	for ch := range b.clients[slug] {
		watchers = append(watchers, ch)
	}
	b.mu.RUnlock()

	for _, ch := range watchers {
		select {
		case ch <- BoardChange{Day: day}:
		default:
			log.WithField("group", slug).Debug("Dropped board change notification for slow watcher")
		}
	}
}

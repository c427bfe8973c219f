package events

import (
	"context"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeGroupCreated       EventType = "group_created"
	EventTypeMemberJoined       EventType = "member_joined"
	EventTypeSubmissionRecorded EventType = "submission_recorded"
	EventTypeSummaryAttached    EventType = "summary_attached"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// GroupCreatedEvent represents a newly created group
type GroupCreatedEvent struct {
	GroupID uuid.UUID
	Slug    string
	Name    string
}

func (e GroupCreatedEvent) Type() EventType {
	return EventTypeGroupCreated
}

// MemberJoinedEvent represents a player joining a group's roster
type MemberJoinedEvent struct {
	GroupID uuid.UUID
	Slug    string
	Player  string
}

func (e MemberJoinedEvent) Type() EventType {
	return EventTypeMemberJoined
}

// SubmissionRecordedEvent represents a submission written for a day.
// Watchers re-read a fresh history snapshot when they receive it; the event
// itself deliberately carries no scores so nothing leaks before reveal.
type SubmissionRecordedEvent struct {
	GroupID uuid.UUID
	Slug    string
	Player  string
	Day     string
}

func (e SubmissionRecordedEvent) Type() EventType {
	return EventTypeSubmissionRecorded
}

// SummaryAttachedEvent represents a narrative summary cached for a day
type SummaryAttachedEvent struct {
	GroupID uuid.UUID
	Slug    string
	Day     string
}

func (e SummaryAttachedEvent) Type() EventType {
	return EventTypeSummaryAttached
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"handlerCount": len(handlers),
	}).Debug("Emitting event to handlers")

	// Call handlers asynchronously to avoid blocking the writer
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// TransactionalBus stashes events published during a unit of work and
// flushes them to the underlying bus only after the DB commit succeeds.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush emits all pending events. Called after a successful commit.
func (b *TransactionalBus) Flush(ctx context.Context) error {
	log.WithFields(log.Fields{
		"pendingEventCount": len(b.pending),
	}).Debug("Flushing pending events to main event bus")

	// Use a background context so event delivery outlives the transaction context
	eventCtx := context.Background()

	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
	return nil
}

// Discard drops pending events. Called after rollback.
func (b *TransactionalBus) Discard() {
	b.pending = nil
}

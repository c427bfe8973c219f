package events

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_EmitReachesSubscribers(t *testing.T) {
	bus := NewBus()
	received := make(chan Event, 1)
	bus.Subscribe(EventTypeSubmissionRecorded, func(ctx context.Context, e Event) {
		received <- e
	})

	event := SubmissionRecordedEvent{
		GroupID: uuid.New(),
		Slug:    "morning-crew",
		Player:  "alice",
		Day:     "2026-08-28",
	}
	bus.Emit(context.Background(), event)

	select {
	case e := <-received:
		assert.Equal(t, event, e)
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered")
	}
}

func TestBus_EmitOnlyMatchingType(t *testing.T) {
	bus := NewBus()
	received := make(chan Event, 1)
	bus.Subscribe(EventTypeGroupCreated, func(ctx context.Context, e Event) {
		received <- e
	})

	bus.Emit(context.Background(), MemberJoinedEvent{GroupID: uuid.New(), Slug: "x", Player: "alice"})

	select {
	case <-received:
		t.Fatal("handler received an event of another type")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestBus_PanickingHandlerDoesNotStopOthers(t *testing.T) {
	bus := NewBus()
	received := make(chan Event, 1)
	bus.Subscribe(EventTypeGroupCreated, func(ctx context.Context, e Event) {
		panic("boom")
	})
	bus.Subscribe(EventTypeGroupCreated, func(ctx context.Context, e Event) {
		received <- e
	})

	bus.Emit(context.Background(), GroupCreatedEvent{GroupID: uuid.New(), Slug: "x", Name: "X"})

	select {
	case <-received:
	case <-time.After(2 * time.Second):
		t.Fatal("surviving handler never ran")
	}
}

func TestTransactionalBus_FlushAndDiscard(t *testing.T) {
	real := NewBus()
	received := make(chan Event, 2)
	real.Subscribe(EventTypeMemberJoined, func(ctx context.Context, e Event) {
		received <- e
	})

	t.Run("publish holds until flush", func(t *testing.T) {
		txBus := NewTransactionalBus(real)
		txBus.Publish(MemberJoinedEvent{GroupID: uuid.New(), Slug: "crew", Player: "alice"})

		select {
		case <-received:
			t.Fatal("event escaped before flush")
		case <-time.After(100 * time.Millisecond):
		}

		require.NoError(t, txBus.Flush(context.Background()))

		select {
		case e := <-received:
			assert.Equal(t, "alice", e.(MemberJoinedEvent).Player)
		case <-time.After(2 * time.Second):
			t.Fatal("event not delivered after flush")
		}
	})

	t.Run("discard drops pending events", func(t *testing.T) {
		txBus := NewTransactionalBus(real)
		txBus.Publish(MemberJoinedEvent{GroupID: uuid.New(), Slug: "crew", Player: "bob"})
		txBus.Discard()

		require.NoError(t, txBus.Flush(context.Background()))

		select {
		case <-received:
			t.Fatal("discarded event was delivered")
		case <-time.After(100 * time.Millisecond):
		}
	})
}

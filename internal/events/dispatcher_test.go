package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/spec-kit/message-board/internal/events"
)

func TestDispatcher_DeliversToSubscribers(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()

	var got []string
	dispatcher.Subscribe(events.EventMessageCreated, func(_ context.Context, event events.Event) error {
		got = append(got, "first:"+event.ID)
		return errors.New("handler failure should not stop delivery")
	})
	dispatcher.Subscribe(events.EventMessageCreated, func(_ context.Context, event events.Event) error {
		got = append(got, "second:"+event.ID)
		return nil
	})
	dispatcher.Subscribe(events.EventMessageDeleted, func(_ context.Context, event events.Event) error {
		got = append(got, "deleted:"+event.ID)
		return nil
	})

	if err := dispatcher.Publish(context.Background(), events.Event{ID: "e1", Type: events.EventMessageCreated}); err != nil {
		t.Fatalf("Publish() failed: %v", err)
	}

	want := []string{"first:e1", "second:e1"}
	if len(got) != len(want) {
		t.Fatalf("handlers invoked = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("invocation[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDispatcher_NoSubscribers(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	if err := dispatcher.Publish(context.Background(), events.Event{ID: "e1", Type: events.EventUserLoggedIn}); err != nil {
		t.Errorf("Publish() with no subscribers failed: %v", err)
	}
}

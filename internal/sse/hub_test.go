package sse

import (
	"context"
	"testing"
)

func TestSubscribeAndBroadcast(t *testing.T) {
	hub := NewHub(nil)

	ch, unsub := hub.Subscribe(1)
	defer unsub()
	other, otherUnsub := hub.Subscribe(2)
	defer otherUnsub()

	hub.Broadcast(context.Background(), 1, Event{Type: "member_added", Data: "u2"})

	select {
	case ev := <-ch:
		if ev.Type != "member_added" {
			t.Errorf("type = %q", ev.Type)
		}
	default:
		t.Fatal("subscriber did not receive the event")
	}

	select {
	case <-other:
		t.Fatal("subscriber of another project received the event")
	default:
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub(nil)

	ch, unsub := hub.Subscribe(7)
	unsub()

	if _, ok := <-ch; ok {
		t.Fatal("channel still open after unsubscribe")
	}

	// Broadcasting to a project with no subscribers must not panic.
	hub.Broadcast(context.Background(), 7, Event{Type: "noop"})
}

func TestParseLastEventID(t *testing.T) {
	if got := ParseLastEventID(""); got != 0 {
		t.Errorf("empty header = %d, want replay from the start", got)
	}
	// The client already saw event 42: replay must resume at 43, not
	// re-deliver 42 under the same id.
	if got := ParseLastEventID("42"); got != 43 {
		t.Errorf("42 = %d, want 43", got)
	}
	if got := ParseLastEventID("0"); got != 1 {
		t.Errorf("0 = %d, want 1", got)
	}
	if got := ParseLastEventID("bogus"); got != 0 {
		t.Errorf("bogus = %d, want replay from the start", got)
	}
	if got := ParseLastEventID("-7"); got != 0 {
		t.Errorf("-7 = %d, want replay from the start", got)
	}
}

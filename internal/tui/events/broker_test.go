package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "channel closed")
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestBroker_TypedAndWildcard(t *testing.T) {
	b := NewBroker()
	frames := b.Subscribe(DisplayFrameEvent)
	all := b.Subscribe()

	b.Publish(Event{Type: DisplayFrameEvent, Payload: DisplayPayload{Index: 0, Path: "/a.jpg"}})
	b.Publish(Event{Type: DisplayCompletedEvent})

	require.Equal(t, DisplayFrameEvent, receive(t, frames).Type)
	require.Equal(t, DisplayFrameEvent, receive(t, all).Type)
	require.Equal(t, DisplayCompletedEvent, receive(t, all).Type)
	require.Empty(t, frames)
}

func TestBroker_FullBufferDrops(t *testing.T) {
	b := NewBrokerWithBuffer(1)
	ch := b.Subscribe(StatusMessageEvent)

	b.Publish(Event{Type: StatusMessageEvent, Payload: StatusMessagePayload{Message: "one"}})
	b.Publish(Event{Type: StatusMessageEvent, Payload: StatusMessagePayload{Message: "two"}})

	ev := receive(t, ch)
	require.Equal(t, "one", ev.Payload.(StatusMessagePayload).Message)
	require.Empty(t, ch)
}

func TestBroker_UnsubscribeMultiType(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe(DisplayStartedEvent, DisplayCompletedEvent)

	b.Unsubscribe(ch)
	_, ok := <-ch
	require.False(t, ok)

	// Publishing after unsubscribe must not panic on a closed channel.
	b.Publish(Event{Type: DisplayStartedEvent})
	b.Publish(Event{Type: DisplayCompletedEvent})
}

func TestBroker_Close(t *testing.T) {
	b := NewBroker()
	a := b.Subscribe(DisplayFrameEvent, DisplaySkippedEvent)
	w := b.Subscribe()

	b.Close()
	b.Close()
	b.Publish(Event{Type: DisplayFrameEvent})

	_, ok := <-a
	require.False(t, ok)
	_, ok = <-w
	require.False(t, ok)

	late := b.Subscribe()
	_, ok = <-late
	require.False(t, ok)
}

package live

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/touchlineapp/touchline/internal/gameday"
)

type stubSource struct {
	states []*gameday.DisplayState
}

func (s *stubSource) RunningProjections() []*gameday.DisplayState {
	return s.states
}

func TestHubBroadcastsToRoomOnly(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c1 := NewClient(hub, nil, "g1")
	c2 := NewClient(hub, nil, "g2")
	hub.Subscribe(c1)
	hub.Subscribe(c2)

	hub.BroadcastToRoom("g1", []byte("hello"))

	select {
	case payload := <-c1.send:
		assert.Equal(t, "hello", string(payload))
	case <-time.After(time.Second):
		t.Fatal("expected a broadcast for g1")
	}

	select {
	case payload := <-c2.send:
		t.Fatalf("unexpected broadcast for g2: %s", payload)
	default:
	}
}

func TestUnsubscribeClosesSendChannel(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c := NewClient(hub, nil, "g1")
	hub.Subscribe(c)
	hub.Unsubscribe(c)

	select {
	case _, ok := <-c.send:
		assert.False(t, ok, "send channel should be closed")
	case <-time.After(time.Second):
		t.Fatal("expected send channel to close")
	}
}

func TestTickerBroadcastsRunningProjections(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c := NewClient(hub, nil, "g1")
	hub.Subscribe(c)

	source := &stubSource{states: []*gameday.DisplayState{{GameID: "g1", ElapsedSeconds: 12}}}
	ticker := NewTicker(hub, source, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ticker.Run(ctx)

	select {
	case payload := <-c.send:
		var msg Message
		require.NoError(t, json.Unmarshal(payload, &msg))
		assert.Equal(t, "PROJECTION", msg.Type)
		assert.Equal(t, int64(12), msg.Payload.ElapsedSeconds)
	case <-time.After(time.Second):
		t.Fatal("expected a projection broadcast")
	}
}

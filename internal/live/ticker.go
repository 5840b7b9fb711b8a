package live

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/touchlineapp/touchline/internal/gameday"
)

// ProjectionSource yields the live display states worth broadcasting.
type ProjectionSource interface {
	RunningProjections() []*gameday.DisplayState
}

// Message is the envelope pushed to live subscribers.
type Message struct {
	Type    string                `json:"type"`
	Payload *gameday.DisplayState `json:"payload"`
}

// Ticker recomputes display projections on a fixed cadence and pushes
// them into the hub. It only ever reads projections; banking stays
// event-driven in the core.
type Ticker struct {
	hub      *Hub
	source   ProjectionSource
	interval time.Duration
}

// NewTicker creates a ticker broadcasting at the given interval.
func NewTicker(hub *Hub, source ProjectionSource, interval time.Duration) *Ticker {
	return &Ticker{
		hub:      hub,
		source:   source,
		interval: interval,
	}
}

// Run broadcasts until the context is cancelled. Meant to run on its
// own goroutine.
func (t *Ticker) Run(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, state := range t.source.RunningProjections() {
				payload, err := json.Marshal(Message{Type: "PROJECTION", Payload: state})
				if err != nil {
					log.Error("Failed to marshal live projection", "error", err, "gameID", state.GameID)
					continue
				}
				t.hub.BroadcastToRoom(state.GameID, payload)
			}
		}
	}
}

package gameday

import (
	"errors"
	"sync"
	"time"

	"github.com/touchlineapp/touchline/internal/game"
	"github.com/touchlineapp/touchline/internal/metrics"
	"github.com/touchlineapp/touchline/internal/notifier"
	"github.com/touchlineapp/touchline/internal/team"
)

var (
	// ErrNotFound means the referenced game does not exist.
	ErrNotFound = errors.New("game not found")
	// ErrFinished means a mutation hit a finished game without the
	// caller's explicit confirmation.
	ErrFinished = errors.New("game is finished")
	// ErrPlanning means direct lineup moves are suspended because a
	// substitution plan is being staged for the game.
	ErrPlanning = errors.New("substitution planning is active")
)

// Service orchestrates the game aggregate against the store, the
// notifier and the metrics sink. Every mutation loads the aggregate,
// applies the core operation and persists the result; persistence is
// best effort and never fails the operation.
type Service struct {
	store    team.TeamStore
	notifier notifier.Notifier
	metrics  metrics.Metrics

	mu       sync.Mutex
	planners map[string]*game.Planner

	now func() time.Time
}

// PlayerClock is the live per-player slice of a display projection.
type PlayerClock struct {
	PlayerID       string         `json:"id"`
	Location       game.Location  `json:"location"`
	Position       *game.Position `json:"position,omitempty"`
	Seconds        int64          `json:"seconds"`
	IsStarter      bool           `json:"isStarter"`
	SubbedOnCount  int            `json:"subbedOnCount"`
	SubbedOffCount int            `json:"subbedOffCount"`
}

// DisplayState is the read-only projection of a game at a point in
// time: banked values plus any unbanked interval, computed on demand.
type DisplayState struct {
	GameID         string           `json:"gameId"`
	Opponent       string           `json:"opponent"`
	Venue          game.Venue       `json:"location"`
	HomeScore      int              `json:"homeScore"`
	AwayScore      int              `json:"awayScore"`
	TimerStatus    game.TimerStatus `json:"timerStatus"`
	ElapsedSeconds int64            `json:"elapsedSeconds"`
	IsFinished     bool             `json:"isFinished"`
	PlanningActive bool             `json:"planningActive"`
	Players        []PlayerClock    `json:"players"`
}

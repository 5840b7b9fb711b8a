package game

import (
	"math"
	"time"

	"github.com/charmbracelet/log"
)

// roundSeconds converts an unbanked millisecond interval to whole
// seconds. Rounding happens once, at bank time, so live display never
// compounds rounding error.
func roundSeconds(fromMs, toMs int64) int64 {
	if toMs <= fromMs {
		return 0
	}
	return int64(math.Round(float64(toMs-fromMs) / 1000.0))
}

// StartClock transitions the master clock from stopped to running and
// cascades a timer start into every entry currently on the field.
// It is a no-op when the clock is already running or the game is
// finished. Reports whether the clock actually started.
func (g *Game) StartClock(now time.Time) bool {
	if g.IsFinished {
		log.Debug("Ignoring clock start on finished game", "gameID", g.ID)
		return false
	}
	if g.TimerStatus == TimerRunning {
		log.Debug("Clock already running", "gameID", g.ID)
		return false
	}
	ms := now.UnixMilli()
	g.TimerStatus = TimerRunning
	g.TimerStartTime = &ms

	for i := range g.Lineup {
		e := &g.Lineup[i]
		if e.Location == LocationField && e.TimerStartedAt == nil {
			start := ms
			e.TimerStartedAt = &start
		}
	}
	return true
}

// StopClock transitions the master clock from running to stopped,
// banking the elapsed interval, and cascades into player timers: every
// entry on field or inactive holding a start stamp banks its time.
// Inactive entries are included because a player moved to inactive
// mid-game keeps a stamp until the next clock event.
// No-op when already stopped.
func (g *Game) StopClock(now time.Time) bool {
	if g.TimerStatus != TimerRunning {
		return false
	}
	ms := now.UnixMilli()
	if g.TimerStartTime != nil {
		g.TimerElapsedSeconds += roundSeconds(*g.TimerStartTime, ms)
	}
	g.TimerStartTime = nil
	g.TimerStatus = TimerStopped

	for i := range g.Lineup {
		e := &g.Lineup[i]
		if e.Location == LocationField || e.Location == LocationInactive {
			e.bankTimer(ms)
		}
	}
	return true
}

// DisplayElapsedSeconds is the live clock projection: banked seconds
// plus, while running, the unbanked time since the last start. Pure,
// never mutates the game.
func (g *Game) DisplayElapsedSeconds(now time.Time) int64 {
	if g.TimerStatus == TimerRunning && g.TimerStartTime != nil {
		return g.TimerElapsedSeconds + roundSeconds(*g.TimerStartTime, now.UnixMilli())
	}
	return g.TimerElapsedSeconds
}

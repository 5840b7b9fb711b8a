package game

import (
	"time"

	"github.com/charmbracelet/log"
)

// Start begins (or resumes) the game. On a true cold start (no banked
// clock time yet) every player currently on the field is marked as a
// starter; a restart never touches starter flags. Starting cascades
// into player timers via StartClock. Reports whether anything changed.
func (g *Game) Start(now time.Time) bool {
	if g.IsFinished {
		log.Debug("Ignoring start on finished game", "gameID", g.ID)
		return false
	}
	if g.TimerStatus == TimerRunning {
		return false
	}

	if g.TimerElapsedSeconds == 0 {
		for i := range g.Lineup {
			if g.Lineup[i].Location == LocationField {
				g.Lineup[i].IsStarter = true
			}
		}
	}
	return g.StartClock(now)
}

// Stop pauses the game clock, banking game and player time. The game
// stays resumable; finishing is a separate, permanent step.
func (g *Game) Stop(now time.Time) bool {
	return g.StopClock(now)
}

// Finish ends the game for good: a running clock is stopped and banked
// first, then the finished flag latches. Once finished the clock can
// never start again.
func (g *Game) Finish(now time.Time) bool {
	if g.IsFinished {
		return false
	}
	g.StopClock(now)
	g.IsFinished = true
	return true
}

// ResetLineup forces every entry back to the bench with zeroed
// playtime, counters and starter flags, and returns the fresh entry
// set so callers can resync any cached view.
func (g *Game) ResetLineup() []LineupEntry {
	for i := range g.Lineup {
		g.Lineup[i] = LineupEntry{
			PlayerID: g.Lineup[i].PlayerID,
			Location: LocationBench,
		}
	}
	return g.Lineup
}

// SyncLineup reconciles the entry set with the current roster: players
// without an entry get a zeroed bench entry appended, entries whose
// player left the roster are dropped. Existing entries are untouched.
// Reports whether the entry set changed.
func (g *Game) SyncLineup(rosterIDs []string) bool {
	known := make(map[string]bool, len(rosterIDs))
	for _, id := range rosterIDs {
		known[id] = true
	}

	changed := false
	kept := g.Lineup[:0]
	for _, e := range g.Lineup {
		if known[e.PlayerID] {
			kept = append(kept, e)
			delete(known, e.PlayerID)
		} else {
			log.Debug("Dropping lineup entry for removed player", "gameID", g.ID, "playerID", e.PlayerID)
			changed = true
		}
	}
	g.Lineup = kept

	for _, id := range rosterIDs {
		if known[id] {
			g.Lineup = append(g.Lineup, LineupEntry{PlayerID: id, Location: LocationBench})
			changed = true
		}
	}
	return changed
}

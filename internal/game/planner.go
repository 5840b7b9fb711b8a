package game

import (
	"time"

	"github.com/charmbracelet/log"
)

// PlannedSwap pairs a bench player with the field player they will
// replace, and the field position they will take over.
type PlannedSwap struct {
	BenchPlayerID string   `json:"benchPlayerId"`
	FieldPlayerID string   `json:"fieldPlayerId"`
	Target        Position `json:"targetPosition"`
}

// Planner is the two-phase substitution workflow: swaps are staged
// while planning is active and only touch the lineup when committed as
// a batch. The plan is ephemeral and never persisted.
type Planner struct {
	active bool
	swaps  []PlannedSwap
}

// Active reports whether planning mode is on.
func (p *Planner) Active() bool {
	return p.active
}

// Swaps returns a copy of the currently staged swaps in staging order.
func (p *Planner) Swaps() []PlannedSwap {
	out := make([]PlannedSwap, len(p.swaps))
	copy(out, p.swaps)
	return out
}

// Enter switches planning mode on, discarding any stale plan. Rejected
// when the game is finished.
func (p *Planner) Enter(g *Game) bool {
	if g.IsFinished {
		log.Debug("Ignoring planning mode on finished game", "gameID", g.ID)
		return false
	}
	p.swaps = nil
	p.active = true
	return true
}

// Stage records a swap: benchPlayerID will replace fieldPlayerID at
// target. A prior plan for the same bench player is replaced, and a
// prior plan claiming the same field slot is evicted, so each bench
// player and each field slot appears at most once.
func (p *Planner) Stage(g *Game, benchPlayerID, fieldPlayerID string, target Position) bool {
	if !p.active {
		log.Warn("Stage called outside planning mode", "gameID", g.ID)
		return false
	}
	bench := g.Entry(benchPlayerID)
	field := g.Entry(fieldPlayerID)
	if bench == nil || field == nil {
		log.Warn("Stage references player not in lineup", "gameID", g.ID, "benchPlayerID", benchPlayerID, "fieldPlayerID", fieldPlayerID)
		return false
	}
	if bench.Location != LocationBench || field.Location != LocationField {
		log.Warn("Stage requires a bench player and a field player", "gameID", g.ID,
			"benchLocation", bench.Location, "fieldLocation", field.Location)
		return false
	}

	kept := p.swaps[:0]
	for _, s := range p.swaps {
		if s.BenchPlayerID == benchPlayerID || s.FieldPlayerID == fieldPlayerID {
			continue
		}
		kept = append(kept, s)
	}
	p.swaps = append(kept, PlannedSwap{
		BenchPlayerID: benchPlayerID,
		FieldPlayerID: fieldPlayerID,
		Target:        target,
	})
	return true
}

// Commit executes every staged swap against the game and exits
// planning mode. For each pair the field occupant moves to the bench
// first, then the bench player takes the field at the staged position,
// so no two entries ever claim the same slot. Readers observe the
// lineup only after the whole batch has been applied.
func (p *Planner) Commit(g *Game, now time.Time) int {
	if !p.active {
		return 0
	}
	applied := 0
	for _, s := range p.swaps {
		if !g.Move(s.FieldPlayerID, LocationBench, nil, now) {
			log.Warn("Planned swap could not vacate field slot", "gameID", g.ID, "fieldPlayerID", s.FieldPlayerID)
			continue
		}
		target := s.Target
		g.Move(s.BenchPlayerID, LocationField, &target, now)
		applied++
	}
	p.swaps = nil
	p.active = false
	return applied
}

// Cancel discards the staged plan and exits planning mode without
// touching the lineup.
func (p *Planner) Cancel() {
	p.swaps = nil
	p.active = false
}

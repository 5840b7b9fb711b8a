package game

import (
	"time"

	"github.com/charmbracelet/log"
)

// Move is the single funnel for every placement change. It transitions
// one entry to the target location, banking or starting its timer,
// keeping the position consistent with the location, and counting
// bench<->field substitutions. All other code paths (drops, planner
// commits, resets) go through here.
//
// Invalid moves (unknown player, unknown location, a field move
// without a coordinate, same-location no-ops) leave the game untouched
// and report false.
func (g *Game) Move(playerID string, target Location, pos *Position, now time.Time) bool {
	e := g.Entry(playerID)
	if e == nil {
		log.Warn("Move references player not in lineup", "gameID", g.ID, "playerID", playerID)
		return false
	}
	if !target.Valid() {
		log.Warn("Move to unknown location", "gameID", g.ID, "playerID", playerID, "location", target)
		return false
	}
	// A field entry always carries a position, so a field move must
	// bring one.
	if target == LocationField && pos == nil {
		log.Warn("Move to field without a position", "gameID", g.ID, "playerID", playerID)
		return false
	}

	source := e.Location
	if source == target {
		// Repositioning within the field updates the coordinate but
		// must not cycle the timer through a bank/restart, which would
		// shave sub-second time on every drag.
		if target == LocationField && pos != nil {
			p := *pos
			e.Position = &p
			return true
		}
		return false
	}

	nowMs := now.UnixMilli()

	// Leaving an accruing state banks whatever has built up.
	if source == LocationField || source == LocationInactive {
		e.bankTimer(nowMs)
	}

	e.Location = target

	if target == LocationField {
		if g.TimerStatus == TimerRunning {
			e.startTimer(nowMs)
		}
		p := *pos
		e.Position = &p
	} else {
		e.TimerStartedAt = nil
		e.Position = nil
	}

	switch {
	case source == LocationBench && target == LocationField:
		e.SubbedOnCount++
	case source == LocationField && target == LocationBench:
		e.SubbedOffCount++
	}
	return true
}

// ResolveDrop interprets a drag-and-drop onto the field. A drop inside
// an existing occupant's icon bounding box (position +/- half the icon
// extent per axis) swaps the two players: the occupant takes the
// dragged player's source location, keeping the dragged player's old
// field position when the drag originated on field, and the dragged
// player takes the occupant's former position. A drop onto empty space
// is a plain move to the drop coordinate.
func (g *Game) ResolveDrop(playerID string, drop Position, halfW, halfH float64, now time.Time) bool {
	dragged := g.Entry(playerID)
	if dragged == nil {
		log.Warn("Drop references player not in lineup", "gameID", g.ID, "playerID", playerID)
		return false
	}

	occupant := g.fieldOccupantAt(drop, halfW, halfH, playerID)
	if occupant == nil {
		return g.Move(playerID, LocationField, &drop, now)
	}

	sourceLoc := dragged.Location
	var sourcePos *Position
	if sourceLoc == LocationField && dragged.Position != nil {
		p := *dragged.Position
		sourcePos = &p
	}
	var occupantPos *Position
	if occupant.Position != nil {
		p := *occupant.Position
		occupantPos = &p
	}

	// Occupant vacates the slot first so the two entries never both
	// claim it.
	g.Move(occupant.PlayerID, sourceLoc, sourcePos, now)
	g.Move(playerID, LocationField, occupantPos, now)
	return true
}

// fieldOccupantAt finds a field entry whose icon bounding box contains
// the given coordinate, excluding the dragged player itself.
func (g *Game) fieldOccupantAt(at Position, halfW, halfH float64, excludeID string) *LineupEntry {
	for i := range g.Lineup {
		e := &g.Lineup[i]
		if e.PlayerID == excludeID || e.Location != LocationField || e.Position == nil {
			continue
		}
		dx := e.Position.X - at.X
		dy := e.Position.Y - at.Y
		if dx >= -halfW && dx <= halfW && dy >= -halfH && dy <= halfH {
			return e
		}
	}
	return nil
}

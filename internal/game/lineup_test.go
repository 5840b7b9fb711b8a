package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/touchlineapp/touchline/internal/game"
)

func newTestGame() *game.Game {
	return &game.Game{
		ID:          "g1",
		TimerStatus: game.TimerStopped,
		Lineup: []game.LineupEntry{
			{PlayerID: "p1", Location: game.LocationField, Position: &game.Position{X: 50, Y: 30}},
			{PlayerID: "p2", Location: game.LocationBench},
			{PlayerID: "p3", Location: game.LocationBench},
			{PlayerID: "p4", Location: game.LocationInactive},
		},
	}
}

func TestMoveCountsSubstitutions(t *testing.T) {
	g := newTestGame()

	require.True(t, g.Move("p2", game.LocationField, &game.Position{X: 20, Y: 20}, at(0)))
	assert.Equal(t, 1, g.Entry("p2").SubbedOnCount)
	assert.Equal(t, 0, g.Entry("p2").SubbedOffCount)

	require.True(t, g.Move("p2", game.LocationBench, nil, at(5)))
	assert.Equal(t, 1, g.Entry("p2").SubbedOnCount)
	assert.Equal(t, 1, g.Entry("p2").SubbedOffCount)
}

func TestMoveTransitionsLocation(t *testing.T) {
	g := newTestGame()

	require.True(t, g.Move("p2", game.LocationField, &game.Position{X: 20, Y: 20}, at(0)))
	assert.Equal(t, game.LocationField, g.Entry("p2").Location)

	// The next move must see the updated location, not the original one.
	require.True(t, g.Move("p2", game.LocationInactive, nil, at(5)))
	assert.Equal(t, game.LocationInactive, g.Entry("p2").Location)

	require.True(t, g.Move("p2", game.LocationBench, nil, at(10)))
	assert.Equal(t, game.LocationBench, g.Entry("p2").Location)
	assert.Equal(t, 1, g.Entry("p2").SubbedOnCount, "one bench-to-field transition")
	assert.Equal(t, 0, g.Entry("p2").SubbedOffCount, "leaving via inactive is not a substitution")
}

func TestMoveToFieldRequiresPosition(t *testing.T) {
	g := newTestGame()

	assert.False(t, g.Move("p2", game.LocationField, nil, at(0)))
	e := g.Entry("p2")
	assert.Equal(t, game.LocationBench, e.Location)
	assert.Nil(t, e.Position)
	assert.Equal(t, 0, e.SubbedOnCount)
}

func TestMoveThroughInactiveNeverCounts(t *testing.T) {
	g := newTestGame()

	require.True(t, g.Move("p1", game.LocationInactive, nil, at(0)))
	require.True(t, g.Move("p1", game.LocationBench, nil, at(1)))
	require.True(t, g.Move("p4", game.LocationField, &game.Position{X: 10, Y: 10}, at(2)))

	assert.Equal(t, 0, g.Entry("p1").SubbedOnCount)
	assert.Equal(t, 0, g.Entry("p1").SubbedOffCount)
	assert.Equal(t, 0, g.Entry("p4").SubbedOnCount)
	assert.Equal(t, 0, g.Entry("p4").SubbedOffCount)
}

func TestMovePositionDefinedIffField(t *testing.T) {
	g := newTestGame()

	g.Move("p2", game.LocationField, &game.Position{X: 70, Y: 40}, at(0))
	require.NotNil(t, g.Entry("p2").Position)
	assert.Equal(t, 70.0, g.Entry("p2").Position.X)

	g.Move("p2", game.LocationInactive, &game.Position{X: 1, Y: 1}, at(1))
	assert.Nil(t, g.Entry("p2").Position, "position must be cleared off the field")

	g.Move("p2", game.LocationBench, nil, at(2))
	assert.Nil(t, g.Entry("p2").Position)
}

func TestMoveSameLocationIsNoOp(t *testing.T) {
	g := newTestGame()

	assert.False(t, g.Move("p2", game.LocationBench, nil, at(0)))
	assert.Equal(t, 0, g.Entry("p2").SubbedOnCount)

	// Field-to-field repositioning only updates the coordinate.
	g.StartClock(at(0))
	stamp := g.Entry("p1").TimerStartedAt
	require.NotNil(t, stamp)
	require.True(t, g.Move("p1", game.LocationField, &game.Position{X: 80, Y: 80}, at(10)))
	assert.Equal(t, stamp, g.Entry("p1").TimerStartedAt, "repositioning must not restart the timer")
	assert.Equal(t, 80.0, g.Entry("p1").Position.X)
	assert.Equal(t, int64(0), g.Entry("p1").PlaytimeSeconds)
}

func TestMoveUnknownPlayerIsIgnored(t *testing.T) {
	g := newTestGame()
	before := make([]game.LineupEntry, len(g.Lineup))
	copy(before, g.Lineup)

	assert.False(t, g.Move("ghost", game.LocationField, &game.Position{X: 1, Y: 1}, at(0)))
	assert.Equal(t, before, g.Lineup)
}

func TestMoveBanksTimeWhenLeavingField(t *testing.T) {
	g := newTestGame()
	g.StartClock(at(0))

	require.True(t, g.Move("p1", game.LocationBench, nil, at(25)))
	e := g.Entry("p1")
	assert.Equal(t, int64(25), e.PlaytimeSeconds)
	assert.Nil(t, e.TimerStartedAt)
}

func TestMoveStartsTimerOnlyWhileClockRuns(t *testing.T) {
	g := newTestGame()

	g.Move("p2", game.LocationField, &game.Position{X: 10, Y: 10}, at(0))
	assert.Nil(t, g.Entry("p2").TimerStartedAt, "clock stopped: no accrual")

	g.StartClock(at(5))
	g.Move("p3", game.LocationField, &game.Position{X: 90, Y: 90}, at(7))
	require.NotNil(t, g.Entry("p3").TimerStartedAt)
	assert.Equal(t, int64(7000), *g.Entry("p3").TimerStartedAt)
}

// Playtime conservation: banked seconds never decrease and always equal
// the sum of on-field intervals while the clock ran.
func TestPlaytimeConservation(t *testing.T) {
	g := newTestGame()

	g.StartClock(at(0))
	g.Move("p1", game.LocationBench, nil, at(10)) // 10s on field
	g.Move("p1", game.LocationField, &game.Position{X: 5, Y: 5}, at(20))
	g.Move("p1", game.LocationInactive, nil, at(35)) // +15s
	g.Move("p1", game.LocationField, &game.Position{X: 5, Y: 5}, at(40))
	g.StopClock(at(50)) // +10s

	assert.Equal(t, int64(35), g.Entry("p1").PlaytimeSeconds)
	assert.Equal(t, int64(50), g.TimerElapsedSeconds)
}

func TestResolveDropOntoEmptySpace(t *testing.T) {
	g := newTestGame()

	require.True(t, g.ResolveDrop("p2", game.Position{X: 25, Y: 75}, 5, 5, at(0)))
	e := g.Entry("p2")
	assert.Equal(t, game.LocationField, e.Location)
	require.NotNil(t, e.Position)
	assert.Equal(t, game.Position{X: 25, Y: 75}, *e.Position)
	assert.Equal(t, 1, e.SubbedOnCount)
}

func TestResolveDropOntoOccupiedSlotSwapsFromBench(t *testing.T) {
	g := newTestGame()

	// p1 sits at (50,30); dropping inside its bounding box swaps.
	require.True(t, g.ResolveDrop("p2", game.Position{X: 52, Y: 28}, 5, 5, at(0)))

	p1, p2 := g.Entry("p1"), g.Entry("p2")
	assert.Equal(t, game.LocationBench, p1.Location)
	assert.Nil(t, p1.Position, "occupant displaced to bench loses its position")
	assert.Equal(t, 1, p1.SubbedOffCount)

	assert.Equal(t, game.LocationField, p2.Location)
	require.NotNil(t, p2.Position)
	assert.Equal(t, game.Position{X: 50, Y: 30}, *p2.Position, "dragged player takes the occupant's former spot")
	assert.Equal(t, 1, p2.SubbedOnCount)
}

func TestResolveDropSwapsTwoFieldPlayers(t *testing.T) {
	g := newTestGame()
	g.Move("p2", game.LocationField, &game.Position{X: 10, Y: 10}, at(0))
	g.Entry("p2").SubbedOnCount = 0 // isolate the swap from setup

	require.True(t, g.ResolveDrop("p2", game.Position{X: 49, Y: 31}, 5, 5, at(1)))

	p1, p2 := g.Entry("p1"), g.Entry("p2")
	assert.Equal(t, game.LocationField, p1.Location)
	require.NotNil(t, p1.Position)
	assert.Equal(t, game.Position{X: 10, Y: 10}, *p1.Position, "occupant inherits the dragged player's old spot")
	assert.Equal(t, game.Position{X: 50, Y: 30}, *p2.Position)
	assert.Equal(t, 0, p1.SubbedOffCount, "field-to-field swaps are not substitutions")
	assert.Equal(t, 0, p2.SubbedOnCount)
}

func TestResolveDropJustOutsideBoundingBoxIsPlainMove(t *testing.T) {
	g := newTestGame()

	require.True(t, g.ResolveDrop("p2", game.Position{X: 56, Y: 30}, 5, 5, at(0)))
	assert.Equal(t, game.LocationField, g.Entry("p1").Location, "occupant stays put")
	assert.Equal(t, game.Position{X: 56, Y: 30}, *g.Entry("p2").Position)
}

// The full clock scenario: start, stop, substitute while stopped,
// restart, stop again.
func TestClockScenarioWithSubstitution(t *testing.T) {
	g := &game.Game{
		ID:          "g1",
		TimerStatus: game.TimerStopped,
		Lineup: []game.LineupEntry{
			{PlayerID: "p1", Location: game.LocationField, Position: &game.Position{X: 50, Y: 50}},
			{PlayerID: "p2", Location: game.LocationBench},
		},
	}

	require.True(t, g.Start(at(0)))
	require.True(t, g.Stop(at(30)))

	p1 := g.Entry("p1")
	assert.Equal(t, int64(30), p1.PlaytimeSeconds)
	assert.True(t, p1.IsStarter)

	require.True(t, g.Move("p2", game.LocationField, &game.Position{X: 60, Y: 60}, at(31)))
	p2 := g.Entry("p2")
	assert.Nil(t, p2.TimerStartedAt)
	assert.Equal(t, 1, p2.SubbedOnCount)
	assert.Equal(t, int64(0), p2.PlaytimeSeconds)
	assert.False(t, p2.IsStarter)

	require.True(t, g.Start(at(31)))
	require.NotNil(t, p1.TimerStartedAt)
	require.NotNil(t, p2.TimerStartedAt)
	assert.Equal(t, int64(31_000), *p1.TimerStartedAt)
	assert.Equal(t, int64(31_000), *p2.TimerStartedAt)

	require.True(t, g.Stop(at(61)))
	assert.Equal(t, int64(60), p1.PlaytimeSeconds)
	assert.Equal(t, int64(30), p2.PlaytimeSeconds)
	assert.Equal(t, int64(60), g.TimerElapsedSeconds)
}

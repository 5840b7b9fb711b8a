package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/touchlineapp/touchline/internal/game"
)

func newPlannerGame() *game.Game {
	return &game.Game{
		ID:          "g1",
		TimerStatus: game.TimerStopped,
		Lineup: []game.LineupEntry{
			{PlayerID: "x", Location: game.LocationField, Position: &game.Position{X: 30, Y: 30}},
			{PlayerID: "y", Location: game.LocationField, Position: &game.Position{X: 70, Y: 30}},
			{PlayerID: "a", Location: game.LocationBench},
			{PlayerID: "b", Location: game.LocationBench},
		},
	}
}

func TestPlannerCommitAppliesBatch(t *testing.T) {
	g := newPlannerGame()
	var p game.Planner

	require.True(t, p.Enter(g))
	require.True(t, p.Stage(g, "a", "x", game.Position{X: 30, Y: 30}))
	require.True(t, p.Stage(g, "b", "y", game.Position{X: 70, Y: 30}))

	applied := p.Commit(g, at(100))
	assert.Equal(t, 2, applied)
	assert.False(t, p.Active())
	assert.Empty(t, p.Swaps())

	assert.Equal(t, game.LocationField, g.Entry("a").Location)
	assert.Equal(t, game.Position{X: 30, Y: 30}, *g.Entry("a").Position)
	assert.Equal(t, game.LocationField, g.Entry("b").Location)
	assert.Equal(t, game.Position{X: 70, Y: 30}, *g.Entry("b").Position)
	assert.Equal(t, game.LocationBench, g.Entry("x").Location)
	assert.Nil(t, g.Entry("x").Position)
	assert.Equal(t, game.LocationBench, g.Entry("y").Location)

	totalOn := g.Entry("a").SubbedOnCount + g.Entry("b").SubbedOnCount +
		g.Entry("x").SubbedOnCount + g.Entry("y").SubbedOnCount
	totalOff := g.Entry("a").SubbedOffCount + g.Entry("b").SubbedOffCount +
		g.Entry("x").SubbedOffCount + g.Entry("y").SubbedOffCount
	assert.Equal(t, 2, totalOn)
	assert.Equal(t, 2, totalOff)
}

func TestPlannerCancelLeavesLineupUntouched(t *testing.T) {
	g := newPlannerGame()
	before := make([]game.LineupEntry, len(g.Lineup))
	copy(before, g.Lineup)

	var p game.Planner
	require.True(t, p.Enter(g))
	require.True(t, p.Stage(g, "a", "x", game.Position{X: 30, Y: 30}))
	p.Cancel()

	assert.False(t, p.Active())
	assert.Empty(t, p.Swaps())
	assert.Equal(t, before, g.Lineup)
}

func TestPlannerStageResolvesConflicts(t *testing.T) {
	g := newPlannerGame()
	var p game.Planner
	require.True(t, p.Enter(g))

	// Two bench players fighting over the same field slot: the later
	// plan wins.
	require.True(t, p.Stage(g, "a", "x", game.Position{X: 30, Y: 30}))
	require.True(t, p.Stage(g, "b", "x", game.Position{X: 30, Y: 30}))

	swaps := p.Swaps()
	require.Len(t, swaps, 1)
	assert.Equal(t, "b", swaps[0].BenchPlayerID)
	assert.Equal(t, "x", swaps[0].FieldPlayerID)

	// Restaging the same bench player replaces their earlier plan.
	require.True(t, p.Stage(g, "b", "y", game.Position{X: 70, Y: 30}))
	swaps = p.Swaps()
	require.Len(t, swaps, 1)
	assert.Equal(t, "y", swaps[0].FieldPlayerID)
}

func TestPlannerStageValidatesLocations(t *testing.T) {
	g := newPlannerGame()
	var p game.Planner
	require.True(t, p.Enter(g))

	assert.False(t, p.Stage(g, "x", "y", game.Position{}), "field player cannot be staged as incoming")
	assert.False(t, p.Stage(g, "a", "b", game.Position{}), "target must be on the field")
	assert.False(t, p.Stage(g, "ghost", "x", game.Position{}))
	assert.Empty(t, p.Swaps())
}

func TestPlannerEnterRejectedWhenFinished(t *testing.T) {
	g := newPlannerGame()
	g.IsFinished = true

	var p game.Planner
	assert.False(t, p.Enter(g))
	assert.False(t, p.Active())
}

func TestPlannerEnterClearsStalePlan(t *testing.T) {
	g := newPlannerGame()
	var p game.Planner

	require.True(t, p.Enter(g))
	require.True(t, p.Stage(g, "a", "x", game.Position{X: 30, Y: 30}))
	require.True(t, p.Enter(g))
	assert.Empty(t, p.Swaps())
}

func TestPlannerStageOutsidePlanningModeRejected(t *testing.T) {
	g := newPlannerGame()
	var p game.Planner

	assert.False(t, p.Stage(g, "a", "x", game.Position{X: 30, Y: 30}))
	assert.Equal(t, 0, p.Commit(g, at(0)))
}

func TestPlannerCommitStartsTimersWhileClockRuns(t *testing.T) {
	g := newPlannerGame()
	g.StartClock(at(0))

	var p game.Planner
	require.True(t, p.Enter(g))
	require.True(t, p.Stage(g, "a", "x", game.Position{X: 30, Y: 30}))
	p.Commit(g, at(45))

	assert.Equal(t, int64(45), g.Entry("x").PlaytimeSeconds, "displaced player banks on the way out")
	assert.Nil(t, g.Entry("x").TimerStartedAt)
	require.NotNil(t, g.Entry("a").TimerStartedAt)
	assert.Equal(t, int64(45_000), *g.Entry("a").TimerStartedAt)
}

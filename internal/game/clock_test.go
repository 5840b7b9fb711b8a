package game_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/touchlineapp/touchline/internal/game"
)

func at(seconds int64) time.Time {
	return time.UnixMilli(seconds * 1000)
}

func TestClockStartStop(t *testing.T) {
	g := &game.Game{ID: "g1", TimerStatus: game.TimerStopped}

	require.True(t, g.StartClock(at(0)))
	assert.Equal(t, game.TimerRunning, g.TimerStatus)
	require.NotNil(t, g.TimerStartTime)
	assert.Equal(t, int64(0), *g.TimerStartTime)

	assert.False(t, g.StartClock(at(5)), "starting a running clock is a no-op")

	require.True(t, g.StopClock(at(30)))
	assert.Equal(t, game.TimerStopped, g.TimerStatus)
	assert.Nil(t, g.TimerStartTime)
	assert.Equal(t, int64(30), g.TimerElapsedSeconds)

	assert.False(t, g.StopClock(at(31)), "stopping a stopped clock is a no-op")
	assert.Equal(t, int64(30), g.TimerElapsedSeconds)
}

func TestClockRejectsStartWhenFinished(t *testing.T) {
	g := &game.Game{ID: "g1", TimerStatus: game.TimerStopped, IsFinished: true}

	assert.False(t, g.StartClock(at(0)))
	assert.Equal(t, game.TimerStopped, g.TimerStatus)
	assert.Nil(t, g.TimerStartTime)
}

func TestClockDisplayElapsedIsPure(t *testing.T) {
	g := &game.Game{ID: "g1", TimerStatus: game.TimerStopped, TimerElapsedSeconds: 10}

	assert.Equal(t, int64(10), g.DisplayElapsedSeconds(at(100)))

	g.StartClock(at(100))
	assert.Equal(t, int64(15), g.DisplayElapsedSeconds(at(105)))
	assert.Equal(t, int64(25), g.DisplayElapsedSeconds(at(115)))

	// Projections never bank anything.
	assert.Equal(t, int64(10), g.TimerElapsedSeconds)
	require.NotNil(t, g.TimerStartTime)
	assert.Equal(t, int64(100_000), *g.TimerStartTime)
}

func TestClockBankingRoundsToWholeSeconds(t *testing.T) {
	g := &game.Game{ID: "g1", TimerStatus: game.TimerStopped}

	g.StartClock(time.UnixMilli(0))
	g.StopClock(time.UnixMilli(1499))
	assert.Equal(t, int64(1), g.TimerElapsedSeconds)

	g.StartClock(time.UnixMilli(2000))
	g.StopClock(time.UnixMilli(3501))
	assert.Equal(t, int64(3), g.TimerElapsedSeconds)
}

func TestClockCascadesIntoPlayerTimers(t *testing.T) {
	g := &game.Game{
		ID:          "g1",
		TimerStatus: game.TimerStopped,
		Lineup: []game.LineupEntry{
			{PlayerID: "p1", Location: game.LocationField, Position: &game.Position{X: 50, Y: 50}},
			{PlayerID: "p2", Location: game.LocationBench},
			{PlayerID: "p3", Location: game.LocationInactive},
		},
	}

	g.StartClock(at(0))
	require.NotNil(t, g.Entry("p1").TimerStartedAt)
	assert.Nil(t, g.Entry("p2").TimerStartedAt, "bench players never accrue")
	assert.Nil(t, g.Entry("p3").TimerStartedAt, "inactive players do not start accruing")

	g.StopClock(at(42))
	assert.Nil(t, g.Entry("p1").TimerStartedAt)
	assert.Equal(t, int64(42), g.Entry("p1").PlaytimeSeconds)
	assert.Equal(t, int64(0), g.Entry("p2").PlaytimeSeconds)
}

func TestStopBanksInactiveEntryHoldingStamp(t *testing.T) {
	g := &game.Game{
		ID:          "g1",
		TimerStatus: game.TimerStopped,
		Lineup: []game.LineupEntry{
			{PlayerID: "p1", Location: game.LocationField, Position: &game.Position{X: 10, Y: 10}},
		},
	}

	g.StartClock(at(0))
	// Moving to inactive banks on the way out; simulate the stamp
	// surviving by hand to cover the clock-stop sweep.
	g.Entry("p1").Location = game.LocationInactive
	g.Entry("p1").Position = nil

	g.StopClock(at(20))
	assert.Nil(t, g.Entry("p1").TimerStartedAt)
	assert.Equal(t, int64(20), g.Entry("p1").PlaytimeSeconds)
}

func TestPlayerDisplaySecondsProjection(t *testing.T) {
	start := int64(10_000)
	e := game.LineupEntry{
		PlayerID:        "p1",
		Location:        game.LocationField,
		PlaytimeSeconds: 5,
		TimerStartedAt:  &start,
	}

	assert.Equal(t, int64(15), e.DisplaySeconds(at(20)))
	assert.Equal(t, int64(5), e.PlaytimeSeconds, "projection must not bank")

	e.TimerStartedAt = nil
	assert.Equal(t, int64(5), e.DisplaySeconds(at(99)))
}

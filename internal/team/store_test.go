package team_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/touchlineapp/touchline/internal/database"
	"github.com/touchlineapp/touchline/internal/game"
	"github.com/touchlineapp/touchline/internal/team"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (team.TeamStore, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := team.New(db)
	return store, db, dbTeardown
}

func TestPlayerCRUD(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.AddPlayer(team.PlayerInfo{ID: "p1", FirstName: "Ada", LastName: "Nwosu", Number: "7"}))
	require.NoError(t, store.AddPlayer(team.PlayerInfo{ID: "p2", FirstName: "Mia", LastName: "Berg", Number: "10"}))

	assert.True(t, store.IsKnownPlayer("p1"))
	assert.False(t, store.IsKnownPlayer("p3"))

	players, err := store.ListPlayers()
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, "Berg", players[0].LastName, "roster is ordered by last name")

	require.NoError(t, store.UpdatePlayer(team.PlayerInfo{ID: "p1", FirstName: "Ada", LastName: "Nwosu", Number: "9"}))
	p, err := store.GetPlayer("p1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "9", p.Number)

	assert.Error(t, store.UpdatePlayer(team.PlayerInfo{ID: "ghost"}))

	missing, err := store.GetPlayer("ghost")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGameRoundTrip(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	start := time.Now().UnixMilli()
	g := &game.Game{
		ID:                  "g1",
		Opponent:            "Rovers",
		Date:                "2026-09-12",
		Time:                "10:30",
		Venue:               game.VenueAway,
		HomeScore:           1,
		AwayScore:           2,
		TimerStatus:         game.TimerRunning,
		TimerStartTime:      &start,
		TimerElapsedSeconds: 300,
		Lineup: []game.LineupEntry{
			{PlayerID: "p1", Location: game.LocationField, Position: &game.Position{X: 50, Y: 40}, PlaytimeSeconds: 300, TimerStartedAt: &start, IsStarter: true},
			{PlayerID: "p2", Location: game.LocationBench, SubbedOffCount: 1},
		},
	}

	require.NoError(t, store.CreateGame(g))

	loaded, err := store.GetGame("g1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, g.Opponent, loaded.Opponent)
	assert.Equal(t, game.VenueAway, loaded.Venue)
	assert.Equal(t, game.TimerRunning, loaded.TimerStatus)
	require.NotNil(t, loaded.TimerStartTime)
	assert.Equal(t, start, *loaded.TimerStartTime)
	require.Len(t, loaded.Lineup, 2)
	assert.Equal(t, g.Lineup[0], loaded.Lineup[0])
	assert.Equal(t, g.Lineup[1], loaded.Lineup[1])

	// SaveGame upserts the whole aggregate.
	loaded.StopClock(time.UnixMilli(start + 30_000))
	require.NoError(t, store.SaveGame(loaded))

	reloaded, err := store.GetGame("g1")
	require.NoError(t, err)
	assert.Equal(t, game.TimerStopped, reloaded.TimerStatus)
	assert.Nil(t, reloaded.TimerStartTime)
	assert.Equal(t, int64(330), reloaded.TimerElapsedSeconds)
	assert.Equal(t, int64(330), reloaded.Lineup[0].PlaytimeSeconds)
}

func TestGameWithoutLineupStaysNil(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.CreateGame(&game.Game{ID: "g1", Opponent: "Rovers", Venue: game.VenueHome, TimerStatus: game.TimerStopped}))

	loaded, err := store.GetGame("g1")
	require.NoError(t, err)
	assert.Nil(t, loaded.Lineup, "a game keeps 'not yet initialized' across the round trip")
}

func TestRemovePlayerCascadesThroughLineups(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.AddPlayer(team.PlayerInfo{ID: "p1"}))
	require.NoError(t, store.AddPlayer(team.PlayerInfo{ID: "p2"}))
	require.NoError(t, store.CreateGame(&game.Game{
		ID: "g1", Venue: game.VenueHome, TimerStatus: game.TimerStopped,
		Lineup: []game.LineupEntry{
			{PlayerID: "p1", Location: game.LocationField, Position: &game.Position{X: 1, Y: 1}},
			{PlayerID: "p2", Location: game.LocationBench},
		},
	}))
	require.NoError(t, store.CreateGame(&game.Game{
		ID: "g2", Venue: game.VenueHome, TimerStatus: game.TimerStopped,
		Lineup: []game.LineupEntry{
			{PlayerID: "p1", Location: game.LocationBench},
		},
	}))

	require.NoError(t, store.RemovePlayer("p1"))
	assert.False(t, store.IsKnownPlayer("p1"))

	g1, err := store.GetGame("g1")
	require.NoError(t, err)
	require.Len(t, g1.Lineup, 1)
	assert.Equal(t, "p2", g1.Lineup[0].PlayerID)

	g2, err := store.GetGame("g2")
	require.NoError(t, err)
	assert.Empty(t, g2.Lineup)
}

func TestCorruptLineupBlobIsDiscarded(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.CreateGame(&game.Game{ID: "g1", Venue: game.VenueHome, TimerStatus: game.TimerStopped}))
	_, err := db.Exec(`UPDATE games SET lineup_json = '{not json' WHERE id = 'g1'`)
	require.NoError(t, err)

	g, err := store.GetGame("g1")
	require.NoError(t, err, "a corrupt blob must not fail the read")
	assert.Nil(t, g.Lineup)
}

func TestMalformedLineupEntriesAreDropped(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.CreateGame(&game.Game{ID: "g1", Venue: game.VenueHome, TimerStatus: game.TimerStopped}))
	blob := `[
		{"id":"p1","location":"moon","position":{"x":5,"y":5},"playtimeSeconds":-3},
		{"location":"bench"},
		"garbage",
		{"id":"p2","location":"field","position":{"x":10,"y":20}}
	]`
	_, err := db.Exec(`UPDATE games SET lineup_json = ? WHERE id = 'g1'`, blob)
	require.NoError(t, err)

	g, err := store.GetGame("g1")
	require.NoError(t, err)
	require.Len(t, g.Lineup, 2, "entries without an id or that fail to decode are dropped")

	p1 := g.Entry("p1")
	require.NotNil(t, p1)
	assert.Equal(t, game.LocationBench, p1.Location, "unknown location defaults to bench")
	assert.Nil(t, p1.Position)
	assert.Equal(t, int64(0), p1.PlaytimeSeconds)

	p2 := g.Entry("p2")
	require.NotNil(t, p2)
	assert.Equal(t, game.LocationField, p2.Location)
	require.NotNil(t, p2.Position)
}

func TestRunningClockWithoutStampReadsAsStopped(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.CreateGame(&game.Game{ID: "g1", Venue: game.VenueHome, TimerStatus: game.TimerStopped}))
	_, err := db.Exec(`UPDATE games SET timer_status = 'running', timer_start_time = NULL WHERE id = 'g1'`)
	require.NoError(t, err)

	g, err := store.GetGame("g1")
	require.NoError(t, err)
	assert.Equal(t, game.TimerStopped, g.TimerStatus)
}

func TestRepairedClockClearsEntryStamps(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.CreateGame(&game.Game{ID: "g1", Venue: game.VenueHome, TimerStatus: game.TimerStopped}))
	blob := `[{"id":"p1","location":"field","position":{"x":5,"y":5},"playtimeSeconds":60,"timerStartedAt":1000}]`
	_, err := db.Exec(`UPDATE games SET timer_status = 'running', timer_start_time = NULL, lineup_json = ? WHERE id = 'g1'`, blob)
	require.NoError(t, err)

	g, err := store.GetGame("g1")
	require.NoError(t, err)
	assert.Equal(t, game.TimerStopped, g.TimerStatus)

	// A stale stamp would survive the next clock start and bank the
	// downtime between sessions as playtime.
	p1 := g.Entry("p1")
	require.NotNil(t, p1)
	assert.Nil(t, p1.TimerStartedAt)
	assert.Equal(t, int64(60), p1.PlaytimeSeconds, "banked time is untouched")
}

func TestListAndDeleteGames(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.CreateGame(&game.Game{ID: "g1", Date: "2026-09-19", Venue: game.VenueHome, TimerStatus: game.TimerStopped}))
	require.NoError(t, store.CreateGame(&game.Game{ID: "g2", Date: "2026-09-12", Venue: game.VenueAway, TimerStatus: game.TimerStopped}))

	games, err := store.ListGames()
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, "g2", games[0].ID, "games are ordered by date")

	require.NoError(t, store.UpdateScore("g1", 3, 1))
	g, err := store.GetGame("g1")
	require.NoError(t, err)
	assert.Equal(t, 3, g.HomeScore)
	assert.Equal(t, 1, g.AwayScore)

	require.NoError(t, store.DeleteGame("g1"))
	g, err = store.GetGame("g1")
	require.NoError(t, err)
	assert.Nil(t, g)
}

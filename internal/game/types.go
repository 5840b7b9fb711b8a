package game

// Location describes where a player currently is for a given game.
type Location string

const (
	LocationField    Location = "field"
	LocationBench    Location = "bench"
	LocationInactive Location = "inactive"
)

// Valid reports whether l is one of the known locations.
func (l Location) Valid() bool {
	switch l {
	case LocationField, LocationBench, LocationInactive:
		return true
	}
	return false
}

// TimerStatus is the state of the master game clock.
type TimerStatus string

const (
	TimerStopped TimerStatus = "stopped"
	TimerRunning TimerStatus = "running"
)

// Venue indicates whether the game is played at home or away.
type Venue string

const (
	VenueHome Venue = "home"
	VenueAway Venue = "away"
)

// Position is a field coordinate, percentage-normalized to 0-100 on
// each axis. It is only meaningful while a player is on the field.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LineupEntry is a player's per-game record: where they are, how much
// they have played, and how often they were subbed on or off.
//
// PlaytimeSeconds is the banked value. TimerStartedAt, when non-nil,
// is the unix-millisecond timestamp of the last timer start; the time
// since then is unbanked and only materializes on the next stop.
type LineupEntry struct {
	PlayerID        string    `json:"id"`
	Location        Location  `json:"location"`
	Position        *Position `json:"position,omitempty"`
	PlaytimeSeconds int64     `json:"playtimeSeconds"`
	TimerStartedAt  *int64    `json:"timerStartedAt"`
	IsStarter       bool      `json:"isStarter"`
	SubbedOnCount   int       `json:"subbedOnCount"`
	SubbedOffCount  int       `json:"subbedOffCount"`
}

// Normalize repairs an entry loaded from storage so the rest of the
// code never sees an impossible state. Unknown locations fall back to
// bench, positions are stripped off non-field entries, and counters
// never go negative.
func (e *LineupEntry) Normalize() {
	if !e.Location.Valid() {
		e.Location = LocationBench
	}
	if e.Location != LocationField {
		e.Position = nil
		e.TimerStartedAt = nil
	}
	if e.PlaytimeSeconds < 0 {
		e.PlaytimeSeconds = 0
	}
	if e.SubbedOnCount < 0 {
		e.SubbedOnCount = 0
	}
	if e.SubbedOffCount < 0 {
		e.SubbedOffCount = 0
	}
}

// Game is the owned aggregate for a single scheduled game: schedule
// details, score, the master clock and the full lineup. A nil Lineup
// means the lineup has not been initialized from the roster yet.
type Game struct {
	ID                  string        `json:"id"`
	Opponent            string        `json:"opponent"`
	Date                string        `json:"date"`
	Time                string        `json:"time"`
	Venue               Venue         `json:"location"`
	HomeScore           int           `json:"homeScore"`
	AwayScore           int           `json:"awayScore"`
	TimerStatus         TimerStatus   `json:"timerStatus"`
	TimerStartTime      *int64        `json:"timerStartTime"`
	TimerElapsedSeconds int64         `json:"timerElapsedSeconds"`
	IsFinished          bool          `json:"isFinished"`
	Lineup              []LineupEntry `json:"lineup"`
}

// Entry returns the lineup entry for the given player, or nil if the
// player has no entry in this game.
func (g *Game) Entry(playerID string) *LineupEntry {
	for i := range g.Lineup {
		if g.Lineup[i].PlayerID == playerID {
			return &g.Lineup[i]
		}
	}
	return nil
}

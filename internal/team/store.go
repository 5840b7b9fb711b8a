package team

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/touchlineapp/touchline/internal/game"
)

// New creates a new TeamStore.
func New(db *sql.DB) TeamStore {
	return &store{
		db: db,
	}
}

// AddPlayer inserts a new roster player.
func (s *store) AddPlayer(p PlayerInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO players (id, first_name, last_name, number)
		VALUES (?, ?, ?, ?)
	`, p.ID, p.FirstName, p.LastName, p.Number)
	return err
}

// UpdatePlayer updates a player's mutable fields. The id never changes.
func (s *store) UpdatePlayer(p PlayerInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE players SET first_name = ?, last_name = ?, number = ?
		WHERE id = ?
	`, p.FirstName, p.LastName, p.Number, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("player %s not found", p.ID)
	}
	return nil
}

// RemovePlayer deletes a player and strips their entry from every
// stored lineup so no game keeps a dangling reference.
func (s *store) RemovePlayer(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM players WHERE id = ?", playerID); err != nil {
		tx.Rollback()
		return err
	}

	rows, err := tx.Query("SELECT id, lineup_json FROM games WHERE lineup_json IS NOT NULL")
	if err != nil {
		tx.Rollback()
		return err
	}

	type patch struct {
		gameID string
		blob   []byte
	}
	var patches []patch
	for rows.Next() {
		var gameID string
		var blob sql.NullString
		if err := rows.Scan(&gameID, &blob); err != nil {
			log.Error("Failed to scan game row for cascade", "error", err)
			continue
		}
		entries := decodeLineup(gameID, blob)
		if entries == nil {
			continue
		}
		kept := entries[:0]
		removed := false
		for _, e := range entries {
			if e.PlayerID == playerID {
				removed = true
				continue
			}
			kept = append(kept, e)
		}
		if !removed {
			continue
		}
		updated, err := json.Marshal(kept)
		if err != nil {
			log.Error("Failed to marshal lineup for cascade", "error", err, "gameID", gameID)
			continue
		}
		patches = append(patches, patch{gameID: gameID, blob: updated})
	}
	rows.Close()

	for _, p := range patches {
		if _, err := tx.Exec("UPDATE games SET lineup_json = ? WHERE id = ?", string(p.blob), p.gameID); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// GetPlayer returns a single roster player, or nil if unknown.
func (s *store) GetPlayer(playerID string) (*PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var p PlayerInfo
	err := s.db.QueryRow(`
		SELECT id, first_name, last_name, number FROM players WHERE id = ?
	`, playerID).Scan(&p.ID, &p.FirstName, &p.LastName, &p.Number)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPlayers returns the full roster ordered by last name.
func (s *store) ListPlayers() ([]PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, first_name, last_name, number FROM players
		ORDER BY last_name, first_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []PlayerInfo
	for rows.Next() {
		var p PlayerInfo
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Number); err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		players = append(players, p)
	}
	return players, nil
}

// IsKnownPlayer checks if a player id exists in the roster.
func (s *store) IsKnownPlayer(playerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var one int
	err := s.db.QueryRow("SELECT 1 FROM players WHERE id = ?", playerID).Scan(&one)
	return err == nil
}

// CreateGame inserts a newly scheduled game.
func (s *store) CreateGame(g *game.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := encodeLineup(g.Lineup)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO games (id, opponent, game_date, game_time, venue, home_score, away_score,
			timer_status, timer_start_time, timer_elapsed_seconds, is_finished, lineup_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, g.ID, g.Opponent, g.Date, g.Time, string(g.Venue), g.HomeScore, g.AwayScore,
		string(g.TimerStatus), nullableInt64(g.TimerStartTime), g.TimerElapsedSeconds, g.IsFinished, blob)
	return err
}

// SaveGame persists the whole aggregate, lineup and clock included.
// Best effort from the caller's point of view: callers log and carry
// on when persistence fails.
func (s *store) SaveGame(g *game.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := encodeLineup(g.Lineup)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO games (id, opponent, game_date, game_time, venue, home_score, away_score,
			timer_status, timer_start_time, timer_elapsed_seconds, is_finished, lineup_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			opponent = excluded.opponent,
			game_date = excluded.game_date,
			game_time = excluded.game_time,
			venue = excluded.venue,
			home_score = excluded.home_score,
			away_score = excluded.away_score,
			timer_status = excluded.timer_status,
			timer_start_time = excluded.timer_start_time,
			timer_elapsed_seconds = excluded.timer_elapsed_seconds,
			is_finished = excluded.is_finished,
			lineup_json = excluded.lineup_json;
	`, g.ID, g.Opponent, g.Date, g.Time, string(g.Venue), g.HomeScore, g.AwayScore,
		string(g.TimerStatus), nullableInt64(g.TimerStartTime), g.TimerElapsedSeconds, g.IsFinished, blob)
	return err
}

// GetGame returns a single game aggregate, or nil if unknown.
func (s *store) GetGame(gameID string) (*game.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, opponent, game_date, game_time, venue, home_score, away_score,
			timer_status, timer_start_time, timer_elapsed_seconds, is_finished, lineup_json
		FROM games WHERE id = ?
	`, gameID)
	g, err := scanGame(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return g, err
}

// ListGames returns all games ordered by date and time.
func (s *store) ListGames() ([]*game.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, opponent, game_date, game_time, venue, home_score, away_score,
			timer_status, timer_start_time, timer_elapsed_seconds, is_finished, lineup_json
		FROM games ORDER BY game_date, game_time
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []*game.Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			log.Error("Failed to scan game row", "error", err)
			continue
		}
		games = append(games, g)
	}
	return games, nil
}

// UpdateScore sets the score for a game.
func (s *store) UpdateScore(gameID string, homeScore, awayScore int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("UPDATE games SET home_score = ?, away_score = ? WHERE id = ?",
		homeScore, awayScore, gameID)
	return err
}

// DeleteGame removes a game and its lineup.
func (s *store) DeleteGame(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM games WHERE id = ?", gameID)
	return err
}

// Clear wipes all players and games.
func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM games"); err != nil {
		log.Error("Failed to clear games", "error", err)
	}
	if _, err := s.db.Exec("DELETE FROM players"); err != nil {
		log.Error("Failed to clear players", "error", err)
	}
}

// scanGame scans a single game row into the aggregate, applying the
// defensive lineup decode.
func scanGame(scanner interface{ Scan(...any) error }) (*game.Game, error) {
	var g game.Game
	var venue, timerStatus string
	var startTime sql.NullInt64
	var lineupJSON sql.NullString

	err := scanner.Scan(
		&g.ID, &g.Opponent, &g.Date, &g.Time, &venue, &g.HomeScore, &g.AwayScore,
		&timerStatus, &startTime, &g.TimerElapsedSeconds, &g.IsFinished, &lineupJSON,
	)
	if err != nil {
		return nil, err
	}

	g.Venue = game.Venue(venue)
	if g.Venue != game.VenueHome && g.Venue != game.VenueAway {
		g.Venue = game.VenueHome
	}
	g.TimerStatus = game.TimerStatus(timerStatus)
	if g.TimerStatus != game.TimerRunning {
		g.TimerStatus = game.TimerStopped
	}
	if startTime.Valid {
		ms := startTime.Int64
		g.TimerStartTime = &ms
	}
	// A running clock needs its start stamp; without one the record is
	// inconsistent and the safe reading is "stopped".
	if g.TimerStatus == game.TimerRunning && g.TimerStartTime == nil {
		g.TimerStatus = game.TimerStopped
	}
	g.Lineup = decodeLineup(g.ID, lineupJSON)

	// With a stopped clock no entry may hold a start stamp, or the next
	// stop would bank wall-clock downtime as playtime.
	if g.TimerStatus == game.TimerStopped {
		for i := range g.Lineup {
			g.Lineup[i].TimerStartedAt = nil
		}
	}

	return &g, nil
}

// encodeLineup serializes the lineup, preserving the distinction
// between "no lineup yet" (NULL) and an empty one.
func encodeLineup(entries []game.LineupEntry) (any, error) {
	if entries == nil {
		return nil, nil
	}
	blob, err := json.Marshal(entries)
	if err != nil {
		return nil, err
	}
	return string(blob), nil
}

// decodeLineup is the defensive read path for stored lineups: a
// malformed container discards the whole blob (the game falls back to
// "no lineup"), a malformed or id-less entry is dropped, and every
// surviving entry is normalized. Bad data never propagates as an error.
func decodeLineup(gameID string, blob sql.NullString) []game.LineupEntry {
	if !blob.Valid || blob.String == "" || blob.String == "null" {
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(blob.String), &raw); err != nil {
		log.Error("Discarding malformed lineup blob", "error", err, "gameID", gameID)
		return nil
	}

	entries := make([]game.LineupEntry, 0, len(raw))
	for _, r := range raw {
		var e game.LineupEntry
		if err := json.Unmarshal(r, &e); err != nil {
			log.Warn("Dropping malformed lineup entry", "error", err, "gameID", gameID)
			continue
		}
		if e.PlayerID == "" {
			log.Warn("Dropping lineup entry without a player id", "gameID", gameID)
			continue
		}
		e.Normalize()
		entries = append(entries, e)
	}
	return entries
}

func nullableInt64(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

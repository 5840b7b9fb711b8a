package backup

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/touchlineapp/touchline/internal/game"
	"github.com/touchlineapp/touchline/internal/team"
	"github.com/vmihailenco/msgpack/v5"
)

// Snapshot is a single-file backup of everything the store holds.
type Snapshot struct {
	Version int               `msgpack:"version"`
	Players []team.PlayerInfo `msgpack:"players"`
	Games   []*game.Game      `msgpack:"games"`
}

const snapshotVersion = 1

// Export serializes the full store contents into a msgpack blob.
func Export(store team.TeamStore) ([]byte, error) {
	players, err := store.ListPlayers()
	if err != nil {
		return nil, fmt.Errorf("failed to list players for export: %w", err)
	}
	games, err := store.ListGames()
	if err != nil {
		return nil, fmt.Errorf("failed to list games for export: %w", err)
	}

	blob, err := msgpack.Marshal(Snapshot{
		Version: snapshotVersion,
		Players: players,
		Games:   games,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return blob, nil
}

// Import restores a snapshot into the store. Individual records that
// fail to write are logged and skipped so a partially-usable snapshot
// still restores everything else.
func Import(store team.TeamStore, blob []byte) error {
	var snap Snapshot
	if err := msgpack.Unmarshal(blob, &snap); err != nil {
		return fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}

	for _, p := range snap.Players {
		if p.ID == "" {
			log.Warn("Skipping snapshot player without an id")
			continue
		}
		if err := store.AddPlayer(p); err != nil {
			log.Warn("Skipping snapshot player", "error", err, "playerID", p.ID)
		}
	}
	for _, g := range snap.Games {
		if g == nil || g.ID == "" {
			log.Warn("Skipping snapshot game without an id")
			continue
		}
		for i := range g.Lineup {
			g.Lineup[i].Normalize()
		}
		if err := store.SaveGame(g); err != nil {
			log.Warn("Skipping snapshot game", "error", err, "gameID", g.ID)
		}
	}
	return nil
}

package team

import "github.com/touchlineapp/touchline/internal/game"

// TeamStore defines the interface for interacting with the team's data:
// the roster of players and the scheduled games with their lineups.
type TeamStore interface {
	AddPlayer(p PlayerInfo) error
	UpdatePlayer(p PlayerInfo) error
	// RemovePlayer deletes a player and cascades the removal through
	// every stored game lineup.
	RemovePlayer(playerID string) error
	GetPlayer(playerID string) (*PlayerInfo, error)
	ListPlayers() ([]PlayerInfo, error)
	IsKnownPlayer(playerID string) bool

	CreateGame(g *game.Game) error
	// SaveGame persists the whole game aggregate, lineup included.
	SaveGame(g *game.Game) error
	GetGame(gameID string) (*game.Game, error)
	ListGames() ([]*game.Game, error)
	UpdateScore(gameID string, homeScore, awayScore int) error
	DeleteGame(gameID string) error
	Clear()
}

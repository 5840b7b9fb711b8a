package team

import (
	"sync"

	"github.com/touchlineapp/touchline/internal/game"
)

// MockStore is a mock implementation of the TeamStore interface for
// testing. It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	AddPlayerFunc     func(p PlayerInfo) error
	UpdatePlayerFunc  func(p PlayerInfo) error
	RemovePlayerFunc  func(playerID string) error
	GetPlayerFunc     func(playerID string) (*PlayerInfo, error)
	ListPlayersFunc   func() ([]PlayerInfo, error)
	IsKnownPlayerFunc func(playerID string) bool
	CreateGameFunc    func(g *game.Game) error
	SaveGameFunc      func(g *game.Game) error
	GetGameFunc       func(gameID string) (*game.Game, error)
	ListGamesFunc     func() ([]*game.Game, error)
	UpdateScoreFunc   func(gameID string, homeScore, awayScore int) error
	DeleteGameFunc    func(gameID string) error
	ClearFunc         func()

	// Call records
	AddPlayerCalls    []PlayerInfo
	UpdatePlayerCalls []PlayerInfo
	RemovePlayerCalls []string
	CreateGameCalls   []*game.Game
	SaveGameCalls     []*game.Game
	DeleteGameCalls   []string
	UpdateScoreCalls  []struct {
		GameID    string
		HomeScore int
		AwayScore int
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) AddPlayer(p PlayerInfo) error {
	m.mu.Lock()
	m.AddPlayerCalls = append(m.AddPlayerCalls, p)
	m.mu.Unlock()
	if m.AddPlayerFunc != nil {
		return m.AddPlayerFunc(p)
	}
	return nil
}

func (m *MockStore) UpdatePlayer(p PlayerInfo) error {
	m.mu.Lock()
	m.UpdatePlayerCalls = append(m.UpdatePlayerCalls, p)
	m.mu.Unlock()
	if m.UpdatePlayerFunc != nil {
		return m.UpdatePlayerFunc(p)
	}
	return nil
}

func (m *MockStore) RemovePlayer(playerID string) error {
	m.mu.Lock()
	m.RemovePlayerCalls = append(m.RemovePlayerCalls, playerID)
	m.mu.Unlock()
	if m.RemovePlayerFunc != nil {
		return m.RemovePlayerFunc(playerID)
	}
	return nil
}

func (m *MockStore) GetPlayer(playerID string) (*PlayerInfo, error) {
	if m.GetPlayerFunc != nil {
		return m.GetPlayerFunc(playerID)
	}
	return nil, nil
}

func (m *MockStore) ListPlayers() ([]PlayerInfo, error) {
	if m.ListPlayersFunc != nil {
		return m.ListPlayersFunc()
	}
	return nil, nil
}

func (m *MockStore) IsKnownPlayer(playerID string) bool {
	if m.IsKnownPlayerFunc != nil {
		return m.IsKnownPlayerFunc(playerID)
	}
	return false
}

func (m *MockStore) CreateGame(g *game.Game) error {
	m.mu.Lock()
	m.CreateGameCalls = append(m.CreateGameCalls, g)
	m.mu.Unlock()
	if m.CreateGameFunc != nil {
		return m.CreateGameFunc(g)
	}
	return nil
}

func (m *MockStore) SaveGame(g *game.Game) error {
	m.mu.Lock()
	m.SaveGameCalls = append(m.SaveGameCalls, g)
	m.mu.Unlock()
	if m.SaveGameFunc != nil {
		return m.SaveGameFunc(g)
	}
	return nil
}

func (m *MockStore) GetGame(gameID string) (*game.Game, error) {
	if m.GetGameFunc != nil {
		return m.GetGameFunc(gameID)
	}
	return nil, nil
}

func (m *MockStore) ListGames() ([]*game.Game, error) {
	if m.ListGamesFunc != nil {
		return m.ListGamesFunc()
	}
	return nil, nil
}

func (m *MockStore) UpdateScore(gameID string, homeScore, awayScore int) error {
	m.mu.Lock()
	m.UpdateScoreCalls = append(m.UpdateScoreCalls, struct {
		GameID    string
		HomeScore int
		AwayScore int
	}{gameID, homeScore, awayScore})
	m.mu.Unlock()
	if m.UpdateScoreFunc != nil {
		return m.UpdateScoreFunc(gameID, homeScore, awayScore)
	}
	return nil
}

func (m *MockStore) DeleteGame(gameID string) error {
	m.mu.Lock()
	m.DeleteGameCalls = append(m.DeleteGameCalls, gameID)
	m.mu.Unlock()
	if m.DeleteGameFunc != nil {
		return m.DeleteGameFunc(gameID)
	}
	return nil
}

func (m *MockStore) Clear() {
	if m.ClearFunc != nil {
		m.ClearFunc()
	}
}

package notifier

import (
	"sync"

	"github.com/touchlineapp/touchline/internal/game"
	"github.com/touchlineapp/touchline/internal/team"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendGameStartedCalls []struct {
		Game     *game.Game
		Starters []team.PlayerInfo
	}
	SendFinalScoreCalls []*game.Game

	// Spies
	SendGameStartedFunc func(g *game.Game, starters []team.PlayerInfo, dryRun bool) error
	SendFinalScoreFunc  func(g *game.Game, dryRun bool) error
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SendGameStarted(g *game.Game, starters []team.PlayerInfo, dryRun bool) error {
	m.mu.Lock()
	m.SendGameStartedCalls = append(m.SendGameStartedCalls, struct {
		Game     *game.Game
		Starters []team.PlayerInfo
	}{g, starters})
	m.mu.Unlock()
	if m.SendGameStartedFunc != nil {
		return m.SendGameStartedFunc(g, starters, dryRun)
	}
	return nil
}

func (m *Mock) SendFinalScore(g *game.Game, dryRun bool) error {
	m.mu.Lock()
	m.SendFinalScoreCalls = append(m.SendFinalScoreCalls, g)
	m.mu.Unlock()
	if m.SendFinalScoreFunc != nil {
		return m.SendFinalScoreFunc(g, dryRun)
	}
	return nil
}

package notifier

import (
	"github.com/touchlineapp/touchline/internal/game"
	"github.com/touchlineapp/touchline/internal/team"
)

// Noop is the Notifier used when no provider is configured.
type Noop struct{}

// NewNoop creates a Notifier that silently drops everything.
func NewNoop() *Noop {
	return &Noop{}
}

func (Noop) SendGameStarted(*game.Game, []team.PlayerInfo, bool) error { return nil }

func (Noop) SendFinalScore(*game.Game, bool) error { return nil }

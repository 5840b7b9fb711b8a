package notifier

import (
	"github.com/touchlineapp/touchline/internal/game"
	"github.com/touchlineapp/touchline/internal/team"
)

// Notifier defines a high-level interface for sending notifications about game-day events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// SendGameStarted announces a game kicking off, listing the starters.
	SendGameStarted(g *game.Game, starters []team.PlayerInfo, dryRun bool) error
	// SendFinalScore announces the final score once a game is finished.
	SendFinalScore(g *game.Game, dryRun bool) error
}

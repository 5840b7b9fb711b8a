package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"
	"github.com/touchlineapp/touchline/internal/game"
	"github.com/touchlineapp/touchline/internal/metrics"
	"github.com/touchlineapp/touchline/internal/notifier"
	"github.com/touchlineapp/touchline/internal/team"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending game-day notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	teamName  string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID, teamName string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		teamName:  teamName,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID, teamName string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		teamName:  teamName,
		metrics:   metrics,
	}
}

func (s *Notifier) sendBlocks(blocks []slack.Block, dryRun bool) error {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(blocks, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "blocks", string(jsonMsg))
		return nil
	}

	_, _, err := s.api.PostMessageContext(context.Background(), s.channelID, slack.MsgOptionBlocks(blocks...))
	if err != nil {
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		s.metrics.IncNotifFailed()
		return err
	}
	s.metrics.IncNotifSent()
	return nil
}

// SendGameStarted announces kickoff with the starting lineup.
func (s *Notifier) SendGameStarted(g *game.Game, starters []team.PlayerInfo, dryRun bool) error {
	var lines []string
	for _, p := range starters {
		lines = append(lines, fmt.Sprintf("`#%s` %s %s", p.Number, p.FirstName, p.LastName))
	}
	startersText := "_No starters on the field._"
	if len(lines) > 0 {
		startersText = strings.Join(lines, "\n")
	}

	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType,
			fmt.Sprintf("Kickoff: %s", s.fixtureLine(g)), false, false)),
		slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("*%s %s* · %s\n\n*Starting lineup*\n%s", g.Date, g.Time, venueLabel(g.Venue), startersText),
			false, false), nil, nil),
	}
	return s.sendBlocks(blocks, dryRun)
}

// SendFinalScore announces the final score.
func (s *Notifier) SendFinalScore(g *game.Game, dryRun bool) error {
	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, "Full time", false, false)),
		slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType,
			fmt.Sprintf("*%s*", s.scoreLine(g)), false, false), nil, nil),
	}
	return s.sendBlocks(blocks, dryRun)
}

func (s *Notifier) fixtureLine(g *game.Game) string {
	if g.Venue == game.VenueHome {
		return fmt.Sprintf("%s vs %s", s.teamName, g.Opponent)
	}
	return fmt.Sprintf("%s vs %s", g.Opponent, s.teamName)
}

func (s *Notifier) scoreLine(g *game.Game) string {
	if g.Venue == game.VenueHome {
		return fmt.Sprintf("%s %d - %d %s", s.teamName, g.HomeScore, g.AwayScore, g.Opponent)
	}
	return fmt.Sprintf("%s %d - %d %s", g.Opponent, g.HomeScore, g.AwayScore, s.teamName)
}

func venueLabel(v game.Venue) string {
	if v == game.VenueAway {
		return "away"
	}
	return "home"
}

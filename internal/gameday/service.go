package gameday

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/touchlineapp/touchline/internal/game"
	"github.com/touchlineapp/touchline/internal/metrics"
	"github.com/touchlineapp/touchline/internal/notifier"
	"github.com/touchlineapp/touchline/internal/team"
)

// New creates a new Service.
func New(store team.TeamStore, notif notifier.Notifier, metrics metrics.Metrics) *Service {
	return &Service{
		store:    store,
		notifier: notif,
		metrics:  metrics,
		planners: make(map[string]*game.Planner),
		now:      time.Now,
	}
}

// loadGame fetches the aggregate and keeps its lineup in sync with the
// roster. A sync that changes the entry set is persisted right away.
func (s *Service) loadGame(gameID string) (*game.Game, error) {
	g, err := s.store.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrNotFound
	}
	if g.Lineup != nil {
		players, err := s.store.ListPlayers()
		if err != nil {
			log.Error("Failed to list players for lineup sync", "error", err, "gameID", gameID)
			return g, nil
		}
		ids := make([]string, len(players))
		for i, p := range players {
			ids[i] = p.ID
		}
		if g.SyncLineup(ids) {
			s.persist(g)
		}
	}
	return g, nil
}

// persist saves the aggregate, logging instead of failing: storage is
// best effort and the in-memory result stands either way.
func (s *Service) persist(g *game.Game) {
	if err := s.store.SaveGame(g); err != nil {
		log.Error("Failed to persist game, continuing in memory", "error", err, "gameID", g.ID)
	}
}

// planner returns the game's planner, allocating one on first use.
// Only EnterPlanning allocates; every other path peeks so the map
// holds planners solely for games that actually entered planning.
func (s *Service) planner(gameID string) *game.Planner {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.planners[gameID]
	if !ok {
		p = &game.Planner{}
		s.planners[gameID] = p
	}
	return p
}

// peekPlanner returns the game's planner without allocating, or nil.
func (s *Service) peekPlanner(gameID string) *game.Planner {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.planners[gameID]
}

// dropPlanner discards any plan for the game and evicts the planner.
func (s *Service) dropPlanner(gameID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.planners, gameID)
}

// planningActive reports whether a plan is being staged for the game.
func (s *Service) planningActive(gameID string) bool {
	p := s.peekPlanner(gameID)
	return p != nil && p.Active()
}

// InitLineup initializes a game's lineup from the current roster. A
// game created without a lineup stays uninitialized until this runs.
func (s *Service) InitLineup(gameID string) (*game.Game, error) {
	g, err := s.loadGame(gameID)
	if err != nil {
		return nil, err
	}
	players, err := s.store.ListPlayers()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(players))
	for i, p := range players {
		ids[i] = p.ID
	}
	if g.Lineup == nil {
		g.Lineup = []game.LineupEntry{}
	}
	if g.SyncLineup(ids) {
		s.persist(g)
	}
	return g, nil
}

// StartGame starts (or resumes) the game clock. On a cold start the
// starters are announced.
func (s *Service) StartGame(gameID string, dryRun bool) (*game.Game, error) {
	g, err := s.loadGame(gameID)
	if err != nil {
		return nil, err
	}

	cold := g.TimerElapsedSeconds == 0 && g.TimerStatus == game.TimerStopped
	if !g.Start(s.now()) {
		if g.IsFinished {
			return nil, ErrFinished
		}
		return g, nil
	}

	s.metrics.IncGamesStarted()
	if !dryRun {
		s.persist(g)
	}

	if cold {
		starters := s.starterInfos(g)
		if err := s.notifier.SendGameStarted(g, starters, dryRun); err != nil {
			log.Error("Failed to send kickoff notification", "error", err, "gameID", gameID)
		}
	}
	return g, nil
}

// StopGame pauses the game clock, banking game and player time.
func (s *Service) StopGame(gameID string, dryRun bool) (*game.Game, error) {
	g, err := s.loadGame(gameID)
	if err != nil {
		return nil, err
	}
	if g.Stop(s.now()) && !dryRun {
		s.persist(g)
	}
	return g, nil
}

// FinishGame ends the game permanently and announces the final score.
// Any staged substitution plan is discarded.
func (s *Service) FinishGame(gameID string, dryRun bool) (*game.Game, error) {
	g, err := s.loadGame(gameID)
	if err != nil {
		return nil, err
	}
	if !g.Finish(s.now()) {
		return g, nil
	}

	s.dropPlanner(gameID)
	s.metrics.IncGamesFinished()
	if !dryRun {
		s.persist(g)
	}
	if err := s.notifier.SendFinalScore(g, dryRun); err != nil {
		log.Error("Failed to send final score notification", "error", err, "gameID", gameID)
	}
	return g, nil
}

// ResetLineup forces every entry back to the bench with zeroed state.
// Any staged substitution plan is discarded: its field targets no
// longer exist after the reset.
func (s *Service) ResetLineup(gameID string, confirm, dryRun bool) ([]game.LineupEntry, error) {
	g, err := s.loadGame(gameID)
	if err != nil {
		return nil, err
	}
	if g.IsFinished && !confirm {
		return nil, ErrFinished
	}

	s.dropPlanner(gameID)
	entries := g.ResetLineup()
	if !dryRun {
		s.persist(g)
	}
	return entries, nil
}

// Move applies a single placement change through the core funnel.
// Rejected while a substitution plan is active for the game, and on a
// finished game without confirmation.
func (s *Service) Move(gameID, playerID string, target game.Location, pos *game.Position, confirm, dryRun bool) (bool, error) {
	g, err := s.loadGame(gameID)
	if err != nil {
		return false, err
	}
	if g.IsFinished && !confirm {
		return false, ErrFinished
	}
	if s.planningActive(gameID) {
		return false, ErrPlanning
	}

	started := s.now()
	changed := g.Move(playerID, target, pos, started)
	if changed {
		s.metrics.IncMovesApplied()
		if !dryRun {
			s.persist(g)
		}
	}
	s.metrics.ObserveMoveDuration(time.Since(started).Seconds())
	return changed, nil
}

// Drop resolves a drag-and-drop onto the field, swapping with an
// overlapped occupant or moving to the free coordinate.
func (s *Service) Drop(gameID, playerID string, drop game.Position, halfW, halfH float64, confirm, dryRun bool) (bool, error) {
	g, err := s.loadGame(gameID)
	if err != nil {
		return false, err
	}
	if g.IsFinished && !confirm {
		return false, ErrFinished
	}
	if s.planningActive(gameID) {
		return false, ErrPlanning
	}

	started := s.now()
	changed := g.ResolveDrop(playerID, drop, halfW, halfH, started)
	if changed {
		s.metrics.IncMovesApplied()
		if !dryRun {
			s.persist(g)
		}
	}
	s.metrics.ObserveMoveDuration(time.Since(started).Seconds())
	return changed, nil
}

// EnterPlanning switches the game into substitution planning mode.
func (s *Service) EnterPlanning(gameID string) error {
	g, err := s.loadGame(gameID)
	if err != nil {
		return err
	}
	if !s.planner(gameID).Enter(g) {
		s.dropPlanner(gameID)
		return ErrFinished
	}
	return nil
}

// StagePlan records a proposed bench-for-field swap.
func (s *Service) StagePlan(gameID, benchPlayerID, fieldPlayerID string, target game.Position) (bool, error) {
	g, err := s.loadGame(gameID)
	if err != nil {
		return false, err
	}
	p := s.peekPlanner(gameID)
	if p == nil {
		log.Warn("Stage called before entering planning mode", "gameID", gameID)
		return false, nil
	}
	return p.Stage(g, benchPlayerID, fieldPlayerID, target), nil
}

// CommitPlan executes the staged swaps as one batch and persists the
// result once, after all of them have been applied.
func (s *Service) CommitPlan(gameID string, dryRun bool) (int, error) {
	g, err := s.loadGame(gameID)
	if err != nil {
		return 0, err
	}
	p := s.peekPlanner(gameID)
	if p == nil {
		return 0, nil
	}
	applied := p.Commit(g, s.now())
	s.dropPlanner(gameID)
	if applied > 0 {
		s.metrics.IncSwapsCommitted(applied)
		if !dryRun {
			s.persist(g)
		}
	}
	return applied, nil
}

// CancelPlan discards the staged plan without touching the lineup.
func (s *Service) CancelPlan(gameID string) {
	s.dropPlanner(gameID)
}

// PlanState returns the staged swaps and whether planning is active.
func (s *Service) PlanState(gameID string) ([]game.PlannedSwap, bool) {
	p := s.peekPlanner(gameID)
	if p == nil {
		return nil, false
	}
	return p.Swaps(), p.Active()
}

// DeleteGame removes the game and evicts any planner held for it.
func (s *Service) DeleteGame(gameID string) error {
	s.dropPlanner(gameID)
	return s.store.DeleteGame(gameID)
}

// UpdateScore sets the score, guarded on finished games.
func (s *Service) UpdateScore(gameID string, homeScore, awayScore int, confirm bool) error {
	g, err := s.loadGame(gameID)
	if err != nil {
		return err
	}
	if g.IsFinished && !confirm {
		return ErrFinished
	}
	g.HomeScore = homeScore
	g.AwayScore = awayScore
	s.persist(g)
	return nil
}

// Projection computes the live display state for a game. Pure: it
// never banks or persists anything.
func (s *Service) Projection(gameID string) (*DisplayState, error) {
	g, err := s.loadGame(gameID)
	if err != nil {
		return nil, err
	}
	return s.projectGame(g), nil
}

func (s *Service) projectGame(g *game.Game) *DisplayState {
	now := s.now()
	state := &DisplayState{
		GameID:         g.ID,
		Opponent:       g.Opponent,
		Venue:          g.Venue,
		HomeScore:      g.HomeScore,
		AwayScore:      g.AwayScore,
		TimerStatus:    g.TimerStatus,
		ElapsedSeconds: g.DisplayElapsedSeconds(now),
		IsFinished:     g.IsFinished,
		PlanningActive: s.planningActive(g.ID),
		Players:        make([]PlayerClock, 0, len(g.Lineup)),
	}
	for i := range g.Lineup {
		e := &g.Lineup[i]
		state.Players = append(state.Players, PlayerClock{
			PlayerID:       e.PlayerID,
			Location:       e.Location,
			Position:       e.Position,
			Seconds:        e.DisplaySeconds(now),
			IsStarter:      e.IsStarter,
			SubbedOnCount:  e.SubbedOnCount,
			SubbedOffCount: e.SubbedOffCount,
		})
	}
	return state
}

// RunningProjections returns display states for every game whose clock
// is currently running. Used by the live feed ticker.
func (s *Service) RunningProjections() []*DisplayState {
	games, err := s.store.ListGames()
	if err != nil {
		log.Error("Failed to list games for live projections", "error", err)
		return nil
	}
	var states []*DisplayState
	for _, g := range games {
		if g.TimerStatus == game.TimerRunning {
			states = append(states, s.projectGame(g))
		}
	}
	return states
}

func (s *Service) starterInfos(g *game.Game) []team.PlayerInfo {
	players, err := s.store.ListPlayers()
	if err != nil {
		log.Error("Failed to list players for kickoff notification", "error", err, "gameID", g.ID)
		return nil
	}
	byID := make(map[string]team.PlayerInfo, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}
	var starters []team.PlayerInfo
	for _, e := range g.Lineup {
		if e.IsStarter {
			if p, ok := byID[e.PlayerID]; ok {
				starters = append(starters, p)
			}
		}
	}
	return starters
}

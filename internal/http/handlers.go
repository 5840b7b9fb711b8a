package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/touchlineapp/touchline/internal/backup"
	"github.com/touchlineapp/touchline/internal/game"
	"github.com/touchlineapp/touchline/internal/gameday"
	"github.com/touchlineapp/touchline/internal/live"
	"github.com/touchlineapp/touchline/internal/team"
)

// decodeAndValidate reads a JSON body into v and runs struct validation.
func (s *Server) decodeAndValidate(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if err := s.validate.Struct(v); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// respondJSON writes v as a JSON response body.
func respondJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// respondServiceError maps service errors onto HTTP status codes.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gameday.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, gameday.ErrFinished):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, gameday.ErrPlanning):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Store.ListPlayers()
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.Error("Failed to get players from store", "error", err)
			return
		}
		if players == nil {
			players = []team.PlayerInfo{}
		}
		respondJSON(w, players)
	}
}

type addPlayerRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Number    string `json:"number"`
}

func (s *Server) AddPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addPlayerRequest
		if err := s.decodeAndValidate(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		p := team.PlayerInfo{
			ID:        uuid.NewString(),
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Number:    req.Number,
		}
		if err := s.Store.AddPlayer(p); err != nil {
			http.Error(w, "Failed to add player", http.StatusInternalServerError)
			log.Error("Failed to add player", "error", err)
			return
		}
		log.Info("Added player", "playerID", p.ID, "name", p.FirstName+" "+p.LastName)
		respondJSON(w, p)
	}
}

type updatePlayerRequest struct {
	ID        string `json:"id" validate:"required"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Number    string `json:"number"`
}

func (s *Server) UpdatePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updatePlayerRequest
		if err := s.decodeAndValidate(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		p := team.PlayerInfo{
			ID:        req.ID,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Number:    req.Number,
		}
		if err := s.Store.UpdatePlayer(p); err != nil {
			http.Error(w, "Failed to update player", http.StatusInternalServerError)
			log.Error("Failed to update player", "error", err, "playerID", p.ID)
			return
		}
		respondJSON(w, p)
	}
}

type removePlayerRequest struct {
	ID string `json:"id" validate:"required"`
}

func (s *Server) RemovePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req removePlayerRequest
		if err := s.decodeAndValidate(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := s.Store.RemovePlayer(req.ID); err != nil {
			http.Error(w, "Failed to remove player", http.StatusInternalServerError)
			log.Error("Failed to remove player", "error", err, "playerID", req.ID)
			return
		}
		log.Info("Removed player from roster and all lineups", "playerID", req.ID)
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Player removed")
	}
}

func (s *Server) ListGamesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		games, err := s.Store.ListGames()
		if err != nil {
			http.Error(w, "Failed to get games", http.StatusInternalServerError)
			log.Error("Failed to get games from store", "error", err)
			return
		}
		if games == nil {
			games = []*game.Game{}
		}
		respondJSON(w, games)
	}
}

type createGameRequest struct {
	Opponent string `json:"opponent" validate:"required"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Venue    string `json:"location" validate:"omitempty,oneof=home away"`
}

func (s *Server) CreateGameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createGameRequest
		if err := s.decodeAndValidate(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		venue := game.VenueHome
		if req.Venue == string(game.VenueAway) {
			venue = game.VenueAway
		}
		g := &game.Game{
			ID:          uuid.NewString(),
			Opponent:    req.Opponent,
			Date:        req.Date,
			Time:        req.Time,
			Venue:       venue,
			TimerStatus: game.TimerStopped,
		}
		if err := s.Store.CreateGame(g); err != nil {
			http.Error(w, "Failed to create game", http.StatusInternalServerError)
			log.Error("Failed to create game", "error", err)
			return
		}
		log.Info("Created game", "gameID", g.ID, "opponent", g.Opponent)
		respondJSON(w, g)
	}
}

type deleteGameRequest struct {
	GameID string `json:"gameId" validate:"required"`
}

func (s *Server) DeleteGameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req deleteGameRequest
		if err := s.decodeAndValidate(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := s.Gameday.DeleteGame(req.GameID); err != nil {
			http.Error(w, "Failed to delete game", http.StatusInternalServerError)
			log.Error("Failed to delete game", "error", err, "gameID", req.GameID)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Game deleted")
	}
}

type updateScoreRequest struct {
	GameID    string `json:"gameId" validate:"required"`
	HomeScore int    `json:"homeScore" validate:"min=0"`
	AwayScore int    `json:"awayScore" validate:"min=0"`
}

func (s *Server) UpdateScoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateScoreRequest
		if err := s.decodeAndValidate(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := s.Gameday.UpdateScore(req.GameID, req.HomeScore, req.AwayScore, isConfirmedFromContext(r)); err != nil {
			respondServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Score updated")
	}
}

// gameIDFromQuery pulls the required gameID query parameter.
func gameIDFromQuery(w http.ResponseWriter, r *http.Request) (string, bool) {
	gameID := r.URL.Query().Get("gameID")
	if gameID == "" {
		http.Error(w, "gameID query parameter is required", http.StatusBadRequest)
		return "", false
	}
	return gameID, true
}

func (s *Server) GameStateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, ok := gameIDFromQuery(w, r)
		if !ok {
			return
		}
		state, err := s.Gameday.Projection(gameID)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, state)
	}
}

func (s *Server) InitLineupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, ok := gameIDFromQuery(w, r)
		if !ok {
			return
		}
		g, err := s.Gameday.InitLineup(gameID)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, g)
	}
}

func (s *Server) StartGameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, ok := gameIDFromQuery(w, r)
		if !ok {
			return
		}
		g, err := s.Gameday.StartGame(gameID, isDryRunFromContext(r))
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, g)
	}
}

func (s *Server) StopGameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, ok := gameIDFromQuery(w, r)
		if !ok {
			return
		}
		g, err := s.Gameday.StopGame(gameID, isDryRunFromContext(r))
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, g)
	}
}

func (s *Server) FinishGameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, ok := gameIDFromQuery(w, r)
		if !ok {
			return
		}
		g, err := s.Gameday.FinishGame(gameID, isDryRunFromContext(r))
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, g)
	}
}

func (s *Server) ResetLineupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, ok := gameIDFromQuery(w, r)
		if !ok {
			return
		}
		entries, err := s.Gameday.ResetLineup(gameID, isConfirmedFromContext(r), isDryRunFromContext(r))
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, entries)
	}
}

type moveRequest struct {
	GameID   string         `json:"gameId" validate:"required"`
	PlayerID string         `json:"playerId" validate:"required"`
	Target   string         `json:"target" validate:"required,oneof=field bench inactive"`
	Position *game.Position `json:"position" validate:"required_if=Target field"`
}

func (s *Server) MoveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req moveRequest
		if err := s.decodeAndValidate(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		changed, err := s.Gameday.Move(req.GameID, req.PlayerID, game.Location(req.Target), req.Position, isConfirmedFromContext(r), isDryRunFromContext(r))
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, map[string]bool{"changed": changed})
	}
}

type dropRequest struct {
	GameID     string        `json:"gameId" validate:"required"`
	PlayerID   string        `json:"playerId" validate:"required"`
	Drop       game.Position `json:"drop"`
	HalfWidth  float64       `json:"halfWidth" validate:"gt=0"`
	HalfHeight float64       `json:"halfHeight" validate:"gt=0"`
}

func (s *Server) DropHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dropRequest
		if err := s.decodeAndValidate(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		changed, err := s.Gameday.Drop(req.GameID, req.PlayerID, req.Drop, req.HalfWidth, req.HalfHeight, isConfirmedFromContext(r), isDryRunFromContext(r))
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, map[string]bool{"changed": changed})
	}
}

func (s *Server) PlanStateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, ok := gameIDFromQuery(w, r)
		if !ok {
			return
		}
		swaps, active := s.Gameday.PlanState(gameID)
		if swaps == nil {
			swaps = []game.PlannedSwap{}
		}
		respondJSON(w, map[string]any{"active": active, "swaps": swaps})
	}
}

func (s *Server) EnterPlanningHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, ok := gameIDFromQuery(w, r)
		if !ok {
			return
		}
		if err := s.Gameday.EnterPlanning(gameID); err != nil {
			respondServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Planning mode entered")
	}
}

type stagePlanRequest struct {
	GameID        string        `json:"gameId" validate:"required"`
	BenchPlayerID string        `json:"benchPlayerId" validate:"required"`
	FieldPlayerID string        `json:"fieldPlayerId" validate:"required"`
	Target        game.Position `json:"target"`
}

func (s *Server) StagePlanHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req stagePlanRequest
		if err := s.decodeAndValidate(r, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		staged, err := s.Gameday.StagePlan(req.GameID, req.BenchPlayerID, req.FieldPlayerID, req.Target)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		if !staged {
			http.Error(w, "Swap could not be staged", http.StatusUnprocessableEntity)
			return
		}
		respondJSON(w, map[string]bool{"staged": true})
	}
}

func (s *Server) CommitPlanHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, ok := gameIDFromQuery(w, r)
		if !ok {
			return
		}
		applied, err := s.Gameday.CommitPlan(gameID, isDryRunFromContext(r))
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, map[string]int{"applied": applied})
	}
}

func (s *Server) CancelPlanHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID, ok := gameIDFromQuery(w, r)
		if !ok {
			return
		}
		s.Gameday.CancelPlan(gameID)
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Plan cancelled")
	}
}

func (s *Server) ExportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blob, err := backup.Export(s.Store)
		if err != nil {
			http.Error(w, "Failed to export snapshot", http.StatusInternalServerError)
			log.Error("Failed to export snapshot", "error", err)
			return
		}
		w.Header().Set("Content-Type", "application/msgpack")
		w.Header().Set("Content-Length", strconv.Itoa(len(blob)))
		if _, err := w.Write(blob); err != nil {
			log.Error("Failed to write snapshot response", "error", err)
		}
	}
}

func (s *Server) ImportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blob, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			log.Error("Failed to read snapshot body", "error", err)
			return
		}
		if err := backup.Import(s.Store, blob); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			log.Error("Failed to import snapshot", "error", err)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Snapshot imported")
	}
}

func (s *Server) LiveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID := r.URL.Query().Get("gameID")
		if gameID == "" {
			http.Error(w, "gameID query parameter is required", http.StatusBadRequest)
			return
		}
		live.ServeWS(s.Hub, w, r, gameID)
	}
}

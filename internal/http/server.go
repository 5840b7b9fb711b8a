package http

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/touchlineapp/touchline/internal/config"
	"github.com/touchlineapp/touchline/internal/gameday"
	"github.com/touchlineapp/touchline/internal/live"
	"github.com/touchlineapp/touchline/internal/metrics"
	"github.com/touchlineapp/touchline/internal/team"
)

func NewServer(store team.TeamStore, gamedaySvc *gameday.Service, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, hub *live.Hub) *Server {
	server := &Server{
		Store:          store,
		Gameday:        gamedaySvc,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Hub:            hub,
		Router:         http.NewServeMux(),
		validate:       validator.New(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))

	s.Router.Handle("/players", Chain(s.ListPlayersHandler(), paramsMiddleware))
	s.Router.Handle("/players/add", Chain(s.AddPlayerHandler(), paramsMiddleware))
	s.Router.Handle("/players/update", Chain(s.UpdatePlayerHandler(), paramsMiddleware))
	s.Router.Handle("/players/remove", Chain(s.RemovePlayerHandler(), paramsMiddleware))

	s.Router.Handle("/games", Chain(s.ListGamesHandler(), paramsMiddleware))
	s.Router.Handle("/games/create", Chain(s.CreateGameHandler(), paramsMiddleware))
	s.Router.Handle("/games/delete", Chain(s.DeleteGameHandler(), paramsMiddleware))
	s.Router.Handle("/games/score", Chain(s.UpdateScoreHandler(), paramsMiddleware))

	s.Router.Handle("/game/state", Chain(s.GameStateHandler(), paramsMiddleware))
	s.Router.Handle("/game/init-lineup", Chain(s.InitLineupHandler(), paramsMiddleware))
	s.Router.Handle("/game/start", Chain(s.StartGameHandler(), paramsMiddleware))
	s.Router.Handle("/game/stop", Chain(s.StopGameHandler(), paramsMiddleware))
	s.Router.Handle("/game/finish", Chain(s.FinishGameHandler(), paramsMiddleware))
	s.Router.Handle("/game/reset", Chain(s.ResetLineupHandler(), paramsMiddleware))

	s.Router.Handle("/lineup/move", Chain(s.MoveHandler(), paramsMiddleware))
	s.Router.Handle("/lineup/drop", Chain(s.DropHandler(), paramsMiddleware))

	s.Router.Handle("/plan", Chain(s.PlanStateHandler(), paramsMiddleware))
	s.Router.Handle("/plan/enter", Chain(s.EnterPlanningHandler(), paramsMiddleware))
	s.Router.Handle("/plan/stage", Chain(s.StagePlanHandler(), paramsMiddleware))
	s.Router.Handle("/plan/commit", Chain(s.CommitPlanHandler(), paramsMiddleware))
	s.Router.Handle("/plan/cancel", Chain(s.CancelPlanHandler(), paramsMiddleware))

	s.Router.Handle("/export", Chain(s.ExportHandler(), paramsMiddleware))
	s.Router.Handle("/import", Chain(s.ImportHandler(), paramsMiddleware))

	s.Router.Handle("/ws", s.LiveHandler())
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

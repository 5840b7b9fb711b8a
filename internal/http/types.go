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

type Server struct {
	Store          team.TeamStore
	Gameday        *gameday.Service
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Hub            *live.Hub
	Router         *http.ServeMux
	validate       *validator.Validate
}

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		GamesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "touchline_games_started_total",
			Help: "The total number of game clock cold starts and restarts.",
		}),
		GamesFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "touchline_games_finished_total",
			Help: "The total number of games marked as finished.",
		}),
		MovesApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "touchline_lineup_moves_total",
			Help: "The total number of lineup placement changes applied.",
		}),
		SwapsCommitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "touchline_planned_swaps_committed_total",
			Help: "The total number of planned substitutions committed.",
		}),
		MoveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "touchline_move_duration_seconds",
			Help:    "The duration of individual lineup operations, persistence included.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		NotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "touchline_notifications_sent_total",
			Help: "The total number of notifications successfully sent.",
		}),
		NotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "touchline_notifications_failed_total",
			Help: "The total number of notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "touchline_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.GamesStarted,
		s.GamesFinished,
		s.MovesApplied,
		s.SwapsCommitted,
		s.MoveDuration,
		s.NotifSent,
		s.NotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncGamesStarted() {
	s.GamesStarted.Inc()
}

func (s *Service) IncGamesFinished() {
	s.GamesFinished.Inc()
}

func (s *Service) IncMovesApplied() {
	s.MovesApplied.Inc()
}

func (s *Service) IncSwapsCommitted(count int) {
	s.SwapsCommitted.Add(float64(count))
}

func (s *Service) ObserveMoveDuration(duration float64) {
	s.MoveDuration.Observe(duration)
}

func (s *Service) IncNotifSent() {
	s.NotifSent.Inc()
}

func (s *Service) IncNotifFailed() {
	s.NotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/touchlineapp/touchline/internal/config"
	"github.com/touchlineapp/touchline/internal/database"
	"github.com/touchlineapp/touchline/internal/gameday"
	server "github.com/touchlineapp/touchline/internal/http"
	"github.com/touchlineapp/touchline/internal/live"
	"github.com/touchlineapp/touchline/internal/metrics"
	"github.com/touchlineapp/touchline/internal/notifier"
	"github.com/touchlineapp/touchline/internal/notifier/slack"
	"github.com/touchlineapp/touchline/internal/team"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	teamStore := team.New(db)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	var notif notifier.Notifier
	if cfg.Slack.Token != "" && cfg.Slack.ChannelID != "" {
		notif = slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, cfg.TeamName, metricsSvc)
	} else {
		log.Info("Slack is not configured, notifications disabled")
		notif = notifier.NewNoop()
	}

	gamedaySvc := gameday.New(teamStore, notif, metricsSvc)

	hub := live.NewHub()
	go hub.Run()

	ctx, cancelLive := context.WithCancel(context.Background())
	defer cancelLive()
	ticker := live.NewTicker(hub, gamedaySvc, time.Second)
	go ticker.Run(ctx)

	s := server.NewServer(
		teamStore,
		gamedaySvc,
		metricsSvc,
		metricsHandler,
		cfg,
		hub,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		cancelLive()

		// Create a context with a timeout for the shutdown.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}

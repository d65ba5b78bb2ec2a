package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/PauloCruz06/batepapo-uol-api/internal/api"
	"github.com/PauloCruz06/batepapo-uol-api/internal/config"
	"github.com/PauloCruz06/batepapo-uol-api/internal/store"
	"github.com/PauloCruz06/batepapo-uol-api/internal/sweeper"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	var logger zerolog.Logger
	if cfg.IsDevelopment() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Logger()
	} else {
		logger = zerolog.New(os.Stdout).
			With().
			Timestamp().
			Logger()
	}

	ctx := context.Background()

	// Initialize the store before anything that serves traffic: handlers
	// and the sweeper only ever see a ready handle.
	var dataStore store.DataStore
	if cfg.MongoURI != "" {
		mongoStore, err := store.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			logger.Fatal().Err(err).Msg("mongodb connection failed")
		}
		defer mongoStore.Close(ctx)
		dataStore = mongoStore
		logger.Info().Str("db", cfg.MongoDB).Msg("connected to MongoDB")
	} else {
		dataStore = store.NewMemoryStore()
		logger.Warn().Msg("MONGO_URI not set, using in-memory store")
	}

	// Start the eviction sweeper
	sweepCtx, stopSweeper := context.WithCancel(ctx)
	defer stopSweeper()
	sw := sweeper.New(dataStore, logger, cfg.SweepInterval, cfg.StaleAfter, cfg.SweepWorkers)
	go sw.Run(sweepCtx)

	// Create router
	router := api.NewRouter(logger, dataStore)

	// Create server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Msg("starting batepapo-uol-api server")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server...")
	stopSweeper()

	// Graceful shutdown with 30 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server stopped")
}

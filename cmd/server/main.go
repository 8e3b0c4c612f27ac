// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/codr1/touchline/internal/api/audit"
	"github.com/codr1/touchline/internal/api/auth"
	"github.com/codr1/touchline/internal/api/fantasy"
	"github.com/codr1/touchline/internal/api/matches"
	"github.com/codr1/touchline/internal/api/players"
	"github.com/codr1/touchline/internal/api/seasons"
	"github.com/codr1/touchline/internal/api/stats"
	"github.com/codr1/touchline/internal/api/teams"
	"github.com/codr1/touchline/internal/archive"
	"github.com/codr1/touchline/internal/config"
	"github.com/codr1/touchline/internal/db"
	"github.com/codr1/touchline/internal/email"
	"github.com/codr1/touchline/internal/ratelimit"
	"github.com/codr1/touchline/internal/scheduler"
)

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func setupLogger(environment string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func main() {
	cfg, err := config.Load(getEnv("CONFIG_PATH", "config/config.yaml"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	cfg.App.Port = getEnvAsInt("PORT", cfg.App.Port)
	shutdownTimeout := time.Duration(getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 30)) * time.Second

	setupLogger(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.NewFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer database.Close()

	if err := auth.SeedAdmins(ctx, database.Queries, cfg.Auth.AdminEmails); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed admins")
	}

	sender, err := email.NewSenderFromConfig(cfg.Email)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure email")
	}
	if sender == nil {
		log.Warn().Msg("Email is not configured; verification codes are only logged in development")
	}

	mirror, err := archive.New(ctx, cfg.Archive)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect season archive mirror")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mirror.Close(closeCtx); err != nil {
			log.Warn().Err(err).Msg("Failed to close season archive mirror")
		}
	}()

	limiter := ratelimit.New(ratelimit.DefaultConfig())
	defer limiter.Close()

	auth.InitHandlers(database, cfg, sender, limiter)
	audit.InitHandlers(database)
	matches.InitHandlers(database)
	teams.InitHandlers(database, cfg)
	players.InitHandlers(database)
	seasons.InitHandlers(database, cfg, mirror, sender)
	stats.InitHandlers(database)
	fantasy.InitHandlers(database, cfg)

	jobs, err := scheduler.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create scheduler")
	}
	if err := scheduler.RegisterJobs(jobs, database, cfg.Jobs); err != nil {
		log.Fatal().Err(err).Msg("Failed to register scheduler jobs")
	}
	jobs.Start()

	server := newServer(cfg)

	g, ctx := errgroup.WithContext(ctx)

	// Run server
	g.Go(func() error {
		log.Info().Int("port", cfg.App.Port).Str("environment", cfg.App.Environment).Msg("Starting server")
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Wait for interrupt signal
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		if err := jobs.Stop(); err != nil {
			return fmt.Errorf("scheduler shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}

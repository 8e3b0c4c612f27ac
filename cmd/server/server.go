// cmd/server/server.go
package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/touchline/internal/api"
	"github.com/codr1/touchline/internal/api/audit"
	"github.com/codr1/touchline/internal/api/auth"
	"github.com/codr1/touchline/internal/api/fantasy"
	"github.com/codr1/touchline/internal/api/matches"
	"github.com/codr1/touchline/internal/api/players"
	"github.com/codr1/touchline/internal/api/seasons"
	"github.com/codr1/touchline/internal/api/stats"
	"github.com/codr1/touchline/internal/api/teams"
	"github.com/codr1/touchline/internal/config"
)

func newServer(cfg *config.Config) *http.Server {
	router := http.NewServeMux()

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithAuth,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
		api.WithCORS(cfg.App.AllowedOrigins),
	)

	// Register routes
	registerRoutes(router)

	return &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write health response")
		}
	})

	// Auth routes
	mux.HandleFunc("POST /api/v1/auth/check-email", auth.HandleCheckEmail)
	mux.HandleFunc("POST /api/v1/auth/setup-password", auth.HandleSetupPassword)
	mux.HandleFunc("POST /api/v1/auth/login", auth.HandleLogin)
	mux.HandleFunc("GET /api/v1/auth/verify", auth.HandleVerify)

	// Match routes
	mux.HandleFunc("GET /api/v1/matches", matches.HandleListMatches)
	mux.HandleFunc("GET /api/v1/matches/fixture-status", matches.HandleFixtureStatus)
	mux.HandleFunc("GET /api/v1/matches/{id}", matches.HandleGetMatch)
	mux.HandleFunc("POST /api/v1/matches/generate-league", matches.HandleGenerateLeague)
	mux.HandleFunc("POST /api/v1/matches/generate-cup", matches.HandleGenerateCup)
	mux.HandleFunc("POST /api/v1/matches/generate-super-cup", matches.HandleGenerateSuperCup)
	mux.HandleFunc("POST /api/v1/matches/generate-acwpl", matches.HandleGenerateACWPL)
	mux.HandleFunc("POST /api/v1/matches/save-fixtures", matches.HandleSaveFixtures)
	mux.HandleFunc("POST /api/v1/matches/reset-fixtures", matches.HandleResetFixtures)
	mux.HandleFunc("PUT /api/v1/matches/{id}", matches.HandleUpdateMatch)
	mux.HandleFunc("POST /api/v1/matches/{id}/events", matches.HandleReplaceEvents)
	mux.HandleFunc("PUT /api/v1/matches/{id}/lineup", matches.HandleUpdateLineup)
	mux.HandleFunc("POST /api/v1/matches/{id}/reset-score", matches.HandleResetScore)

	// Team and table routes
	mux.HandleFunc("GET /api/v1/teams", teams.HandleListTeams)
	mux.HandleFunc("POST /api/v1/teams/initialize", teams.HandleInitializeTeams)
	mux.HandleFunc("PUT /api/v1/teams/{id}", teams.HandleUpdateTeam)
	mux.HandleFunc("GET /api/v1/standings", teams.HandleStandings)
	mux.HandleFunc("GET /api/v1/table", teams.HandleTable)

	// Player routes
	mux.HandleFunc("GET /api/v1/players", players.HandleListPlayers)
	mux.HandleFunc("POST /api/v1/players", players.HandleCreatePlayer)
	mux.HandleFunc("GET /api/v1/players/{id}", players.HandleGetPlayer)
	mux.HandleFunc("PUT /api/v1/players/{id}", players.HandleUpdatePlayer)
	mux.HandleFunc("DELETE /api/v1/players/{id}", players.HandleDeletePlayer)
	mux.HandleFunc("POST /api/v1/players/{id}/transfer", players.HandleTransferPlayer)
	mux.HandleFunc("PUT /api/v1/players/{id}/availability", players.HandleUpdateAvailability)

	// Season archive routes
	mux.HandleFunc("GET /api/v1/seasons", seasons.HandleListSeasons)
	mux.HandleFunc("DELETE /api/v1/seasons", seasons.HandleDeleteAllSeasons)
	mux.HandleFunc("POST /api/v1/seasons/reset", seasons.HandleResetSeason)
	mux.HandleFunc("GET /api/v1/seasons/{n}", seasons.HandleGetSeason)
	mux.HandleFunc("DELETE /api/v1/seasons/{n}", seasons.HandleDeleteSeason)

	// Stats and fantasy routes
	mux.HandleFunc("GET /api/v1/stats/players", stats.HandlePlayerStats)
	mux.HandleFunc("GET /api/v1/fantasy/points", fantasy.HandleFantasyPoints)
	mux.HandleFunc("POST /api/v1/fantasy/users", fantasy.HandleCreateUser)
	mux.HandleFunc("GET /api/v1/fantasy/users/{id}", fantasy.HandleGetUser)

	// Audit routes
	mux.Handle("GET /api/v1/audit-logs", api.WithAdminAuth(http.HandlerFunc(audit.HandleListAuditLogs)))
}

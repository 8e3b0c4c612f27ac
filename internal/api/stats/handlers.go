// internal/api/stats/handlers.go
package stats

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/touchline/internal/api/apiutil"
	appdb "github.com/codr1/touchline/internal/db"
	dbgen "github.com/codr1/touchline/internal/db/generated"
	"github.com/codr1/touchline/internal/leagues"
)

const statsQueryTimeout = 5 * time.Second

var queries *dbgen.Queries

func InitHandlers(db *appdb.DB) {
	queries = nil
	if db != nil {
		queries = db.Queries
	}
}

func loadQueries() *dbgen.Queries {
	return queries
}

// GET /api/v1/stats/players
// Optional ?competition= limits the tally to one competition. Only published
// matches count.
func HandlePlayerStats(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	competition := strings.TrimSpace(r.URL.Query().Get("competition"))
	if competition != "" && !leagues.ValidCompetition(competition) {
		apiutil.Error(w, "Unknown competition", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), statsQueryTimeout)
	defer cancel()

	players, err := q.ListPlayers(ctx)
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to load players")
		return
	}
	var matches []dbgen.Match
	if competition != "" {
		matches, err = q.ListMatchesByCompetition(ctx, competition)
	} else {
		matches, err = q.ListAllMatches(ctx)
	}
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to load matches")
		return
	}
	events, err := q.ListAllMatchEvents(ctx)
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to load match events")
		return
	}

	published := matches[:0]
	for _, m := range matches {
		if m.IsPublished {
			published = append(published, m)
		}
	}

	stats := leagues.AggregatePlayerStats(players, published, events)
	if err := apiutil.WriteJSON(w, http.StatusOK, stats); err != nil {
		logger.Error().Err(err).Msg("Failed to write player stats response")
	}
}

// internal/api/matches/handlers.go
package matches

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/touchline/internal/api/apiutil"
	"github.com/codr1/touchline/internal/api/audit"
	"github.com/codr1/touchline/internal/api/authz"
	appdb "github.com/codr1/touchline/internal/db"
	dbgen "github.com/codr1/touchline/internal/db/generated"
	"github.com/codr1/touchline/internal/leagues"
)

const (
	matchQueryTimeout = 5 * time.Second
	matchIDPathKey    = "id"
)

var (
	queries  *dbgen.Queries
	database *appdb.DB
	// shuffler orders matches inside a league matchweek. Nil uses math/rand.
	shuffler leagues.Shuffler
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(db *appdb.DB) {
	if db == nil {
		queries, database = nil, nil
		return
	}
	database = db
	queries = db.Queries
}

func loadQueries() *dbgen.Queries {
	return queries
}

type competitionRequest struct {
	Competition string `json:"competition"`
}

type generateCupRequest struct {
	TeamIDs []int64 `json:"teamIds"`
}

type fixtureStatus struct {
	Competition string `json:"competition"`
	Generated   int    `json:"generated"`
	Published   int    `json:"published"`
	Played      int    `json:"played"`
	Expected    int    `json:"expected"`
	TeamCount   int    `json:"teamCount"`
}

type fixtureBuilder func(ctx context.Context, q *dbgen.Queries) ([]leagues.Fixture, error)

// POST /api/v1/matches/generate-league
func HandleGenerateLeague(w http.ResponseWriter, r *http.Request) {
	generateFixtures(w, r, leagues.CompetitionLeague, func(ctx context.Context, q *dbgen.Queries) ([]leagues.Fixture, error) {
		ids, err := competitionTeamIDs(ctx, q, leagues.CompetitionLeague)
		if err != nil {
			return nil, err
		}
		fixtures, err := leagues.GenerateLeagueSchedule(ids, shuffler)
		if err != nil {
			return nil, apiutil.HandlerError{Status: http.StatusBadRequest, Message: fmt.Sprintf("Cannot generate league fixtures: %v", err), Err: err}
		}
		return fixtures, nil
	})
}

// POST /api/v1/matches/generate-acwpl
func HandleGenerateACWPL(w http.ResponseWriter, r *http.Request) {
	generateFixtures(w, r, leagues.CompetitionACWPL, func(ctx context.Context, q *dbgen.Queries) ([]leagues.Fixture, error) {
		ids, err := competitionTeamIDs(ctx, q, leagues.CompetitionACWPL)
		if err != nil {
			return nil, err
		}
		fixtures, err := leagues.GenerateACWPLSeries(ids)
		if err != nil {
			return nil, apiutil.HandlerError{Status: http.StatusBadRequest, Message: fmt.Sprintf("Cannot generate ACWPL fixtures: %v", err), Err: err}
		}
		return fixtures, nil
	})
}

// POST /api/v1/matches/generate-cup
func HandleGenerateCup(w http.ResponseWriter, r *http.Request) {
	if !apiutil.RequireAdmin(w, r) {
		return
	}
	var req generateCupRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	generateFixtures(w, r, leagues.CompetitionCup, func(ctx context.Context, q *dbgen.Queries) ([]leagues.Fixture, error) {
		fixtures, err := leagues.GenerateCupSemiFinals(req.TeamIDs)
		if err != nil {
			return nil, err
		}
		if err := ensureLeagueTeams(ctx, q, req.TeamIDs...); err != nil {
			return nil, err
		}
		return fixtures, nil
	})
}

// POST /api/v1/matches/generate-super-cup
func HandleGenerateSuperCup(w http.ResponseWriter, r *http.Request) {
	if !apiutil.RequireAdmin(w, r) {
		return
	}
	var req leagues.SuperCupRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	generateFixtures(w, r, leagues.CompetitionSuperCup, func(ctx context.Context, q *dbgen.Queries) ([]leagues.Fixture, error) {
		fixture, err := leagues.ResolveSuperCup(req)
		if err != nil {
			return nil, err
		}
		if err := ensureLeagueTeams(ctx, q, fixture.HomeTeamID, fixture.AwayTeamID); err != nil {
			return nil, err
		}
		return []leagues.Fixture{fixture}, nil
	})
}

// generateFixtures stores the fixtures produced by build unless the
// competition already has matches.
func generateFixtures(w http.ResponseWriter, r *http.Request, competition string, build fixtureBuilder) {
	logger := log.Ctx(r.Context())

	if !apiutil.RequireAdmin(w, r) {
		return
	}
	if loadQueries() == nil || database == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	var created []dbgen.Match
	err := database.RunInTx(ctx, func(txdb *appdb.DB) error {
		existing, err := txdb.Queries.ListMatchesByCompetition(ctx, competition)
		if err != nil {
			return fmt.Errorf("list %s matches: %w", competition, err)
		}
		if len(existing) > 0 {
			return apiutil.HandlerError{
				Status:  http.StatusConflict,
				Message: fmt.Sprintf("%s fixtures already exist; reset them before generating again", competition),
			}
		}

		fixtures, err := build(ctx, txdb.Queries)
		if err != nil {
			return err
		}
		created, err = leagues.CreateFixtures(ctx, txdb.Queries, fixtures)
		if err != nil {
			return err
		}
		return audit.Record(ctx, txdb.Queries, "matches.generate", "competition", 0, map[string]any{
			"competition": competition,
			"fixtures":    len(created),
		})
	})
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to generate fixtures")
		return
	}

	logger.Info().Str("competition", competition).Int("fixtures", len(created)).Msg("Generated fixtures")

	views, err := LoadMatchViews(ctx, loadQueries(), created)
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to load fixtures")
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusCreated, views); err != nil {
		logger.Error().Err(err).Msg("Failed to write generated fixtures response")
	}
}

func competitionTeamIDs(ctx context.Context, q *dbgen.Queries, competition string) ([]int64, error) {
	teams, err := q.ListTeamsByCompetition(ctx, competition)
	if err != nil {
		return nil, fmt.Errorf("list %s teams: %w", competition, err)
	}
	ids := make([]int64, 0, len(teams))
	for _, team := range teams {
		ids = append(ids, team.ID)
	}
	return ids, nil
}

// ensureLeagueTeams checks that every id names a league team. The cup and
// super-cup draw from the league.
func ensureLeagueTeams(ctx context.Context, q *dbgen.Queries, ids ...int64) error {
	for _, id := range ids {
		team, err := q.GetTeam(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apiutil.HandlerError{Status: http.StatusBadRequest, Message: fmt.Sprintf("Team %d not found", id), Err: err}
			}
			return fmt.Errorf("get team %d: %w", id, err)
		}
		if team.Competition != leagues.CompetitionLeague {
			return apiutil.HandlerError{Status: http.StatusBadRequest, Message: fmt.Sprintf("Team %d is not a league team", id)}
		}
	}
	return nil
}

// GET /api/v1/matches
func HandleListMatches(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	params := dbgen.ListMatchesParams{}
	if competition := strings.TrimSpace(r.URL.Query().Get("competition")); competition != "" {
		if !leagues.ValidCompetition(competition) {
			apiutil.Error(w, "Unknown competition", http.StatusBadRequest)
			return
		}
		params.Competition = sql.NullString{String: competition, Valid: true}
	}
	matchweek, err := apiutil.OptionalQueryInt64(r, "matchweek")
	if err != nil {
		apiutil.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	params.Matchweek = apiutil.ToNullInt64(matchweek)

	includeUnpublished, err := apiutil.ParseOptionalBool(r.URL.Query().Get("includeUnpublished"))
	if err != nil {
		apiutil.Error(w, "includeUnpublished must be a boolean", http.StatusBadRequest)
		return
	}
	// Unpublished fixtures stay hidden from everyone but admins.
	params.IncludeUnpublished = includeUnpublished && authz.IsAdmin(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	rows, err := q.ListMatches(ctx, params)
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to list matches")
		return
	}
	views, err := LoadMatchViews(ctx, q, rows)
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to list matches")
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, views); err != nil {
		logger.Error().Err(err).Msg("Failed to write matches response")
	}
}

// GET /api/v1/matches/{id}
func HandleGetMatch(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	matchID, err := apiutil.PathID(r, matchIDPathKey)
	if err != nil {
		apiutil.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	match, err := loadMatch(ctx, q, matchID)
	if err == nil && !match.IsPublished && !authz.IsAdmin(r.Context()) {
		err = apiutil.HandlerError{Status: http.StatusNotFound, Message: "Match not found"}
	}
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to load match")
		return
	}
	view, err := loadMatchView(ctx, q, match)
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to load match")
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, view); err != nil {
		logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to write match response")
	}
}

// GET /api/v1/matches/fixture-status
func HandleFixtureStatus(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	rows, err := q.ListAllMatches(ctx)
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to load fixture status")
		return
	}
	teams, err := q.ListTeams(ctx)
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to load fixture status")
		return
	}

	teamCounts := make(map[string]int)
	for _, team := range teams {
		teamCounts[team.Competition]++
	}
	// The cup and super-cup draw from the league's teams.
	teamCounts[leagues.CompetitionCup] = min(teamCounts[leagues.CompetitionLeague], leagues.CupTeamCount)
	teamCounts[leagues.CompetitionSuperCup] = min(teamCounts[leagues.CompetitionLeague], 2)

	status := make([]fixtureStatus, 0, len(leagues.Competitions))
	byCompetition := make(map[string]*fixtureStatus, len(leagues.Competitions))
	for _, competition := range leagues.Competitions {
		status = append(status, fixtureStatus{
			Competition: competition,
			TeamCount:   teamCounts[competition],
			Expected:    leagues.ExpectedFixtures(competition, teamCounts[competition]),
		})
	}
	for i := range status {
		byCompetition[status[i].Competition] = &status[i]
	}
	for _, m := range rows {
		entry, ok := byCompetition[m.Competition]
		if !ok {
			continue
		}
		entry.Generated++
		if m.IsPublished {
			entry.Published++
		}
		if leagues.IsPlayed(m) {
			entry.Played++
		}
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, status); err != nil {
		logger.Error().Err(err).Msg("Failed to write fixture status response")
	}
}

// POST /api/v1/matches/save-fixtures
func HandleSaveFixtures(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	competition, ok := decodeCompetition(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	var published int64
	err := database.RunInTx(ctx, func(txdb *appdb.DB) error {
		var err error
		published, err = txdb.Queries.PublishMatchesByCompetition(ctx, competition)
		if err != nil {
			return fmt.Errorf("publish %s matches: %w", competition, err)
		}
		return audit.Record(ctx, txdb.Queries, "matches.publish", "competition", 0, map[string]any{
			"competition": competition,
			"published":   published,
		})
	})
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to publish fixtures")
		return
	}

	logger.Info().Str("competition", competition).Int64("published", published).Msg("Published fixtures")
	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{
		"competition": competition,
		"published":   published,
	}); err != nil {
		logger.Error().Err(err).Msg("Failed to write publish response")
	}
}

// POST /api/v1/matches/reset-fixtures
func HandleResetFixtures(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	competition, ok := decodeCompetition(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), matchQueryTimeout)
	defer cancel()

	var deleted int64
	err := database.RunInTx(ctx, func(txdb *appdb.DB) error {
		var err error
		deleted, err = txdb.Queries.DeleteMatchesByCompetition(ctx, competition)
		if err != nil {
			return fmt.Errorf("delete %s matches: %w", competition, err)
		}
		if err := leagues.Reconcile(ctx, txdb.Queries, competition); err != nil {
			return err
		}
		return audit.Record(ctx, txdb.Queries, "matches.reset", "competition", 0, map[string]any{
			"competition": competition,
			"deleted":     deleted,
		})
	})
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to reset fixtures")
		return
	}

	logger.Info().Str("competition", competition).Int64("deleted", deleted).Msg("Reset fixtures")
	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{
		"competition": competition,
		"deleted":     deleted,
	}); err != nil {
		logger.Error().Err(err).Msg("Failed to write reset response")
	}
}

func decodeCompetition(w http.ResponseWriter, r *http.Request) (string, bool) {
	if !apiutil.RequireAdmin(w, r) {
		return "", false
	}
	if loadQueries() == nil || database == nil {
		log.Ctx(r.Context()).Error().Msg("Database queries not initialized")
		apiutil.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return "", false
	}

	var req competitionRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.Error(w, "Invalid JSON", http.StatusBadRequest)
		return "", false
	}
	competition := strings.TrimSpace(req.Competition)
	if !leagues.ValidCompetition(competition) {
		apiutil.Error(w, "competition must be one of "+strings.Join(leagues.Competitions, ", "), http.StatusBadRequest)
		return "", false
	}
	return competition, true
}

func loadMatch(ctx context.Context, q *dbgen.Queries, id int64) (dbgen.Match, error) {
	match, err := q.GetMatch(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dbgen.Match{}, apiutil.HandlerError{Status: http.StatusNotFound, Message: "Match not found", Err: err}
		}
		return dbgen.Match{}, fmt.Errorf("get match %d: %w", id, err)
	}
	return match, nil
}

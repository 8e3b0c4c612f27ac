// internal/api/teams/handlers.go
package teams

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/touchline/internal/api/apiutil"
	"github.com/codr1/touchline/internal/api/audit"
	"github.com/codr1/touchline/internal/api/htmx"
	"github.com/codr1/touchline/internal/config"
	appdb "github.com/codr1/touchline/internal/db"
	dbgen "github.com/codr1/touchline/internal/db/generated"
	"github.com/codr1/touchline/internal/leagues"
)

const (
	teamQueryTimeout = 5 * time.Second
	teamIDPathKey    = "id"
)

var (
	queries      *dbgen.Queries
	database     *appdb.DB
	defaultTeams []config.TeamSeed
)

type teamRequest struct {
	Name string  `json:"name"`
	Logo *string `json:"logo"`
}

type initializeRequest struct {
	Teams []config.TeamSeed `json:"teams"`
}

type teamResponse struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Logo           string   `json:"logo"`
	Competition    string   `json:"competition"`
	Played         int64    `json:"played"`
	Won            int64    `json:"won"`
	Drawn          int64    `json:"drawn"`
	Lost           int64    `json:"lost"`
	GoalsFor       int64    `json:"goalsFor"`
	GoalsAgainst   int64    `json:"goalsAgainst"`
	GoalDifference int64    `json:"goalDifference"`
	Points         int64    `json:"points"`
	Form           []string `json:"form"`
}

func newTeamResponse(team dbgen.Team) teamResponse {
	form := []string{}
	if team.Form != "" {
		form = strings.Split(team.Form, "")
	}
	return teamResponse{
		ID:             team.ID,
		Name:           team.Name,
		Logo:           team.Logo,
		Competition:    team.Competition,
		Played:         team.Played,
		Won:            team.Won,
		Drawn:          team.Drawn,
		Lost:           team.Lost,
		GoalsFor:       team.GoalsFor,
		GoalsAgainst:   team.GoalsAgainst,
		GoalDifference: team.GoalDifference,
		Points:         team.Points,
		Form:           form,
	}
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(db *appdb.DB, cfg *config.Config) {
	if cfg != nil {
		defaultTeams = cfg.League.DefaultTeams
	}
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

// GET /api/v1/teams
func HandleListTeams(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	var (
		rows []dbgen.Team
		err  error
	)
	if competition := strings.TrimSpace(r.URL.Query().Get("competition")); competition != "" {
		if !leagues.HasStandings(competition) {
			apiutil.Error(w, "competition must be league or acwpl", http.StatusBadRequest)
			return
		}
		rows, err = q.ListTeamsByCompetition(ctx, competition)
	} else {
		rows, err = q.ListTeams(ctx)
	}
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to list teams")
		return
	}

	resp := make([]teamResponse, 0, len(rows))
	for _, team := range rows {
		resp = append(resp, newTeamResponse(team))
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, resp); err != nil {
		logger.Error().Err(err).Msg("Failed to write teams response")
	}
}

// POST /api/v1/teams/initialize
//
// Creates the configured default teams, or the teams in the request body.
// Teams that already exist by name are left untouched.
func HandleInitializeTeams(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if !apiutil.RequireAdmin(w, r) {
		return
	}
	if loadQueries() == nil || database == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	seeds := append([]config.TeamSeed(nil), defaultTeams...)
	if r.ContentLength != 0 {
		var req initializeRequest
		if err := apiutil.DecodeJSON(r, &req); err != nil {
			apiutil.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if len(req.Teams) > 0 {
			seeds = req.Teams
		}
	}
	if len(seeds) == 0 {
		apiutil.Error(w, "No teams configured to initialize", http.StatusBadRequest)
		return
	}
	for i := range seeds {
		seeds[i].Name = strings.TrimSpace(seeds[i].Name)
		if seeds[i].Competition == "" {
			seeds[i].Competition = leagues.CompetitionLeague
		}
		if seeds[i].Name == "" {
			apiutil.Error(w, "team name is required", http.StatusBadRequest)
			return
		}
		if !leagues.HasStandings(seeds[i].Competition) {
			apiutil.Error(w, fmt.Sprintf("team %s: competition must be league or acwpl", seeds[i].Name), http.StatusBadRequest)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	var created []dbgen.Team
	err := database.RunInTx(ctx, func(txdb *appdb.DB) error {
		existing, err := txdb.Queries.ListTeams(ctx)
		if err != nil {
			return fmt.Errorf("list teams: %w", err)
		}
		names := make(map[string]struct{}, len(existing))
		for _, team := range existing {
			names[strings.ToLower(team.Name)] = struct{}{}
		}

		for _, seed := range seeds {
			if _, ok := names[strings.ToLower(seed.Name)]; ok {
				continue
			}
			team, err := txdb.Queries.CreateTeam(ctx, dbgen.CreateTeamParams{
				Name:        seed.Name,
				Logo:        strings.TrimSpace(seed.Logo),
				Competition: seed.Competition,
			})
			if err != nil {
				return fmt.Errorf("create team %s: %w", seed.Name, err)
			}
			names[strings.ToLower(seed.Name)] = struct{}{}
			created = append(created, team)
		}
		return audit.Record(ctx, txdb.Queries, "teams.initialize", "team", 0, map[string]int{"created": len(created)})
	})
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to initialize teams")
		return
	}

	logger.Info().Int("created", len(created)).Msg("Initialized teams")

	resp := make([]teamResponse, 0, len(created))
	for _, team := range created {
		resp = append(resp, newTeamResponse(team))
	}
	if err := apiutil.WriteJSON(w, http.StatusCreated, resp); err != nil {
		logger.Error().Err(err).Msg("Failed to write initialize response")
	}
}

// PUT /api/v1/teams/{id}
func HandleUpdateTeam(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if !apiutil.RequireAdmin(w, r) {
		return
	}
	if loadQueries() == nil || database == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	teamID, err := apiutil.PathID(r, teamIDPathKey)
	if err != nil {
		apiutil.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req teamRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		apiutil.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	var updated dbgen.Team
	err = database.RunInTx(ctx, func(txdb *appdb.DB) error {
		current, err := txdb.Queries.GetTeam(ctx, teamID)
		if err != nil {
			return err
		}
		logo := current.Logo
		if req.Logo != nil {
			logo = strings.TrimSpace(*req.Logo)
		}
		updated, err = txdb.Queries.UpdateTeam(ctx, dbgen.UpdateTeamParams{Name: req.Name, Logo: logo, ID: teamID})
		if err != nil {
			return fmt.Errorf("update team: %w", err)
		}
		return audit.Record(ctx, txdb.Queries, "team.update", "team", teamID, map[string]string{"name": req.Name, "logo": logo})
	})
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to update team")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, newTeamResponse(updated)); err != nil {
		logger.Error().Err(err).Int64("team_id", teamID).Msg("Failed to write team response")
	}
}

// GET /api/v1/standings
func HandleStandings(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	standings, competition, ok := loadStandings(w, r)
	if !ok {
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, standings); err != nil {
		logger.Error().Err(err).Str("competition", competition).Msg("Failed to write standings response")
	}
}

// GET /api/v1/table
//
// Renders the standings as HTML. htmx requests get only the table so the page
// can poll it in place.
func HandleTable(w http.ResponseWriter, r *http.Request) {
	standings, competition, ok := loadStandings(w, r)
	if !ok {
		return
	}

	component := tablePageComponent(competition, standings)
	if htmx.IsRequest(r) {
		component = tableComponent(competition, standings)
	}
	apiutil.RenderHTMLComponent(r.Context(), w, component, nil, "Failed to render standings table", "Failed to render table")
}

func loadStandings(w http.ResponseWriter, r *http.Request) ([]leagues.TeamStanding, string, bool) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, "", false
	}

	competition := strings.TrimSpace(r.URL.Query().Get("competition"))
	if competition == "" {
		competition = leagues.CompetitionLeague
	}
	if !leagues.HasStandings(competition) {
		apiutil.Error(w, "competition must be league or acwpl", http.StatusBadRequest)
		return nil, "", false
	}

	ctx, cancel := context.WithTimeout(r.Context(), teamQueryTimeout)
	defer cancel()

	rows, err := q.ListTeamsByCompetition(ctx, competition)
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to load standings")
		return nil, "", false
	}
	return leagues.StandingsFromTeams(rows), competition, true
}

// internal/api/seasons/handlers.go
package seasons

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/touchline/internal/api/apiutil"
	"github.com/codr1/touchline/internal/api/audit"
	"github.com/codr1/touchline/internal/api/matches"
	"github.com/codr1/touchline/internal/archive"
	"github.com/codr1/touchline/internal/config"
	appdb "github.com/codr1/touchline/internal/db"
	dbgen "github.com/codr1/touchline/internal/db/generated"
	"github.com/codr1/touchline/internal/email"
	"github.com/codr1/touchline/internal/leagues"
)

const (
	seasonQueryTimeout = 10 * time.Second
	mirrorTimeout      = 10 * time.Second
	seasonPathKey      = "n"
	snapshotDateLayout = "2006-01-02"
)

var (
	queries     *dbgen.Queries
	database    *appdb.DB
	mirror      archive.Mirror = archive.Noop{}
	emailSender email.EmailSender
	notifyTo    []string
	now         = time.Now
)

// InitHandlers must be called during server startup before handling requests.
// A nil mirror disables archive mirroring and a nil sender disables the
// archived-season email.
func InitHandlers(db *appdb.DB, cfg *config.Config, m archive.Mirror, sender email.EmailSender) {
	database = db
	queries = nil
	if db != nil {
		queries = db.Queries
	}
	mirror = m
	if mirror == nil {
		mirror = archive.Noop{}
	}
	emailSender = sender
	notifyTo = nil
	if cfg != nil {
		notifyTo = append([]string(nil), cfg.Auth.AdminEmails...)
	}
}

func loadQueries() *dbgen.Queries {
	return queries
}

type teamSnapshot struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Logo        string `json:"logo"`
	Competition string `json:"competition"`
}

type seasonWinners struct {
	League   *matches.TeamRef `json:"league"`
	Cup      *matches.TeamRef `json:"cup"`
	SuperCup *matches.TeamRef `json:"superCup"`
}

// seasonSnapshot is the immutable archive stored per season.
type seasonSnapshot struct {
	SeasonNumber   int64                  `json:"seasonNumber"`
	StartDate      string                 `json:"startDate"`
	EndDate        string                 `json:"endDate"`
	FinalStandings []leagues.TeamStanding `json:"finalStandings"`
	Matches        []matches.MatchView    `json:"matches"`
	Winners        seasonWinners          `json:"winners"`
	Teams          []teamSnapshot         `json:"teams"`
}

type seasonSummary struct {
	SeasonNumber int64         `json:"seasonNumber"`
	StartDate    string        `json:"startDate"`
	EndDate      string        `json:"endDate"`
	MatchCount   int           `json:"matchCount"`
	Winners      seasonWinners `json:"winners"`
	CreatedAt    time.Time     `json:"createdAt"`
}

func newSeasonSummary(row dbgen.Season) (seasonSummary, error) {
	var snapshot seasonSnapshot
	if err := json.Unmarshal([]byte(row.Snapshot), &snapshot); err != nil {
		return seasonSummary{}, fmt.Errorf("decode season %d snapshot: %w", row.SeasonNumber, err)
	}
	return seasonSummary{
		SeasonNumber: row.SeasonNumber,
		StartDate:    snapshot.StartDate,
		EndDate:      snapshot.EndDate,
		MatchCount:   len(snapshot.Matches),
		Winners:      snapshot.Winners,
		CreatedAt:    row.CreatedAt,
	}, nil
}

// POST /api/v1/seasons/reset
func HandleResetSeason(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if !apiutil.RequireAdmin(w, r) {
		return
	}
	if loadQueries() == nil || database == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), seasonQueryTimeout)
	defer cancel()

	var (
		snapshot seasonSnapshot
		encoded  []byte
	)
	err := database.RunInTx(ctx, func(txdb *appdb.DB) error {
		var err error
		snapshot, err = buildSnapshot(ctx, txdb.Queries, now())
		if err != nil {
			return err
		}
		encoded, err = json.Marshal(snapshot)
		if err != nil {
			return fmt.Errorf("encode season snapshot: %w", err)
		}

		start, _ := time.Parse(snapshotDateLayout, snapshot.StartDate)
		end, _ := time.Parse(snapshotDateLayout, snapshot.EndDate)
		if _, err := txdb.Queries.CreateSeason(ctx, dbgen.CreateSeasonParams{
			SeasonNumber: snapshot.SeasonNumber,
			StartDate:    start,
			EndDate:      end,
			Snapshot:     string(encoded),
		}); err != nil {
			return fmt.Errorf("create season: %w", err)
		}
		if err := txdb.Queries.ResetAllTeamStats(ctx); err != nil {
			return fmt.Errorf("reset team stats: %w", err)
		}
		if _, err := txdb.Queries.ClearAllMatches(ctx); err != nil {
			return fmt.Errorf("clear matches: %w", err)
		}
		return audit.Record(ctx, txdb.Queries, "season.reset", "season", snapshot.SeasonNumber, map[string]any{
			"matches": len(snapshot.Matches),
		})
	})
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to archive season")
		return
	}

	logger.Info().Int64("season_number", snapshot.SeasonNumber).Int("matches", len(snapshot.Matches)).Msg("Archived season")

	mirrorCtx, mirrorCancel := context.WithTimeout(context.WithoutCancel(r.Context()), mirrorTimeout)
	defer mirrorCancel()
	if err := mirror.Upsert(mirrorCtx, snapshot.SeasonNumber, encoded); err != nil {
		logger.Warn().Err(err).Int64("season_number", snapshot.SeasonNumber).Msg("Failed to mirror archived season")
	}

	email.SendAsync(r.Context(), emailSender, notifyTo, email.BuildSeasonArchived(summaryForEmail(snapshot)), logger)

	if err := apiutil.WriteJSON(w, http.StatusCreated, snapshot); err != nil {
		logger.Error().Err(err).Msg("Failed to write season response")
	}
}

// buildSnapshot captures the live season. It fails with 400 when nothing has
// been played or scheduled yet.
func buildSnapshot(ctx context.Context, q *dbgen.Queries, at time.Time) (seasonSnapshot, error) {
	allMatches, err := q.ListAllMatches(ctx)
	if err != nil {
		return seasonSnapshot{}, fmt.Errorf("list matches: %w", err)
	}
	teams, err := q.ListTeams(ctx)
	if err != nil {
		return seasonSnapshot{}, fmt.Errorf("list teams: %w", err)
	}
	if !hasLiveData(allMatches, teams) {
		return seasonSnapshot{}, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "There is no season data to archive"}
	}

	latest, err := q.GetMaxSeasonNumber(ctx)
	if err != nil {
		return seasonSnapshot{}, fmt.Errorf("load latest season number: %w", err)
	}

	views, err := matches.LoadMatchViews(ctx, q, allMatches)
	if err != nil {
		return seasonSnapshot{}, err
	}

	end := at.UTC().Format(snapshotDateLayout)
	start := end
	for _, m := range allMatches {
		if _, err := time.Parse(snapshotDateLayout, m.MatchDate); err != nil {
			continue
		}
		if m.MatchDate < start {
			start = m.MatchDate
		}
	}

	byID := make(map[int64]dbgen.Team, len(teams))
	var leagueTeams []dbgen.Team
	snapshotTeams := make([]teamSnapshot, 0, len(teams))
	for _, team := range teams {
		byID[team.ID] = team
		if team.Competition == leagues.CompetitionLeague {
			leagueTeams = append(leagueTeams, team)
		}
		snapshotTeams = append(snapshotTeams, teamSnapshot{
			ID:          team.ID,
			Name:        team.Name,
			Logo:        team.Logo,
			Competition: team.Competition,
		})
	}

	standings := leagues.StandingsFromTeams(leagueTeams)
	var winners seasonWinners
	if len(standings) > 0 && standings[0].Played > 0 {
		winners.League = winnerRef(byID, standings[0].TeamID)
	}
	if id, ok := leagues.FinalWinner(allMatches, leagues.CompetitionCup); ok {
		winners.Cup = winnerRef(byID, id)
	}
	if id, ok := leagues.FinalWinner(allMatches, leagues.CompetitionSuperCup); ok {
		winners.SuperCup = winnerRef(byID, id)
	}

	return seasonSnapshot{
		SeasonNumber:   latest + 1,
		StartDate:      start,
		EndDate:        end,
		FinalStandings: standings,
		Matches:        views,
		Winners:        winners,
		Teams:          snapshotTeams,
	}, nil
}

func hasLiveData(allMatches []dbgen.Match, teams []dbgen.Team) bool {
	if len(allMatches) > 0 {
		return true
	}
	for _, team := range teams {
		if team.Played > 0 {
			return true
		}
	}
	return false
}

func winnerRef(teams map[int64]dbgen.Team, id int64) *matches.TeamRef {
	ref := &matches.TeamRef{ID: id}
	if team, ok := teams[id]; ok {
		ref.Name = team.Name
		ref.Logo = team.Logo
	}
	return ref
}

func summaryForEmail(s seasonSnapshot) email.SeasonSummary {
	start, _ := time.Parse(snapshotDateLayout, s.StartDate)
	end, _ := time.Parse(snapshotDateLayout, s.EndDate)
	summary := email.SeasonSummary{
		SeasonNumber: s.SeasonNumber,
		StartDate:    start,
		EndDate:      end,
		MatchCount:   len(s.Matches),
	}
	if s.Winners.League != nil {
		summary.LeagueWinner = s.Winners.League.Name
	}
	if s.Winners.Cup != nil {
		summary.CupWinner = s.Winners.Cup.Name
	}
	if s.Winners.SuperCup != nil {
		summary.SuperCupWinner = s.Winners.SuperCup.Name
	}
	return summary
}

// GET /api/v1/seasons
func HandleListSeasons(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), seasonQueryTimeout)
	defer cancel()

	rows, err := q.ListSeasons(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list seasons")
		apiutil.Error(w, "Failed to list seasons", http.StatusInternalServerError)
		return
	}

	summaries := make([]seasonSummary, 0, len(rows))
	for _, row := range rows {
		summary, err := newSeasonSummary(row)
		if err != nil {
			logger.Error().Err(err).Int64("season_number", row.SeasonNumber).Msg("Failed to decode season")
			apiutil.Error(w, "Failed to list seasons", http.StatusInternalServerError)
			return
		}
		summaries = append(summaries, summary)
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, summaries); err != nil {
		logger.Error().Err(err).Msg("Failed to write seasons response")
	}
}

// GET /api/v1/seasons/{n}
func HandleGetSeason(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	number, err := apiutil.PathID(r, seasonPathKey)
	if err != nil {
		apiutil.Error(w, "Invalid season number", http.StatusBadRequest)
		return
	}
	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), seasonQueryTimeout)
	defer cancel()

	row, err := q.GetSeason(ctx, number)
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to load season")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(row.Snapshot)); err != nil {
		logger.Error().Err(err).Msg("Failed to write season response")
	}
}

// DELETE /api/v1/seasons/{n}
func HandleDeleteSeason(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if !apiutil.RequireAdmin(w, r) {
		return
	}
	number, err := apiutil.PathID(r, seasonPathKey)
	if err != nil {
		apiutil.Error(w, "Invalid season number", http.StatusBadRequest)
		return
	}
	if loadQueries() == nil || database == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), seasonQueryTimeout)
	defer cancel()

	err = database.RunInTx(ctx, func(txdb *appdb.DB) error {
		deleted, err := txdb.Queries.DeleteSeason(ctx, number)
		if err != nil {
			return fmt.Errorf("delete season %d: %w", number, err)
		}
		if deleted == 0 {
			return apiutil.HandlerError{Status: http.StatusNotFound, Message: "Season not found"}
		}
		return audit.Record(ctx, txdb.Queries, "season.delete", "season", number, nil)
	})
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to delete season")
		return
	}

	mirrorCtx, mirrorCancel := context.WithTimeout(context.WithoutCancel(r.Context()), mirrorTimeout)
	defer mirrorCancel()
	if err := mirror.Delete(mirrorCtx, number); err != nil {
		logger.Warn().Err(err).Int64("season_number", number).Msg("Failed to remove mirrored season")
	}

	logger.Info().Int64("season_number", number).Msg("Deleted season")
	w.WriteHeader(http.StatusNoContent)
}

// DELETE /api/v1/seasons
func HandleDeleteAllSeasons(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if !apiutil.RequireAdmin(w, r) {
		return
	}
	if loadQueries() == nil || database == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), seasonQueryTimeout)
	defer cancel()

	var deleted int64
	err := database.RunInTx(ctx, func(txdb *appdb.DB) error {
		var err error
		deleted, err = txdb.Queries.DeleteAllSeasons(ctx)
		if err != nil {
			return fmt.Errorf("delete seasons: %w", err)
		}
		return audit.Record(ctx, txdb.Queries, "season.delete_all", "season", 0, map[string]any{
			"deleted": deleted,
		})
	})
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to delete seasons")
		return
	}

	mirrorCtx, mirrorCancel := context.WithTimeout(context.WithoutCancel(r.Context()), mirrorTimeout)
	defer mirrorCancel()
	if err := mirror.DeleteAll(mirrorCtx); err != nil {
		logger.Warn().Err(err).Msg("Failed to clear mirrored seasons")
	}

	logger.Info().Int64("deleted", deleted).Msg("Deleted all seasons")
	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]int64{"deleted": deleted}); err != nil {
		logger.Error().Err(err).Msg("Failed to write delete response")
	}
}

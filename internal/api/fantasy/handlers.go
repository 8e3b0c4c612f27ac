// internal/api/fantasy/handlers.go
package fantasy

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
	"github.com/codr1/touchline/internal/api/auth"
	"github.com/codr1/touchline/internal/config"
	appdb "github.com/codr1/touchline/internal/db"
	dbgen "github.com/codr1/touchline/internal/db/generated"
	"github.com/codr1/touchline/internal/leagues"
)

const (
	fantasyQueryTimeout = 5 * time.Second
	maxNameLength       = 100
)

var (
	queries   *dbgen.Queries
	database  *appdb.DB
	budget    = 100.0
	squadSize = 5
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(db *appdb.DB, cfg *config.Config) {
	database = db
	queries = nil
	if db != nil {
		queries = db.Queries
	}
	if cfg != nil {
		budget = cfg.Fantasy.Budget
		squadSize = cfg.Fantasy.SquadSize
	}
}

func loadQueries() *dbgen.Queries {
	return queries
}

type createUserRequest struct {
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	PlayerIDs []int64 `json:"playerIds"`
}

type squadPlayer struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	TeamID       int64   `json:"teamId"`
	Position     string  `json:"position"`
	FantasyPrice float64 `json:"fantasyPrice"`
}

type userResponse struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Squad     []squadPlayer `json:"squad"`
	SquadCost float64       `json:"squadCost"`
	Budget    float64       `json:"budget"`
	CreatedAt time.Time     `json:"createdAt"`
}

func newUserResponse(user dbgen.FantasyUser, squad []dbgen.Player) userResponse {
	resp := userResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Squad:     make([]squadPlayer, 0, len(squad)),
		Budget:    budget,
		CreatedAt: user.CreatedAt,
	}
	for _, p := range squad {
		resp.Squad = append(resp.Squad, squadPlayer{
			ID:           p.ID,
			Name:         p.Name,
			TeamID:       p.TeamID,
			Position:     p.Position,
			FantasyPrice: p.FantasyPrice.Float64,
		})
		resp.SquadCost += p.FantasyPrice.Float64
	}
	return resp
}

// GET /api/v1/fantasy/points?matchweek=N
func HandleFantasyPoints(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	matchweek, err := apiutil.OptionalQueryInt64(r, "matchweek")
	if err != nil {
		apiutil.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if matchweek == nil {
		apiutil.Error(w, "matchweek is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), fantasyQueryTimeout)
	defer cancel()

	players, err := q.ListPlayers(ctx)
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to load players")
		return
	}
	matches, err := q.ListMatchesByCompetition(ctx, leagues.CompetitionLeague)
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to load matches")
		return
	}
	published := matches[:0]
	for _, m := range matches {
		if m.IsPublished {
			published = append(published, m)
		}
	}
	events, err := q.ListAllMatchEvents(ctx)
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to load match events")
		return
	}

	points, err := leagues.CalculateFantasyPoints(players, published, events, *matchweek)
	if err != nil {
		logger.Error().Err(err).Int64("matchweek", *matchweek).Msg("Failed to calculate fantasy points")
		apiutil.Error(w, "Failed to calculate fantasy points", http.StatusInternalServerError)
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, points); err != nil {
		logger.Error().Err(err).Msg("Failed to write fantasy points response")
	}
}

// POST /api/v1/fantasy/users
func HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if loadQueries() == nil || database == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var req createUserRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || len(req.Name) > maxNameLength {
		apiutil.Error(w, fmt.Sprintf("name is required and must be at most %d characters", maxNameLength), http.StatusBadRequest)
		return
	}
	addr, err := auth.NormalizeEmail(req.Email)
	if err != nil {
		apiutil.Error(w, "A valid email is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), fantasyQueryTimeout)
	defer cancel()

	var (
		user  dbgen.FantasyUser
		squad []dbgen.Player
	)
	err = database.RunInTx(ctx, func(txdb *appdb.DB) error {
		var err error
		squad, err = loadSquad(ctx, txdb.Queries, req.PlayerIDs)
		if err != nil {
			return err
		}
		if err := leagues.ValidateSquad(squad, budget, squadSize); err != nil {
			return err
		}
		user, err = txdb.Queries.CreateFantasyUser(ctx, dbgen.CreateFantasyUserParams{Name: req.Name, Email: addr})
		if err != nil {
			if appdb.IsConstraintError(err) {
				return apiutil.HandlerError{Status: http.StatusConflict, Message: "A fantasy team already exists for this email", Err: err}
			}
			return fmt.Errorf("create fantasy user: %w", err)
		}
		for _, p := range squad {
			if err := txdb.Queries.AddFantasyPick(ctx, dbgen.AddFantasyPickParams{FantasyUserID: user.ID, PlayerID: p.ID}); err != nil {
				return fmt.Errorf("add fantasy pick %d: %w", p.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to create fantasy team")
		return
	}

	logger.Info().Int64("fantasy_user_id", user.ID).Int("picks", len(squad)).Msg("Fantasy team created")
	if err := apiutil.WriteJSON(w, http.StatusCreated, newUserResponse(user, squad)); err != nil {
		logger.Error().Err(err).Msg("Failed to write fantasy user response")
	}
}

// GET /api/v1/fantasy/users/{id}
func HandleGetUser(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	userID, err := apiutil.PathID(r, "id")
	if err != nil {
		apiutil.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), fantasyQueryTimeout)
	defer cancel()

	user, err := q.GetFantasyUser(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.Error(w, "Fantasy user not found", http.StatusNotFound)
			return
		}
		apiutil.WriteError(w, r, err, "Failed to load fantasy user")
		return
	}
	picks, err := q.ListFantasyPicks(ctx, user.ID)
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to load fantasy picks")
		return
	}
	squad := make([]dbgen.Player, 0, len(picks))
	for _, pick := range picks {
		player, err := q.GetPlayer(ctx, pick.PlayerID)
		if err != nil {
			apiutil.WriteError(w, r, err, "Failed to load fantasy picks")
			return
		}
		squad = append(squad, player)
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, newUserResponse(user, squad)); err != nil {
		logger.Error().Err(err).Msg("Failed to write fantasy user response")
	}
}

// loadSquad resolves the picked players. Duplicates are passed through so the
// squad validator can reject them.
func loadSquad(ctx context.Context, q *dbgen.Queries, ids []int64) ([]dbgen.Player, error) {
	squad := make([]dbgen.Player, 0, len(ids))
	for _, id := range ids {
		player, err := q.GetPlayer(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, apiutil.HandlerError{Status: http.StatusBadRequest, Message: fmt.Sprintf("Player %d not found", id)}
			}
			return nil, fmt.Errorf("load player %d: %w", id, err)
		}
		squad = append(squad, player)
	}
	return squad, nil
}

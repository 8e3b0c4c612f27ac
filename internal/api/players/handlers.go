// internal/api/players/handlers.go
package players

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
	appdb "github.com/codr1/touchline/internal/db"
	dbgen "github.com/codr1/touchline/internal/db/generated"
	"github.com/codr1/touchline/internal/leagues"
)

const (
	playerQueryTimeout = 5 * time.Second
	playerIDPathKey    = "id"
	maxInjuryDetails   = 500
)

var (
	queries  *dbgen.Queries
	database *appdb.DB
)

type playerRequest struct {
	TeamID        int64    `json:"teamId"`
	Name          string   `json:"name"`
	Number        int64    `json:"number"`
	Position      string   `json:"position"`
	IsCaptain     bool     `json:"isCaptain"`
	IsViceCaptain bool     `json:"isViceCaptain"`
	FantasyPrice  *float64 `json:"fantasyPrice"`
	// ConfirmSwap allows taking the captain or vice-captain armband from a
	// teammate who currently holds it.
	ConfirmSwap bool `json:"confirmSwap"`
}

type transferRequest struct {
	TeamID int64 `json:"teamId"`
}

type availabilityRequest struct {
	Matchweek       int64  `json:"matchweek"`
	ChanceOfPlaying int64  `json:"chanceOfPlaying"`
	InjuryDetails   string `json:"injuryDetails"`
}

type availabilityResponse struct {
	Matchweek       int64  `json:"matchweek"`
	ChanceOfPlaying int64  `json:"chanceOfPlaying"`
	InjuryDetails   string `json:"injuryDetails"`
}

type playerResponse struct {
	ID            int64                  `json:"id"`
	TeamID        int64                  `json:"teamId"`
	Name          string                 `json:"name"`
	Number        int64                  `json:"number"`
	Position      string                 `json:"position"`
	IsCaptain     bool                   `json:"isCaptain"`
	IsViceCaptain bool                   `json:"isViceCaptain"`
	FantasyPrice  *float64               `json:"fantasyPrice"`
	Availability  []availabilityResponse `json:"availability,omitempty"`
}

func newPlayerResponse(p dbgen.Player) playerResponse {
	return playerResponse{
		ID:            p.ID,
		TeamID:        p.TeamID,
		Name:          p.Name,
		Number:        p.Number,
		Position:      p.Position,
		IsCaptain:     p.IsCaptain,
		IsViceCaptain: p.IsViceCaptain,
		FantasyPrice:  apiutil.NullFloat64Ptr(p.FantasyPrice),
	}
}

func newAvailabilityResponse(a dbgen.PlayerAvailability) availabilityResponse {
	return availabilityResponse{
		Matchweek:       a.Matchweek,
		ChanceOfPlaying: a.ChanceOfPlaying,
		InjuryDetails:   a.InjuryDetails,
	}
}

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

func (req *playerRequest) validate() error {
	req.Name = strings.TrimSpace(req.Name)
	req.Position = strings.ToUpper(strings.TrimSpace(req.Position))
	switch {
	case req.TeamID <= 0:
		return &leagues.ValidationError{Field: "teamId", Reason: "is required"}
	case req.Name == "":
		return &leagues.ValidationError{Field: "name", Reason: "is required"}
	case req.Number < 0:
		return &leagues.ValidationError{Field: "number", Reason: "must be 0 or greater"}
	case !leagues.ValidPosition(req.Position):
		return &leagues.ValidationError{Field: "position", Reason: "must be one of " + strings.Join(leagues.Positions, ", ")}
	case req.IsCaptain && req.IsViceCaptain:
		return &leagues.ValidationError{Field: "isViceCaptain", Reason: "cannot be set together with isCaptain"}
	case req.FantasyPrice != nil && *req.FantasyPrice < 0:
		return &leagues.ValidationError{Field: "fantasyPrice", Reason: "must be 0 or greater"}
	}
	return nil
}

// GET /api/v1/players
func HandleListPlayers(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	teamID, err := apiutil.OptionalQueryInt64(r, "teamId")
	if err != nil {
		apiutil.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), playerQueryTimeout)
	defer cancel()

	var rows []dbgen.Player
	if teamID != nil {
		rows, err = q.ListPlayersByTeam(ctx, *teamID)
	} else {
		rows, err = q.ListPlayers(ctx)
	}
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to list players")
		return
	}

	resp := make([]playerResponse, 0, len(rows))
	for _, p := range rows {
		resp = append(resp, newPlayerResponse(p))
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, resp); err != nil {
		logger.Error().Err(err).Msg("Failed to write players response")
	}
}

// GET /api/v1/players/{id}
func HandleGetPlayer(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	playerID, err := apiutil.PathID(r, playerIDPathKey)
	if err != nil {
		apiutil.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), playerQueryTimeout)
	defer cancel()

	player, err := loadPlayer(ctx, q, playerID)
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to load player")
		return
	}
	availability, err := q.ListPlayerAvailability(ctx, playerID)
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to load player")
		return
	}

	resp := newPlayerResponse(player)
	for _, a := range availability {
		resp.Availability = append(resp.Availability, newAvailabilityResponse(a))
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, resp); err != nil {
		logger.Error().Err(err).Int64("player_id", playerID).Msg("Failed to write player response")
	}
}

// POST /api/v1/players
func HandleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	req, ok := decodePlayerRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), playerQueryTimeout)
	defer cancel()

	var created dbgen.Player
	err := database.RunInTx(ctx, func(txdb *appdb.DB) error {
		if err := ensureTeam(ctx, txdb.Queries, req.TeamID); err != nil {
			return err
		}
		if err := assignArmbands(ctx, txdb.Queries, 0, req); err != nil {
			return err
		}
		var err error
		created, err = txdb.Queries.CreatePlayer(ctx, dbgen.CreatePlayerParams{
			TeamID:        req.TeamID,
			Name:          req.Name,
			Number:        req.Number,
			Position:      req.Position,
			IsCaptain:     req.IsCaptain,
			IsViceCaptain: req.IsViceCaptain,
			FantasyPrice:  apiutil.ToNullFloat64(req.FantasyPrice),
		})
		if err != nil {
			return fmt.Errorf("create player: %w", err)
		}
		return audit.Record(ctx, txdb.Queries, "player.create", "player", created.ID, req)
	})
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to create player")
		return
	}

	logger.Info().Int64("player_id", created.ID).Int64("team_id", created.TeamID).Msg("Player created")
	if err := apiutil.WriteJSON(w, http.StatusCreated, newPlayerResponse(created)); err != nil {
		logger.Error().Err(err).Msg("Failed to write player response")
	}
}

// PUT /api/v1/players/{id}
//
// Updates a player in place. The team is changed through the transfer
// endpoint, so teamId must match the current team when it is given.
func HandleUpdatePlayer(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	req, ok := decodePlayerRequest(w, r)
	if !ok {
		return
	}
	playerID, err := apiutil.PathID(r, playerIDPathKey)
	if err != nil {
		apiutil.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), playerQueryTimeout)
	defer cancel()

	var updated dbgen.Player
	err = database.RunInTx(ctx, func(txdb *appdb.DB) error {
		current, err := loadPlayer(ctx, txdb.Queries, playerID)
		if err != nil {
			return err
		}
		if current.TeamID != req.TeamID {
			return apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Use the transfer endpoint to move a player to another team"}
		}
		if err := assignArmbands(ctx, txdb.Queries, playerID, req); err != nil {
			return err
		}
		updated, err = txdb.Queries.UpdatePlayer(ctx, dbgen.UpdatePlayerParams{
			Name:          req.Name,
			Number:        req.Number,
			Position:      req.Position,
			IsCaptain:     req.IsCaptain,
			IsViceCaptain: req.IsViceCaptain,
			FantasyPrice:  apiutil.ToNullFloat64(req.FantasyPrice),
			ID:            playerID,
		})
		if err != nil {
			return fmt.Errorf("update player: %w", err)
		}
		return audit.Record(ctx, txdb.Queries, "player.update", "player", playerID, req)
	})
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to update player")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, newPlayerResponse(updated)); err != nil {
		logger.Error().Err(err).Int64("player_id", playerID).Msg("Failed to write player response")
	}
}

// DELETE /api/v1/players/{id}
func HandleDeletePlayer(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if !apiutil.RequireAdmin(w, r) {
		return
	}
	if database == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	playerID, err := apiutil.PathID(r, playerIDPathKey)
	if err != nil {
		apiutil.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), playerQueryTimeout)
	defer cancel()

	err = database.RunInTx(ctx, func(txdb *appdb.DB) error {
		deleted, err := txdb.Queries.DeletePlayer(ctx, playerID)
		if err != nil {
			if appdb.IsForeignKeyError(err) {
				return apiutil.HandlerError{Status: http.StatusConflict, Message: "Player has recorded match events and cannot be deleted", Err: err}
			}
			return fmt.Errorf("delete player: %w", err)
		}
		if deleted == 0 {
			return apiutil.HandlerError{Status: http.StatusNotFound, Message: "Player not found"}
		}
		return audit.Record(ctx, txdb.Queries, "player.delete", "player", playerID, nil)
	})
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to delete player")
		return
	}

	logger.Info().Int64("player_id", playerID).Msg("Player deleted")
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/v1/players/{id}/transfer
func HandleTransferPlayer(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if !apiutil.RequireAdmin(w, r) {
		return
	}
	if database == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	playerID, err := apiutil.PathID(r, playerIDPathKey)
	if err != nil {
		apiutil.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req transferRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if req.TeamID <= 0 {
		apiutil.Error(w, "teamId is required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), playerQueryTimeout)
	defer cancel()

	var moved dbgen.Player
	err = database.RunInTx(ctx, func(txdb *appdb.DB) error {
		current, err := loadPlayer(ctx, txdb.Queries, playerID)
		if err != nil {
			return err
		}
		if current.TeamID == req.TeamID {
			return apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Player already belongs to that team"}
		}
		if err := ensureTeam(ctx, txdb.Queries, req.TeamID); err != nil {
			return err
		}
		// Armbands stay with the old team.
		moved, err = txdb.Queries.TransferPlayer(ctx, dbgen.TransferPlayerParams{TeamID: req.TeamID, ID: playerID})
		if err != nil {
			return fmt.Errorf("transfer player: %w", err)
		}
		return audit.Record(ctx, txdb.Queries, "player.transfer", "player", playerID, map[string]int64{
			"fromTeamId": current.TeamID,
			"toTeamId":   req.TeamID,
		})
	})
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to transfer player")
		return
	}

	logger.Info().Int64("player_id", playerID).Int64("team_id", req.TeamID).Msg("Player transferred")
	if err := apiutil.WriteJSON(w, http.StatusOK, newPlayerResponse(moved)); err != nil {
		logger.Error().Err(err).Int64("player_id", playerID).Msg("Failed to write player response")
	}
}

// PUT /api/v1/players/{id}/availability
func HandleUpdateAvailability(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if !apiutil.RequireAdmin(w, r) {
		return
	}
	if database == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	playerID, err := apiutil.PathID(r, playerIDPathKey)
	if err != nil {
		apiutil.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req availabilityRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	req.InjuryDetails = strings.TrimSpace(req.InjuryDetails)
	switch {
	case req.Matchweek <= 0:
		apiutil.Error(w, "matchweek must be greater than 0", http.StatusBadRequest)
		return
	case req.ChanceOfPlaying < 0 || req.ChanceOfPlaying > 100:
		apiutil.Error(w, "chanceOfPlaying must be between 0 and 100", http.StatusBadRequest)
		return
	case len(req.InjuryDetails) > maxInjuryDetails:
		apiutil.Error(w, fmt.Sprintf("injuryDetails must be at most %d characters", maxInjuryDetails), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), playerQueryTimeout)
	defer cancel()

	var saved dbgen.PlayerAvailability
	err = database.RunInTx(ctx, func(txdb *appdb.DB) error {
		if _, err := loadPlayer(ctx, txdb.Queries, playerID); err != nil {
			return err
		}
		var err error
		saved, err = txdb.Queries.UpsertPlayerAvailability(ctx, dbgen.UpsertPlayerAvailabilityParams{
			PlayerID:        playerID,
			Matchweek:       req.Matchweek,
			ChanceOfPlaying: req.ChanceOfPlaying,
			InjuryDetails:   req.InjuryDetails,
		})
		if err != nil {
			return fmt.Errorf("save availability: %w", err)
		}
		return audit.Record(ctx, txdb.Queries, "player.availability", "player", playerID, req)
	})
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to update availability")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, newAvailabilityResponse(saved)); err != nil {
		logger.Error().Err(err).Int64("player_id", playerID).Msg("Failed to write availability response")
	}
}

func decodePlayerRequest(w http.ResponseWriter, r *http.Request) (playerRequest, bool) {
	var req playerRequest
	if !apiutil.RequireAdmin(w, r) {
		return req, false
	}
	if database == nil {
		log.Ctx(r.Context()).Error().Msg("Database queries not initialized")
		apiutil.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return req, false
	}
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.Error(w, "Invalid JSON", http.StatusBadRequest)
		return req, false
	}
	if err := req.validate(); err != nil {
		apiutil.WriteError(w, r, err, "Invalid player")
		return req, false
	}
	return req, true
}

// assignArmbands clears the team's current captain or vice-captain when the
// request takes the flag over. Without ConfirmSwap a held flag is a conflict.
func assignArmbands(ctx context.Context, q *dbgen.Queries, playerID int64, req playerRequest) error {
	if req.IsCaptain {
		holder, err := q.GetTeamCaptain(ctx, req.TeamID)
		if err := swapHolder(holder, err, playerID, "captain", req.ConfirmSwap); err != nil {
			return err
		}
		if err := q.ClearTeamCaptain(ctx, dbgen.ClearTeamCaptainParams{TeamID: req.TeamID, ID: playerID}); err != nil {
			return fmt.Errorf("clear captain: %w", err)
		}
	}
	if req.IsViceCaptain {
		holder, err := q.GetTeamViceCaptain(ctx, req.TeamID)
		if err := swapHolder(holder, err, playerID, "vice-captain", req.ConfirmSwap); err != nil {
			return err
		}
		if err := q.ClearTeamViceCaptain(ctx, dbgen.ClearTeamViceCaptainParams{TeamID: req.TeamID, ID: playerID}); err != nil {
			return fmt.Errorf("clear vice-captain: %w", err)
		}
	}
	return nil
}

func swapHolder(holder dbgen.Player, lookupErr error, playerID int64, role string, confirm bool) error {
	if lookupErr != nil {
		if errors.Is(lookupErr, sql.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("get team %s: %w", role, lookupErr)
	}
	if holder.ID == playerID || confirm {
		return nil
	}
	return apiutil.HandlerError{
		Status:  http.StatusConflict,
		Message: fmt.Sprintf("%s is already %s; resend with confirmSwap to replace them", holder.Name, role),
	}
}

func ensureTeam(ctx context.Context, q *dbgen.Queries, teamID int64) error {
	if _, err := q.GetTeam(ctx, teamID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apiutil.HandlerError{Status: http.StatusBadRequest, Message: fmt.Sprintf("Team %d not found", teamID), Err: err}
		}
		return fmt.Errorf("get team %d: %w", teamID, err)
	}
	return nil
}

func loadPlayer(ctx context.Context, q *dbgen.Queries, id int64) (dbgen.Player, error) {
	player, err := q.GetPlayer(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dbgen.Player{}, apiutil.HandlerError{Status: http.StatusNotFound, Message: "Player not found", Err: err}
		}
		return dbgen.Player{}, fmt.Errorf("get player %d: %w", id, err)
	}
	return player, nil
}

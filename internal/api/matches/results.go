package matches

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/codr1/touchline/internal/api/apiutil"
	"github.com/codr1/touchline/internal/api/audit"
	appdb "github.com/codr1/touchline/internal/db"
	dbgen "github.com/codr1/touchline/internal/db/generated"
	"github.com/codr1/touchline/internal/leagues"
)

type eventsRequest struct {
	Events []leagues.EventInput `json:"events"`
}

// matchMutation runs fn against the match inside a transaction and finishes
// with a full reconcile of the match's competition. The refreshed match is
// written back to the caller.
func matchMutation(w http.ResponseWriter, r *http.Request, action string, fn func(ctx context.Context, q *dbgen.Queries, match dbgen.Match) (any, error)) {
	logger := log.Ctx(r.Context())

	if !apiutil.RequireAdmin(w, r) {
		return
	}
	if loadQueries() == nil || database == nil {
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

	var updated dbgen.Match
	err = database.RunInTx(ctx, func(txdb *appdb.DB) error {
		match, err := loadMatch(ctx, txdb.Queries, matchID)
		if err != nil {
			return err
		}
		details, err := fn(ctx, txdb.Queries, match)
		if err != nil {
			return err
		}
		if err := leagues.Reconcile(ctx, txdb.Queries, match.Competition); err != nil {
			return err
		}
		if err := audit.Record(ctx, txdb.Queries, action, "match", match.ID, details); err != nil {
			return err
		}
		updated, err = txdb.Queries.GetMatch(ctx, match.ID)
		return err
	})
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to update match")
		return
	}

	logger.Info().Int64("match_id", matchID).Str("action", action).Msg("Match updated")

	view, err := loadMatchView(ctx, loadQueries(), updated)
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to load match")
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, view); err != nil {
		logger.Error().Err(err).Int64("match_id", matchID).Msg("Failed to write match response")
	}
}

// PUT /api/v1/matches/{id}
func HandleUpdateMatch(w http.ResponseWriter, r *http.Request) {
	var update leagues.ScoreUpdate
	if err := apiutil.DecodeJSON(r, &update); err != nil {
		apiutil.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	matchMutation(w, r, "match.update", func(ctx context.Context, q *dbgen.Queries, match dbgen.Match) (any, error) {
		events, err := q.ListMatchEvents(ctx, match.ID)
		if err != nil {
			return nil, fmt.Errorf("list events: %w", err)
		}
		params, err := leagues.ApplyScoreUpdate(match, update, events)
		if err != nil {
			return nil, err
		}
		if _, err := q.UpdateMatchResult(ctx, params); err != nil {
			return nil, fmt.Errorf("update match result: %w", err)
		}
		return update, nil
	})
}

// POST /api/v1/matches/{id}/events
func HandleReplaceEvents(w http.ResponseWriter, r *http.Request) {
	var req eventsRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	matchMutation(w, r, "match.events", func(ctx context.Context, q *dbgen.Queries, match dbgen.Match) (any, error) {
		if err := leagues.ValidateEvents(match, req.Events); err != nil {
			return nil, err
		}
		if err := ensurePlayersExist(ctx, q, leagues.EventPlayerIDs(req.Events)); err != nil {
			return nil, err
		}
		if err := q.DeleteMatchEvents(ctx, match.ID); err != nil {
			return nil, fmt.Errorf("delete events: %w", err)
		}
		for i, event := range req.Events {
			if _, err := q.CreateMatchEvent(ctx, dbgen.CreateMatchEventParams{
				MatchID:        match.ID,
				Sequence:       int64(i),
				EventType:      event.Type,
				Side:           event.Side,
				PlayerID:       event.PlayerID,
				AssistPlayerID: apiutil.ToNullInt64(event.AssistPlayerID),
				OwnGoal:        event.OwnGoal,
				Minute:         apiutil.ToNullInt64(event.Minute),
			}); err != nil {
				return nil, fmt.Errorf("create event %d: %w", i, err)
			}
		}
		return map[string]int{"events": len(req.Events)}, nil
	})
}

// PUT /api/v1/matches/{id}/lineup
func HandleUpdateLineup(w http.ResponseWriter, r *http.Request) {
	var lineup leagues.Lineup
	if err := apiutil.DecodeJSON(r, &lineup); err != nil {
		apiutil.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	matchMutation(w, r, "match.lineup", func(ctx context.Context, q *dbgen.Queries, match dbgen.Match) (any, error) {
		if err := lineup.Validate(); err != nil {
			return nil, err
		}
		ids := lineup.PlayerIDs()
		if err := ensurePlayersExist(ctx, q, ids); err != nil {
			return nil, err
		}

		stored := sql.NullString{}
		if len(ids) > 0 {
			raw, err := json.Marshal(lineup)
			if err != nil {
				return nil, fmt.Errorf("encode lineup: %w", err)
			}
			stored = sql.NullString{String: string(raw), Valid: true}
		}
		if _, err := q.UpdateMatchLineup(ctx, dbgen.UpdateMatchLineupParams{StartingLineup: stored, ID: match.ID}); err != nil {
			return nil, fmt.Errorf("update lineup: %w", err)
		}
		return map[string]int{"players": len(ids)}, nil
	})
}

// POST /api/v1/matches/{id}/reset-score
func HandleResetScore(w http.ResponseWriter, r *http.Request) {
	matchMutation(w, r, "match.reset_score", func(ctx context.Context, q *dbgen.Queries, match dbgen.Match) (any, error) {
		if _, err := q.ClearMatchResult(ctx, match.ID); err != nil {
			return nil, fmt.Errorf("clear result: %w", err)
		}
		if err := q.DeleteMatchEvents(ctx, match.ID); err != nil {
			return nil, fmt.Errorf("delete events: %w", err)
		}
		return nil, nil
	})
}

func ensurePlayersExist(ctx context.Context, q *dbgen.Queries, ids []int64) error {
	for _, id := range ids {
		if _, err := q.GetPlayer(ctx, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apiutil.HandlerError{Status: http.StatusBadRequest, Message: fmt.Sprintf("Player %d not found", id), Err: err}
			}
			return fmt.Errorf("get player %d: %w", id, err)
		}
	}
	return nil
}

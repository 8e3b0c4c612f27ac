package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/touchline/internal/api/apiutil"
	"github.com/codr1/touchline/internal/api/authz"
	appdb "github.com/codr1/touchline/internal/db"
	dbgen "github.com/codr1/touchline/internal/db/generated"
)

const (
	auditQueryTimeout = 5 * time.Second
	defaultListLimit  = 100
	maxListLimit      = 500
)

var queries *dbgen.Queries

func InitHandlers(database *appdb.DB) {
	if database == nil {
		queries = nil
		return
	}
	queries = database.Queries
}

// Record appends an audit row attributed to the admin in ctx. Call it with
// the transaction's queries so the row commits with the change it describes.
func Record(ctx context.Context, q *dbgen.Queries, action, entityType string, entityID int64, details any) error {
	payload := ""
	if details != nil {
		raw, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("marshal audit details: %w", err)
		}
		payload = string(raw)
	}

	params := dbgen.CreateAuditLogParams{
		Action:     action,
		EntityType: entityType,
		Details:    payload,
	}
	if adminID, ok := authz.AdminID(ctx); ok {
		params.AdminID.Int64, params.AdminID.Valid = adminID, true
	}
	if entityID > 0 {
		params.EntityID.Int64, params.EntityID.Valid = entityID, true
	}

	if err := q.CreateAuditLog(ctx, params); err != nil {
		return fmt.Errorf("record audit log: %w", err)
	}
	return nil
}

type auditLogResponse struct {
	ID         int64           `json:"id"`
	AdminID    *int64          `json:"adminId"`
	Action     string          `json:"action"`
	EntityType string          `json:"entityType"`
	EntityID   *int64          `json:"entityId"`
	Details    json.RawMessage `json:"details,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

func newAuditLogResponse(row dbgen.AuditLog) auditLogResponse {
	resp := auditLogResponse{
		ID:         row.ID,
		AdminID:    apiutil.NullInt64Ptr(row.AdminID),
		Action:     row.Action,
		EntityType: row.EntityType,
		EntityID:   apiutil.NullInt64Ptr(row.EntityID),
		CreatedAt:  row.CreatedAt,
	}
	if row.Details != "" && json.Valid([]byte(row.Details)) {
		resp.Details = json.RawMessage(row.Details)
	}
	return resp
}

// GET /api/v1/audit-logs
func HandleListAuditLogs(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if !apiutil.RequireAdmin(w, r) {
		return
	}

	limit := int64(defaultListLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := apiutil.ParsePositiveInt64Field(raw, "limit")
		if err != nil {
			apiutil.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		limit = min(parsed, maxListLimit)
	}

	ctx, cancel := context.WithTimeout(r.Context(), auditQueryTimeout)
	defer cancel()

	rows, err := queries.ListAuditLogs(ctx, limit)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list audit logs")
		apiutil.Error(w, "Failed to list audit logs", http.StatusInternalServerError)
		return
	}

	resp := make([]auditLogResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, newAuditLogResponse(row))
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, resp); err != nil {
		logger.Error().Err(err).Msg("Failed to write audit log response")
	}
}

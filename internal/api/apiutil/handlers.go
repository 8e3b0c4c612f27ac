package apiutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/codr1/touchline/internal/api/authz"
	appdb "github.com/codr1/touchline/internal/db"
	"github.com/codr1/touchline/internal/leagues"
)

type HandlerError struct {
	Status  int
	Message string
	Err     error
}

func (e HandlerError) Error() string {
	return e.Message
}

func (e HandlerError) Unwrap() error {
	return e.Err
}

func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return fmt.Errorf("missing request body")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	if err := encoder.Encode(payload); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

type errorBody struct {
	Message string `json:"message"`
}

// Error mirrors http.Error but writes {"message": ...} so API clients can show
// the reason directly.
func Error(w http.ResponseWriter, message string, status int) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	if err := WriteJSON(w, status, errorBody{Message: message}); err != nil {
		log.Error().Err(err).Msg("Failed to write error response")
	}
}

// RequireAdmin writes 401/403 and returns false unless the caller is an admin.
func RequireAdmin(w http.ResponseWriter, r *http.Request) bool {
	logger := log.Ctx(r.Context())
	if err := authz.RequireAdmin(r.Context()); err != nil {
		switch {
		case errors.Is(err, authz.ErrUnauthenticated):
			logger.Warn().Str("path", r.URL.Path).Msg("Admin access denied: unauthenticated")
			Error(w, "Unauthorized", http.StatusUnauthorized)
		case errors.Is(err, authz.ErrForbidden):
			logger.Warn().Str("path", r.URL.Path).Msg("Admin access denied: forbidden")
			Error(w, "Forbidden", http.StatusForbidden)
		default:
			logger.Error().Err(err).Msg("Admin access denied: error")
			Error(w, "Failed to authorize request", http.StatusInternalServerError)
		}
		return false
	}
	return true
}

// WriteError maps an error returned from a handler or transaction to a
// response. Validation failures become 400, missing rows 404 and constraint
// violations 409; anything else is logged and reported with fallback.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	logger := log.Ctx(r.Context())

	var handlerErr HandlerError
	if errors.As(err, &handlerErr) {
		if handlerErr.Status >= http.StatusInternalServerError && handlerErr.Err != nil {
			logger.Error().Err(handlerErr.Err).Msg(handlerErr.Message)
		}
		Error(w, handlerErr.Message, handlerErr.Status)
		return
	}

	var validationErr *leagues.ValidationError
	if errors.As(err, &validationErr) {
		Error(w, validationErr.Error(), http.StatusBadRequest)
		return
	}

	switch {
	case errors.Is(err, sql.ErrNoRows):
		Error(w, "Not found", http.StatusNotFound)
	case appdb.IsConstraintError(err):
		logger.Warn().Err(err).Msg("Constraint violation")
		Error(w, "Request conflicts with existing data", http.StatusConflict)
	default:
		logger.Error().Err(err).Msg(fallback)
		Error(w, fallback, http.StatusInternalServerError)
	}
}

package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/touchline/internal/api/apiutil"
	"github.com/codr1/touchline/internal/api/audit"
	"github.com/codr1/touchline/internal/api/authz"
	"github.com/codr1/touchline/internal/config"
	appdb "github.com/codr1/touchline/internal/db"
	dbgen "github.com/codr1/touchline/internal/db/generated"
	"github.com/codr1/touchline/internal/email"
	"github.com/codr1/touchline/internal/ratelimit"
)

const (
	authQueryTimeout    = 5 * time.Second
	verificationCodeTTL = 15 * time.Minute
	devEnvironment      = "development"
)

var (
	queries     *dbgen.Queries
	database    *appdb.DB
	appConfig   *config.Config
	emailSender email.EmailSender
	limiter     *ratelimit.Limiter
	now         = time.Now
)

func InitHandlers(db *appdb.DB, cfg *config.Config, sender email.EmailSender, l *ratelimit.Limiter) {
	database = db
	if db != nil {
		queries = db.Queries
	}
	appConfig = cfg
	emailSender = sender
	limiter = l
}

// SeedAdmins makes sure every configured admin email has a row. Existing
// admins keep their passwords.
func SeedAdmins(ctx context.Context, q *dbgen.Queries, emails []string) error {
	for _, raw := range emails {
		addr, err := NormalizeEmail(raw)
		if err != nil {
			return fmt.Errorf("admin email %q: %w", raw, err)
		}
		if err := q.EnsureAdmin(ctx, addr); err != nil {
			return fmt.Errorf("seed admin %q: %w", addr, err)
		}
	}
	return nil
}

// UserFromRequest returns the admin identified by the bearer token, or nil
// when the request carries no token.
func UserFromRequest(r *http.Request) (*authz.AuthUser, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return nil, nil
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("%w: malformed authorization header", ErrInvalidToken)
	}
	if appConfig == nil {
		return nil, ErrSecretMissing
	}
	return ParseToken(appConfig.App.SecretKey, strings.TrimSpace(token), now())
}

type identifierRequest struct {
	Identifier string `json:"identifier"`
	Email      string `json:"email"`
}

func (r identifierRequest) raw() string {
	return apiutil.FirstNonEmpty(r.Identifier, r.Email)
}

type checkEmailResponse struct {
	Exists      bool `json:"exists"`
	HasPassword bool `json:"hasPassword"`
	CodeSent    bool `json:"codeSent"`
}

type adminResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type tokenResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	Admin     adminResponse `json:"admin"`
}

func newAdminResponse(admin dbgen.Admin) adminResponse {
	return adminResponse{ID: admin.ID, Email: admin.Email, Phone: admin.Phone.String}
}

func lookupAdmin(ctx context.Context, id Identifier) (dbgen.Admin, error) {
	if id.Email != "" {
		return queries.GetAdminByEmail(ctx, id.Email)
	}
	return queries.GetAdminByPhone(ctx, sql.NullString{String: id.Phone, Valid: true})
}

func clientIP(r *http.Request) string {
	trustProxy := appConfig != nil && appConfig.App.TrustProxy
	return ratelimit.GetClientIP(r, trustProxy)
}

func writeRateLimited(w http.ResponseWriter, result ratelimit.LimitResult) {
	seconds := int(result.RetryAfter.Seconds())
	if seconds < 1 {
		seconds = 1
	}
	w.Header().Set("Retry-After", strconv.Itoa(seconds))
	apiutil.Error(w, "Too many attempts. Please try again later.", http.StatusTooManyRequests)
}

// POST /api/v1/auth/check-email
func HandleCheckEmail(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var req identifierRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	id, err := ParseIdentifier(req.raw())
	if err != nil {
		apiutil.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), authQueryTimeout)
	defer cancel()

	admin, err := lookupAdmin(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteJSON(w, http.StatusOK, checkEmailResponse{})
			return
		}
		logger.Error().Err(err).Msg("Failed to look up admin")
		apiutil.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if admin.PasswordHash.Valid {
		apiutil.WriteJSON(w, http.StatusOK, checkEmailResponse{Exists: true, HasPassword: true})
		return
	}

	ip := clientIP(r)
	if limiter != nil {
		if result := limiter.CheckCodeSend(id.String(), ip); !result.Allowed {
			ratelimit.LogRateLimitExceeded("code_send", id.String(), ip, result.Reason)
			writeRateLimited(w, result)
			return
		}
	}

	code, err := GenerateVerificationCode()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to generate verification code")
		apiutil.Error(w, "Failed to send verification code", http.StatusInternalServerError)
		return
	}
	codeHash, err := HashPassword(code)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash verification code")
		apiutil.Error(w, "Failed to send verification code", http.StatusInternalServerError)
		return
	}

	if _, err := queries.CreateVerificationCode(ctx, dbgen.CreateVerificationCodeParams{
		AdminID:   admin.ID,
		CodeHash:  codeHash,
		ExpiresAt: now().UTC().Add(verificationCodeTTL),
	}); err != nil {
		logger.Error().Err(err).Int64("admin_id", admin.ID).Msg("Failed to store verification code")
		apiutil.Error(w, "Failed to send verification code", http.StatusInternalServerError)
		return
	}
	if limiter != nil {
		limiter.RecordCodeSend(id.String(), ip)
	}

	deliverCode(r.Context(), admin, code)

	apiutil.WriteJSON(w, http.StatusOK, checkEmailResponse{Exists: true, CodeSent: true})
}

func deliverCode(ctx context.Context, admin dbgen.Admin, code string) {
	logger := log.Ctx(ctx)
	if emailSender == nil {
		if appConfig != nil && appConfig.App.Environment == devEnvironment {
			logger.Info().Str("email", admin.Email).Str("code", code).Msg("Verification code (email delivery disabled)")
			return
		}
		logger.Warn().Int64("admin_id", admin.ID).Msg("Verification code issued but email delivery is not configured")
		return
	}

	appName := ""
	if appConfig != nil {
		appName = appConfig.App.Name
	}
	email.SendAsync(ctx, emailSender, []string{admin.Email}, email.BuildVerificationCode(appName, code, verificationCodeTTL), logger)
}

type setupPasswordRequest struct {
	Identifier string `json:"identifier"`
	Email      string `json:"email"`
	Code       string `json:"code"`
	Password   string `json:"password"`
}

// POST /api/v1/auth/setup-password
func HandleSetupPassword(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil || database == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var req setupPasswordRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	id, err := ParseIdentifier(apiutil.FirstNonEmpty(req.Identifier, req.Email))
	if err != nil {
		apiutil.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	code := strings.TrimSpace(req.Code)
	if code == "" {
		apiutil.Error(w, "Verification code is required", http.StatusBadRequest)
		return
	}
	if err := validatePassword(req.Password); err != nil {
		apiutil.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ip := clientIP(r)
	if limiter != nil {
		if result := limiter.CheckLogin(id.String(), ip); !result.Allowed {
			ratelimit.LogRateLimitExceeded("setup_password", id.String(), ip, result.Reason)
			writeRateLimited(w, result)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), authQueryTimeout)
	defer cancel()

	admin, err := lookupAdmin(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			recordFailure(id, ip)
			apiutil.Error(w, "Invalid or expired verification code", http.StatusUnauthorized)
			return
		}
		logger.Error().Err(err).Msg("Failed to look up admin")
		apiutil.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if admin.PasswordHash.Valid {
		apiutil.Error(w, "Password is already set. Please log in.", http.StatusConflict)
		return
	}

	stored, err := queries.GetActiveVerificationCode(ctx, dbgen.GetActiveVerificationCodeParams{
		AdminID: admin.ID,
		Now:     now().UTC(),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			recordFailure(id, ip)
			apiutil.Error(w, "Invalid or expired verification code", http.StatusUnauthorized)
			return
		}
		logger.Error().Err(err).Int64("admin_id", admin.ID).Msg("Failed to load verification code")
		apiutil.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if !VerifyPassword(stored.CodeHash, code) {
		recordFailure(id, ip)
		apiutil.Error(w, "Invalid or expired verification code", http.StatusUnauthorized)
		return
	}

	passwordHash, err := HashPassword(req.Password)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash password")
		apiutil.Error(w, "Failed to set password", http.StatusInternalServerError)
		return
	}

	var updated dbgen.Admin
	err = database.RunInTx(ctx, func(txdb *appdb.DB) error {
		if err := txdb.Queries.ConsumeVerificationCode(ctx, stored.ID); err != nil {
			return fmt.Errorf("consume code: %w", err)
		}
		var err error
		updated, err = txdb.Queries.SetAdminPassword(ctx, dbgen.SetAdminPasswordParams{
			PasswordHash: sql.NullString{String: passwordHash, Valid: true},
			ID:           admin.ID,
		})
		if err != nil {
			return fmt.Errorf("set password: %w", err)
		}
		actorCtx := authz.ContextWithUser(ctx, &authz.AuthUser{ID: admin.ID, Email: admin.Email, IsAdmin: true})
		return audit.Record(actorCtx, txdb.Queries, "admin.setup_password", "admin", admin.ID, nil)
	})
	if err != nil {
		apiutil.WriteError(w, r, err, "Failed to set password")
		return
	}
	if limiter != nil {
		limiter.RecordLoginSuccess(id.String(), ip)
	}

	logger.Info().Int64("admin_id", updated.ID).Msg("Admin password set")
	writeToken(w, r, updated)
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

// POST /api/v1/auth/login
func HandleLogin(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var req loginRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	id, err := ParseIdentifier(apiutil.FirstNonEmpty(req.Identifier, req.Email))
	if err != nil {
		apiutil.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Password == "" {
		apiutil.Error(w, "Password is required", http.StatusBadRequest)
		return
	}

	ip := clientIP(r)
	if limiter != nil {
		if result := limiter.CheckLogin(id.String(), ip); !result.Allowed {
			ratelimit.LogRateLimitExceeded("login", id.String(), ip, result.Reason)
			writeRateLimited(w, result)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), authQueryTimeout)
	defer cancel()

	admin, err := lookupAdmin(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			recordFailure(id, ip)
			apiutil.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		logger.Error().Err(err).Msg("Failed to look up admin")
		apiutil.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if !admin.PasswordHash.Valid {
		apiutil.Error(w, "Password has not been set up yet", http.StatusConflict)
		return
	}
	if !VerifyPassword(admin.PasswordHash.String, req.Password) {
		if recordFailure(id, ip) {
			logger.Warn().Int64("admin_id", admin.ID).Msg("Admin locked out after repeated failures")
		}
		apiutil.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}
	if limiter != nil {
		limiter.RecordLoginSuccess(id.String(), ip)
	}

	logger.Info().Int64("admin_id", admin.ID).Msg("Admin logged in")
	writeToken(w, r, admin)
}

type verifyResponse struct {
	Valid bool          `json:"valid"`
	Admin adminResponse `json:"admin"`
}

// GET /api/v1/auth/verify
func HandleVerify(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if queries == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	user, err := UserFromRequest(r)
	if err != nil || user == nil || !user.IsAdmin {
		apiutil.Error(w, "Invalid or missing token", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), authQueryTimeout)
	defer cancel()

	admin, err := queries.GetAdminByID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.Error(w, "Invalid or missing token", http.StatusUnauthorized)
			return
		}
		logger.Error().Err(err).Int64("admin_id", user.ID).Msg("Failed to load admin")
		apiutil.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	apiutil.WriteJSON(w, http.StatusOK, verifyResponse{Valid: true, Admin: newAdminResponse(admin)})
}

func recordFailure(id Identifier, ip string) bool {
	if limiter == nil {
		return false
	}
	return limiter.RecordLoginFailure(id.String(), ip)
}

func writeToken(w http.ResponseWriter, r *http.Request, admin dbgen.Admin) {
	logger := log.Ctx(r.Context())

	secret := ""
	if appConfig != nil {
		secret = appConfig.App.SecretKey
	}
	token, expiresAt, err := IssueToken(secret, admin, now())
	if err != nil {
		logger.Error().Err(err).Int64("admin_id", admin.ID).Msg("Failed to issue token")
		apiutil.Error(w, "Failed to issue token", http.StatusInternalServerError)
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, tokenResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Admin:     newAdminResponse(admin),
	}); err != nil {
		logger.Error().Err(err).Msg("Failed to write token response")
	}
}

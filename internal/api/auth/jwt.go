package auth

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"strconv"
	"time"

	jose "github.com/go-jose/go-jose/v3"
	"github.com/go-jose/go-jose/v3/jwt"

	"github.com/codr1/touchline/internal/api/authz"
	dbgen "github.com/codr1/touchline/internal/db/generated"
)

const (
	TokenTTL    = 8 * time.Hour
	tokenIssuer = "touchline"
	roleAdmin   = "admin"
	tokenLeeway = 30 * time.Second
)

var (
	ErrSecretMissing = errors.New("auth secret key is not configured")
	ErrInvalidToken  = errors.New("invalid token")
)

type tokenClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// signingKey stretches the configured secret to the 256 bits HS256 expects.
func signingKey(secret string) ([]byte, error) {
	if secret == "" {
		return nil, ErrSecretMissing
	}
	sum := sha256.Sum256([]byte(secret))
	return sum[:], nil
}

// IssueToken signs an admin bearer token valid for TokenTTL from now.
func IssueToken(secret string, admin dbgen.Admin, now time.Time) (string, time.Time, error) {
	key, err := signingKey(secret)
	if err != nil {
		return "", time.Time{}, err
	}

	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.HS256, Key: key},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("create signer: %w", err)
	}

	expiresAt := now.Add(TokenTTL)
	claims := jwt.Claims{
		Issuer:   tokenIssuer,
		Subject:  strconv.FormatInt(admin.ID, 10),
		IssuedAt: jwt.NewNumericDate(now),
		Expiry:   jwt.NewNumericDate(expiresAt),
	}
	raw, err := jwt.Signed(signer).
		Claims(claims).
		Claims(tokenClaims{Email: admin.Email, Role: roleAdmin}).
		CompactSerialize()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return raw, expiresAt, nil
}

// ParseToken verifies signature, issuer and expiry and returns the caller.
func ParseToken(secret, raw string, now time.Time) (*authz.AuthUser, error) {
	key, err := signingKey(secret)
	if err != nil {
		return nil, err
	}

	tok, err := jwt.ParseSigned(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if len(tok.Headers) != 1 || tok.Headers[0].Algorithm != string(jose.HS256) {
		return nil, fmt.Errorf("%w: unexpected algorithm", ErrInvalidToken)
	}

	var claims jwt.Claims
	var custom tokenClaims
	if err := tok.Claims(key, &claims, &custom); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if err := claims.ValidateWithLeeway(jwt.Expected{Issuer: tokenIssuer, Time: now}, tokenLeeway); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}

	return &authz.AuthUser{
		ID:      id,
		Email:   custom.Email,
		IsAdmin: custom.Role == roleAdmin,
	}, nil
}

package authz

import (
	"context"
	"errors"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

// AuthUser is the caller identity carried by a verified bearer token.
type AuthUser struct {
	ID      int64
	Email   string
	IsAdmin bool
}

type userContextKey struct{}

func ContextWithUser(ctx context.Context, user *AuthUser) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext retrieves the AuthUser stored in ctx.
// It returns nil if ctx is nil, if no user is stored, or if the stored value has a different type.
func UserFromContext(ctx context.Context) *AuthUser {
	if ctx == nil {
		return nil
	}

	user, ok := ctx.Value(userContextKey{}).(*AuthUser)
	if !ok {
		return nil
	}

	return user
}

// IsAdmin reports whether the context carries an admin identity.
func IsAdmin(ctx context.Context) bool {
	user := UserFromContext(ctx)
	return user != nil && user.IsAdmin
}

// RequireAdmin returns ErrUnauthenticated without a user and ErrForbidden for
// a user that is not an admin.
func RequireAdmin(ctx context.Context) error {
	user := UserFromContext(ctx)
	if user == nil {
		return ErrUnauthenticated
	}
	if !user.IsAdmin {
		return ErrForbidden
	}
	return nil
}

// AdminID returns the acting admin's id, or false for anonymous callers.
func AdminID(ctx context.Context) (int64, bool) {
	user := UserFromContext(ctx)
	if user == nil || !user.IsAdmin {
		return 0, false
	}
	return user.ID, true
}

package testutil

import (
	"context"
	"testing"

	"github.com/codr1/touchline/internal/api/authz"
	"github.com/codr1/touchline/internal/db"
)

// AdminContext seeds an admin row and returns a context carrying its identity.
func AdminContext(t *testing.T, database *db.DB) context.Context {
	t.Helper()

	ctx := context.Background()
	if err := database.Queries.EnsureAdmin(ctx, "admin@example.com"); err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	admin, err := database.Queries.GetAdminByEmail(ctx, "admin@example.com")
	if err != nil {
		t.Fatalf("get admin: %v", err)
	}
	return authz.ContextWithUser(ctx, &authz.AuthUser{ID: admin.ID, Email: admin.Email, IsAdmin: true})
}

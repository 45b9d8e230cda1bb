package testutil

import (
	"net/http"

	"github.com/dalemusser/chapterhub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestUser builds a SessionUser with a fresh valid ObjectID hex, and the
// given primary role also present in Roles.
func TestUser(name, primary string, extraRoles ...string) *auth.SessionUser {
	return &auth.SessionUser{
		ID:    primitive.NewObjectID().Hex(),
		Name:  name,
		Email: "test@example.com",
		Role:  primary,
		Roles: append([]string{primary}, extraRoles...),
	}
}

// WithUser injects a session user into the request context, the same way
// the session middleware would.
func WithUser(r *http.Request, u *auth.SessionUser) *http.Request {
	return auth.WithTestUser(r, u)
}

// internal/app/features/featuregates/authorizer.go
package featuregates

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/chapterhub/internal/app/policy/featuregate"
	"github.com/dalemusser/chapterhub/internal/app/system/authz"
)

// requestAuthorizer adapts the signed-in user on an HTTP request to the
// policy layer's Authorizer. Every role the user holds counts, not just
// the primary.
type requestAuthorizer struct {
	r *http.Request
}

func (a requestAuthorizer) Require(_ context.Context, roles ...authz.Role) (featuregate.Identity, error) {
	_, name, uid, ok := authz.UserCtx(a.r)
	if !ok {
		return featuregate.Identity{}, &featuregate.ForbiddenError{Need: roleList(roles)}
	}

	held := authz.UserRoles(a.r)
	for _, want := range roles {
		if authz.HasRole(held, want) {
			return featuregate.Identity{ID: uid, Name: name}, nil
		}
	}

	return featuregate.Identity{}, &featuregate.ForbiddenError{Need: roleList(roles)}
}

func roleList(roles []authz.Role) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return strings.Join(names, " or ")
}

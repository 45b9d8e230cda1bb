// Package gates provides authorization gate functions for HTTP handlers.
// Gates check authentication and authorization, rendering appropriate error
// pages when checks fail.
//
// Route groups that share one role requirement use auth.RequireRole
// middleware instead; gates are for handlers on mixed-access routes that
// need their own check. Resource-specific decisions (who may publish a
// given offering, who may flip a gate) live in internal/app/policy.
package gates

import (
	"net/http"

	uierrors "github.com/dalemusser/chapterhub/internal/app/features/errors"
	"github.com/dalemusser/chapterhub/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Result contains the result of an authorization gate check.
type Result struct {
	Role   string
	Name   string
	UserID primitive.ObjectID
	OK     bool
}

// RequireAuth ensures a user is authenticated.
// If not authenticated, it renders an unauthorized error and returns OK=false.
// The loginURL parameter specifies where to redirect for login.
func RequireAuth(w http.ResponseWriter, r *http.Request, loginURL string) Result {
	role, name, uid, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, loginURL)
		return Result{OK: false}
	}
	return Result{Role: role, Name: name, UserID: uid, OK: true}
}

// RequireAdmin ensures the user is authenticated and holds the admin role.
// If not authenticated, renders unauthorized error.
// If authenticated but not admin, renders forbidden error with the provided
// message and fallback URL.
func RequireAdmin(w http.ResponseWriter, r *http.Request, forbiddenMsg, fallbackURL string) Result {
	return RequireAnyRole(w, r, forbiddenMsg, fallbackURL, authz.RoleAdmin)
}

// RequireAdminOrChapterLead ensures the user is authenticated and holds the
// admin or chapter_lead role.
func RequireAdminOrChapterLead(w http.ResponseWriter, r *http.Request, forbiddenMsg, fallbackURL string) Result {
	return RequireAnyRole(w, r, forbiddenMsg, fallbackURL, authz.RoleAdmin, authz.RoleChapterLead)
}

// RequireInstructor ensures the user is authenticated and holds the
// instructor, chapter_lead, or admin role.
func RequireInstructor(w http.ResponseWriter, r *http.Request, forbiddenMsg, fallbackURL string) Result {
	return RequireAnyRole(w, r, forbiddenMsg, fallbackURL,
		authz.RoleInstructor, authz.RoleChapterLead, authz.RoleAdmin)
}

// RequireAnyRole ensures the user is authenticated and holds one of the
// allowed roles. Checks every role the user holds, not just the primary,
// so a mentor who also instructs passes instructor gates.
func RequireAnyRole(w http.ResponseWriter, r *http.Request, forbiddenMsg, fallbackURL string, allowed ...authz.Role) Result {
	role, name, uid, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return Result{OK: false}
	}

	held := authz.UserRoles(r)
	for _, want := range allowed {
		if authz.HasRole(held, want) {
			return Result{Role: role, Name: name, UserID: uid, OK: true}
		}
	}

	uierrors.RenderForbidden(w, r, forbiddenMsg, fallbackURL)
	return Result{OK: false}
}

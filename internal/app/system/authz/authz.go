// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/dalemusser/chapterhub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the user's primary role, name, Mongo ObjectID, and a found
// flag. If no user is present in context or the user ID is malformed, it
// returns "visitor", "", NilObjectID, false. This ensures callers can trust
// that ok=true means a valid, authenticated user with a valid ObjectID.
func UserCtx(r *http.Request) (role string, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in session - fail closed for security.
		return "visitor", "", primitive.NilObjectID, false
	}
	role = string(RoleStudent)
	if parsed, valid := ParseRole(user.Role); valid {
		role = string(parsed)
	}
	return role, user.Name, userID, true
}

// UserRoles returns every recognized role the current user holds.
// Returns nil when no user is present.
func UserRoles(r *http.Request) []Role {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return nil
	}
	raw := user.Roles
	if len(raw) == 0 && user.Role != "" {
		raw = []string{user.Role}
	}
	return NormalizeRoles(raw)
}

// IsAdmin reports whether the current request's user holds the admin role.
func IsAdmin(r *http.Request) bool {
	return HasRole(UserRoles(r), RoleAdmin)
}

// IsChapterLead reports whether the current request's user holds the
// chapter_lead role.
func IsChapterLead(r *http.Request) bool {
	return HasRole(UserRoles(r), RoleChapterLead)
}

// IsInstructor reports whether the current request's user holds the
// instructor role.
func IsInstructor(r *http.Request) bool {
	return HasRole(UserRoles(r), RoleInstructor)
}

// UserChapterID returns the current user's chapter ID as an ObjectID.
// Returns NilObjectID if the user is not logged in or has no chapter.
func UserChapterID(r *http.Request) primitive.ObjectID {
	user, ok := auth.CurrentUser(r)
	if !ok || user.ChapterID == "" {
		return primitive.NilObjectID
	}
	oid, err := primitive.ObjectIDFromHex(user.ChapterID)
	if err != nil {
		return primitive.NilObjectID
	}
	return oid
}

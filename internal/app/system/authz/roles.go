// internal/app/system/authz/roles.go
package authz

import "strings"

// Role is the closed set of roles a ChapterHub account can hold.
// Raw role strings from sessions or the database go through ParseRole so
// that stale values from older deployments are dropped instead of leaking
// into policy decisions.
type Role string

const (
	RoleStudent     Role = "student"
	RoleParent      Role = "parent"
	RoleMentor      Role = "mentor"
	RoleInstructor  Role = "instructor"
	RoleStaff       Role = "staff"
	RoleChapterLead Role = "chapter_lead"
	RoleAdmin       Role = "admin"
)

// primaryFallback is the order used to pick a primary role when the stored
// primary is missing or unrecognized.
var primaryFallback = []Role{
	RoleAdmin,
	RoleChapterLead,
	RoleInstructor,
	RoleMentor,
	RoleStaff,
	RoleParent,
	RoleStudent,
}

// ParseRole maps a raw role string to a Role. The second return is false
// for unrecognized values.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleStudent:
		return RoleStudent, true
	case RoleParent:
		return RoleParent, true
	case RoleMentor:
		return RoleMentor, true
	case RoleInstructor:
		return RoleInstructor, true
	case RoleStaff:
		return RoleStaff, true
	case RoleChapterLead:
		return RoleChapterLead, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

// NormalizeRoles parses a list of raw role strings, dropping unrecognized
// values and duplicates while preserving first-seen order.
func NormalizeRoles(raw []string) []Role {
	seen := make(map[Role]struct{}, len(raw))
	out := make([]Role, 0, len(raw))
	for _, s := range raw {
		role, ok := ParseRole(s)
		if !ok {
			continue
		}
		if _, dup := seen[role]; dup {
			continue
		}
		seen[role] = struct{}{}
		out = append(out, role)
	}
	return out
}

// PrimaryRole resolves the role to build pages around. The stored primary
// wins when it parses; otherwise the highest-precedence role the user holds;
// otherwise student.
func PrimaryRole(storedPrimary string, roles []Role) Role {
	if role, ok := ParseRole(storedPrimary); ok {
		return role
	}
	held := make(map[Role]struct{}, len(roles))
	for _, r := range roles {
		held[r] = struct{}{}
	}
	for _, candidate := range primaryFallback {
		if _, ok := held[candidate]; ok {
			return candidate
		}
	}
	return RoleStudent
}

// HasRole reports whether roles contains want.
func HasRole(roles []Role, want Role) bool {
	for _, r := range roles {
		if r == want {
			return true
		}
	}
	return false
}

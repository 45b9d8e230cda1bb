// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"

	"github.com/dalemusser/chapterhub/internal/app/system/auth"
	"github.com/dalemusser/chapterhub/internal/app/system/authz"
	"github.com/dalemusser/chapterhub/internal/app/system/nav"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
)

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(r, "Page Title", "/default-back"),
//	    // page-specific fields...
//	}
type BaseVM struct {
	SiteName string

	// User context (from auth middleware)
	IsLoggedIn bool
	Role       string
	UserName   string

	// Resolved navigation for the header and "more" menu.
	Nav nav.ViewModel

	// Page context
	Title       string
	BackURL     string
	CurrentPath string

	// CSRF protection
	CSRFToken string
}

// NewBaseVM creates a fully populated BaseVM for a page, including the
// navigation model for the signed-in user. Anonymous visitors get the
// default (student-shaped) navigation with no role-gated links.
func NewBaseVM(r *http.Request, title, backDefault string) BaseVM {
	role, name, _, signedIn := authz.UserCtx(r)
	currentPath := httpnav.CurrentPath(r)

	in := nav.Input{CurrentPath: currentPath}
	if user, ok := auth.CurrentUser(r); ok {
		in.RawRoles = user.Roles
		if len(in.RawRoles) == 0 && user.Role != "" {
			in.RawRoles = []string{user.Role}
		}
		in.PrimaryRole = user.Role
		in.AwardTier = user.AwardTier
	}

	return BaseVM{
		SiteName:    models.DefaultSiteName,
		IsLoggedIn:  signedIn,
		Role:        role,
		UserName:    name,
		Nav:         nav.Resolve(in),
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: currentPath,
		CSRFToken:   csrf.Token(r),
	}
}

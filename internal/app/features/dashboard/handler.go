// internal/app/features/dashboard/handler.go
package dashboard

import (
	"net/http"
	"strings"

	"github.com/dalemusser/chapterhub/internal/app/policy/featuregate"
	"github.com/dalemusser/chapterhub/internal/app/policy/readiness"
	"github.com/dalemusser/chapterhub/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB        *mongo.Database
	Log       *zap.Logger
	Readiness *readiness.Engine
	Gates     *featuregate.Engine
}

func NewHandler(db *mongo.Database, rdy *readiness.Engine, gates *featuregate.Engine, logger *zap.Logger) *Handler {
	return &Handler{
		DB:        db,
		Log:       logger,
		Readiness: rdy,
		Gates:     gates,
	}
}

// ServeDashboard dispatches to the view for the user's primary role.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	role, _, _, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	switch strings.ToLower(strings.TrimSpace(role)) {
	case string(authz.RoleAdmin), string(authz.RoleStaff):
		h.ServeAdmin(w, r)
	case string(authz.RoleChapterLead):
		h.ServeChapterLead(w, r)
	case string(authz.RoleInstructor):
		h.ServeInstructor(w, r)
	case string(authz.RoleMentor), string(authz.RoleParent), string(authz.RoleStudent):
		h.ServeMember(w, r)
	default:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// internal/app/features/dashboard/member.go
package dashboard

import (
	"context"
	"net/http"

	"github.com/dalemusser/chapterhub/internal/app/policy/featuregate"
	"github.com/dalemusser/chapterhub/internal/app/system/authz"
	"github.com/dalemusser/chapterhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type memberData struct {
	baseDashboardData

	QuestsEnabled      bool
	ReflectionsEnabled bool
	PassionsEnabled    bool
	MentorshipEnabled  bool
}

// ServeMember renders the dashboard for students, parents, and mentors.
// Sections are shown or hidden per the feature gates; a gate resolution
// error is treated as enabled, matching the read-path policy.
func (h *Handler) ServeMember(w http.ResponseWriter, r *http.Request) {
	base := viewdata.NewBaseVM(r, "Dashboard", "/")

	_, _, userID, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), dashboardTimeout)
	defer cancel()

	uc := featuregate.UserContext{UserID: userID}
	if chapterID := authz.UserChapterID(r); !chapterID.IsZero() {
		uc.ChapterID = &chapterID
	}
	uc.Roles = authz.UserRoles(r)

	data := memberData{
		baseDashboardData:  baseDashboardData{BaseVM: base},
		QuestsEnabled:      h.gateOpen(ctx, featuregate.KeyQuestBoard, uc),
		ReflectionsEnabled: h.gateOpen(ctx, featuregate.KeyReflections, uc),
		PassionsEnabled:    h.gateOpen(ctx, featuregate.KeyPassionWorld, uc),
		MentorshipEnabled:  h.gateOpen(ctx, featuregate.KeyMentorMatching, uc),
	}

	h.Log.Debug("member dashboard served", zap.String("user", base.UserName))

	templates.Render(w, r, "member_dashboard", data)
}

func (h *Handler) gateOpen(ctx context.Context, key string, uc featuregate.UserContext) bool {
	enabled, err := h.Gates.IsEnabledForUser(ctx, key, uc)
	if err != nil {
		h.Log.Warn("member dashboard: gate check", zap.String("key", key), zap.Error(err))
		return true
	}
	return enabled
}

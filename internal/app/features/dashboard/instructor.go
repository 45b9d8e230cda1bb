// internal/app/features/dashboard/instructor.go
package dashboard

import (
	"context"
	"net/http"

	"github.com/dalemusser/chapterhub/internal/app/policy/readiness"
	"github.com/dalemusser/chapterhub/internal/app/system/authz"
	"github.com/dalemusser/chapterhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type instructorData struct {
	baseDashboardData

	Readiness    readiness.Readiness
	ReadinessErr bool
}

func (h *Handler) ServeInstructor(w http.ResponseWriter, r *http.Request) {
	base := viewdata.NewBaseVM(r, "Instructor Dashboard", "/")

	_, _, userID, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), dashboardTimeout)
	defer cancel()

	data := instructorData{
		baseDashboardData: baseDashboardData{BaseVM: base},
	}

	rdy, err := h.Readiness.InstructorReadiness(ctx, userID)
	if err != nil {
		h.Log.Error("instructor dashboard: readiness", zap.String("user_id", userID.Hex()), zap.Error(err))
		data.ReadinessErr = true
	} else {
		data.Readiness = rdy
	}

	templates.Render(w, r, "instructor_dashboard", data)
}

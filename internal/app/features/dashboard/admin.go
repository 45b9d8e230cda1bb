// internal/app/features/dashboard/admin.go
package dashboard

import (
	"context"
	"net/http"

	metricsstore "github.com/dalemusser/chapterhub/internal/app/store/metrics"
	"github.com/dalemusser/chapterhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type adminData struct {
	baseDashboardData

	ChaptersCount    int64
	InstructorsCount int64
	StudentsCount    int64
	OfferingsCount   int64
	PublishedCount   int64
	GateRulesCount   int64
}

func (h *Handler) ServeAdmin(w http.ResponseWriter, r *http.Request) {
	base := viewdata.NewBaseVM(r, "Admin Dashboard", "/")

	ctx, cancel := context.WithTimeout(r.Context(), dashboardTimeout)
	defer cancel()

	counts := metricsstore.FetchDashboardCounts(ctx, h.DB)

	data := adminData{
		baseDashboardData: baseDashboardData{BaseVM: base},
		ChaptersCount:     counts.Chapters,
		InstructorsCount:  counts.Instructors,
		StudentsCount:     counts.Students,
		OfferingsCount:    counts.Offerings,
		PublishedCount:    counts.Published,
		GateRulesCount:    counts.GateRules,
	}

	h.Log.Debug("admin dashboard served", zap.String("user", base.UserName))

	templates.Render(w, r, "admin_dashboard", data)
}

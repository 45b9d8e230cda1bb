// internal/app/features/dashboard/lead.go
package dashboard

import (
	"context"
	"net/http"

	metricsstore "github.com/dalemusser/chapterhub/internal/app/store/metrics"
	"github.com/dalemusser/chapterhub/internal/app/system/authz"
	"github.com/dalemusser/chapterhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type leadData struct {
	baseDashboardData

	InstructorsCount int64
	StudentsCount    int64
	OfferingsCount   int64
	PublishedCount   int64
}

func (h *Handler) ServeChapterLead(w http.ResponseWriter, r *http.Request) {
	base := viewdata.NewBaseVM(r, "Chapter Dashboard", "/")

	ctx, cancel := context.WithTimeout(r.Context(), dashboardTimeout)
	defer cancel()

	var counts metricsstore.Counts
	if chapterID := authz.UserChapterID(r); !chapterID.IsZero() {
		counts = metricsstore.FetchChapterCounts(ctx, h.DB, chapterID)
	}

	data := leadData{
		baseDashboardData: baseDashboardData{BaseVM: base},
		InstructorsCount:  counts.Instructors,
		StudentsCount:     counts.Students,
		OfferingsCount:    counts.Offerings,
		PublishedCount:    counts.Published,
	}

	h.Log.Debug("chapter lead dashboard served", zap.String("user", base.UserName))

	templates.Render(w, r, "lead_dashboard", data)
}

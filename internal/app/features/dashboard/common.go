// internal/app/features/dashboard/common.go
package dashboard

import (
	"time"

	"github.com/dalemusser/chapterhub/internal/app/system/viewdata"
)

const dashboardTimeout = 10 * time.Second

// baseDashboardData contains fields common to all dashboard views.
type baseDashboardData struct {
	viewdata.BaseVM
}

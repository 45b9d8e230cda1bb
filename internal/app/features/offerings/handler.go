// internal/app/features/offerings/handler.go
package offerings

import (
	"context"
	"net/http"

	"github.com/dalemusser/chapterhub/internal/app/policy/readiness"
	templatestore "github.com/dalemusser/chapterhub/internal/app/store/classtemplates"
	offeringstore "github.com/dalemusser/chapterhub/internal/app/store/offerings"
	"github.com/dalemusser/chapterhub/internal/app/system/gates"
	"github.com/dalemusser/chapterhub/internal/app/system/pagecache"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"github.com/dalemusser/chapterhub/internal/app/system/viewdata"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB        *mongo.Database
	Log       *zap.Logger
	Readiness *readiness.Engine
	Offerings *offeringstore.Store
	Templates *templatestore.Store
	Cache     *pagecache.Cache
}

func NewHandler(db *mongo.Database, rdy *readiness.Engine, cache *pagecache.Cache, logger *zap.Logger) *Handler {
	return &Handler{
		DB:        db,
		Log:       logger,
		Readiness: rdy,
		Offerings: offeringstore.New(db),
		Templates: templatestore.New(db),
		Cache:     cache,
	}
}

type listData struct {
	viewdata.BaseVM
	Offerings []models.ClassOffering
	Flash     string
	Error     string
}

// ServeList handles GET /offerings: the instructor's own offering list,
// newest first.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireInstructor(w, r, "Only instructors can manage class offerings.", "/dashboard")
	if !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	offerings, err := h.Offerings.ListForInstructor(ctx, res.UserID)
	if err != nil {
		h.Log.Error("offerings: list", zap.String("instructor_id", res.UserID.Hex()), zap.Error(err))
		http.Error(w, "unable to load offerings", http.StatusInternalServerError)
		return
	}

	base := viewdata.NewBaseVM(r, "My Offerings", "/dashboard")
	templates.Render(w, r, "offerings_list", listData{
		BaseVM:    base,
		Offerings: offerings,
		Flash:     r.URL.Query().Get("flash"),
		Error:     r.URL.Query().Get("error"),
	})
}

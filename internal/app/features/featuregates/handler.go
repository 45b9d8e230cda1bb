// internal/app/features/featuregates/handler.go
package featuregates

import (
	"context"
	"net/http"

	"github.com/dalemusser/chapterhub/internal/app/policy/featuregate"
	chapterstore "github.com/dalemusser/chapterhub/internal/app/store/chapters"
	rulestore "github.com/dalemusser/chapterhub/internal/app/store/featuregates"
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
	DB       *mongo.Database
	Log      *zap.Logger
	Rules    *rulestore.Store
	Chapters *chapterstore.Store
	Cache    *pagecache.Cache
}

func NewHandler(db *mongo.Database, cache *pagecache.Cache, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		Rules:    rulestore.New(db),
		Chapters: chapterstore.New(db),
		Cache:    cache,
	}
}

// admin builds the mutation entry points bound to the caller on r.
func (h *Handler) admin(r *http.Request) *featuregate.Admin {
	return &featuregate.Admin{
		Rules: h.Rules,
		Authz: requestAuthorizer{r: r},
		Pages: h.Cache,
		Log:   h.Log,
	}
}

type listData struct {
	viewdata.BaseVM
	Rules    []models.FeatureGateRule
	Chapters []models.Chapter
	Keys     []string
	Flash    string
	Error    string
}

// ServeList handles GET /featuregates: every rule plus the forms to add
// global and chapter rules.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAdmin(w, r, "Only admins manage feature gates.", "/dashboard")
	if !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rules, err := h.Rules.ListAll(ctx)
	if err != nil {
		h.Log.Error("featuregates: list rules", zap.Error(err))
		http.Error(w, "unable to load feature gate rules", http.StatusInternalServerError)
		return
	}

	chapters, err := h.Chapters.ListActive(ctx)
	if err != nil {
		h.Log.Error("featuregates: list chapters", zap.Error(err))
		http.Error(w, "unable to load chapters", http.StatusInternalServerError)
		return
	}

	templates.Render(w, r, "featuregates_list", listData{
		BaseVM:   viewdata.NewBaseVM(r, "Feature Gates", "/dashboard"),
		Rules:    rules,
		Chapters: chapters,
		Keys:     featuregate.Keys,
		Flash:    r.URL.Query().Get("flash"),
		Error:    r.URL.Query().Get("error"),
	})
}

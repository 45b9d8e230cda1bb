// internal/app/features/training/admin.go
package training

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dalemusser/chapterhub/internal/app/system/gates"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"github.com/dalemusser/chapterhub/internal/app/system/viewdata"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type adminData struct {
	viewdata.BaseVM
	Modules []models.TrainingModule
	Flash   string
	Error   string
}

// ServeAdminModules handles GET /training/modules: the catalog management
// page for admins.
func (h *Handler) ServeAdminModules(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAdmin(w, r, "Only admins manage the training catalog.", "/training")
	if !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	modules, err := h.Modules.List(ctx)
	if err != nil {
		h.Log.Error("training: list modules", zap.Error(err))
		http.Error(w, "unable to load training modules", http.StatusInternalServerError)
		return
	}

	templates.Render(w, r, "training_admin", adminData{
		BaseVM:  viewdata.NewBaseVM(r, "Training Catalog", "/dashboard"),
		Modules: modules,
		Flash:   r.URL.Query().Get("flash"),
		Error:   r.URL.Query().Get("error"),
	})
}

// HandleCreateModule handles POST /training/modules.
func (h *Handler) HandleCreateModule(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAdmin(w, r, "Only admins manage the training catalog.", "/training")
	if !res.OK {
		return
	}

	if err := r.ParseForm(); err != nil {
		redirectAdmin(w, r, "", "Invalid form submission.")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		redirectAdmin(w, r, "", "A module title is required.")
		return
	}

	sortKey, _ := strconv.Atoi(r.FormValue("sort_key"))
	m := models.TrainingModule{
		Title:    title,
		Summary:  strings.TrimSpace(r.FormValue("summary")),
		Required: r.FormValue("required") == "on",
		SortKey:  sortKey,
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Modules.Create(ctx, m)
	if err != nil {
		h.Log.Error("training: create module", zap.String("title", title), zap.Error(err))
		redirectAdmin(w, r, "", "Unable to save the module.")
		return
	}

	h.Log.Info("training module created",
		zap.String("module_id", created.ID.Hex()),
		zap.String("actor_id", res.UserID.Hex()))

	redirectAdmin(w, r, "Module added.", "")
}

// HandleSetRequired handles POST /training/modules/{id}/required, flipping
// whether a module counts toward publish readiness.
func (h *Handler) HandleSetRequired(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAdmin(w, r, "Only admins manage the training catalog.", "/training")
	if !res.OK {
		return
	}

	moduleID, err := primitive.ObjectIDFromHex(r.FormValue("module_id"))
	if err != nil {
		redirectAdmin(w, r, "", "Unknown module.")
		return
	}
	required := r.FormValue("required") == "true"

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Modules.SetRequired(ctx, moduleID, required); err != nil {
		h.Log.Error("training: set required", zap.String("module_id", moduleID.Hex()), zap.Error(err))
		redirectAdmin(w, r, "", "Unable to update the module.")
		return
	}

	h.Log.Info("training module requirement changed",
		zap.String("module_id", moduleID.Hex()),
		zap.Bool("required", required),
		zap.String("actor_id", res.UserID.Hex()))

	redirectAdmin(w, r, "Module updated.", "")
}

// HandleSetStatus handles POST /training/status: an instructor recording
// progress on their own assignment.
func (h *Handler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireInstructor(w, r, "Training is for instructors.", "/dashboard")
	if !res.OK {
		return
	}

	moduleID, err := primitive.ObjectIDFromHex(r.FormValue("module_id"))
	if err != nil {
		http.Redirect(w, r, "/training?error="+url.QueryEscape("Unknown module."), http.StatusSeeOther)
		return
	}

	status := r.FormValue("status")
	switch status {
	case models.TrainingStatusAssigned, models.TrainingStatusInProgress, models.TrainingStatusComplete:
	default:
		http.Redirect(w, r, "/training?error="+url.QueryEscape("Unknown status."), http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Assignments.Assign(ctx, res.UserID, moduleID); err != nil {
		h.Log.Error("training: assign", zap.String("module_id", moduleID.Hex()), zap.Error(err))
		http.Redirect(w, r, "/training?error="+url.QueryEscape("Unable to record progress."), http.StatusSeeOther)
		return
	}
	if err := h.Assignments.SetStatus(ctx, res.UserID, moduleID, status); err != nil {
		h.Log.Error("training: set status", zap.String("module_id", moduleID.Hex()), zap.Error(err))
		http.Redirect(w, r, "/training?error="+url.QueryEscape("Unable to record progress."), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/training?flash="+url.QueryEscape("Progress saved."), http.StatusSeeOther)
}

func redirectAdmin(w http.ResponseWriter, r *http.Request, flash, errMsg string) {
	dest := "/training/modules"
	if flash != "" {
		dest += "?flash=" + url.QueryEscape(flash)
	} else if errMsg != "" {
		dest += "?error=" + url.QueryEscape(errMsg)
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

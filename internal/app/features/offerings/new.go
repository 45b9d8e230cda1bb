// internal/app/features/offerings/new.go
package offerings

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/chapterhub/internal/app/system/authz"
	"github.com/dalemusser/chapterhub/internal/app/system/gates"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"github.com/dalemusser/chapterhub/internal/app/system/viewdata"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type newFormData struct {
	viewdata.BaseVM
	Templates   []models.ClassTemplate
	Error       string
	Title       string
	Description string
	TemplateID  string
	StartsAt    string
}

// ServeNew handles GET /offerings/new.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireInstructor(w, r, "Only instructors can create class offerings.", "/dashboard")
	if !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	tmpls, err := h.Templates.ListActive(ctx)
	if err != nil {
		h.Log.Error("offerings: list templates", zap.Error(err))
		http.Error(w, "unable to load class templates", http.StatusInternalServerError)
		return
	}

	base := viewdata.NewBaseVM(r, "New Offering", "/offerings")
	templates.Render(w, r, "offerings_new", newFormData{
		BaseVM:    base,
		Templates: tmpls,
	})
}

// HandleCreate handles POST /offerings/new, saving a draft.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireInstructor(w, r, "Only instructors can create class offerings.", "/dashboard")
	if !res.OK {
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderNewWithError(w, r, "Invalid form submission.", r.PostForm.Get("title"), r.PostForm.Get("description"), "", "")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	description := r.FormValue("description")
	templateIDHex := r.FormValue("template_id")
	startsAtRaw := strings.TrimSpace(r.FormValue("starts_at"))

	if title == "" {
		h.renderNewWithError(w, r, "A title is required.", title, description, templateIDHex, startsAtRaw)
		return
	}

	templateID, err := primitive.ObjectIDFromHex(templateIDHex)
	if err != nil {
		h.renderNewWithError(w, r, "Pick a class template.", title, description, templateIDHex, startsAtRaw)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	tmpl, err := h.Templates.TemplateByID(ctx, templateID)
	if err != nil {
		h.Log.Error("offerings: load template", zap.String("template_id", templateIDHex), zap.Error(err))
		http.Error(w, "unable to load class template", http.StatusInternalServerError)
		return
	}
	if tmpl == nil {
		h.renderNewWithError(w, r, "That class template no longer exists.", title, description, templateIDHex, startsAtRaw)
		return
	}

	off := models.ClassOffering{
		TemplateID:   templateID,
		InstructorID: res.UserID,
		Title:        title,
		Description:  description,
	}
	if chapterID := authz.UserChapterID(r); !chapterID.IsZero() {
		off.ChapterID = &chapterID
	}
	if startsAtRaw != "" {
		if ts, err := time.Parse("2006-01-02T15:04", startsAtRaw); err == nil {
			off.StartsAt = &ts
		} else {
			h.renderNewWithError(w, r, "Start time must be a valid date and time.", title, description, templateIDHex, startsAtRaw)
			return
		}
	}

	created, err := h.Offerings.CreateDraft(ctx, off)
	if err != nil {
		h.Log.Error("offerings: create draft", zap.String("instructor_id", res.UserID.Hex()), zap.Error(err))
		http.Error(w, "unable to save the offering", http.StatusInternalServerError)
		return
	}

	h.Log.Info("offering draft created",
		zap.String("offering_id", created.ID.Hex()),
		zap.String("instructor_id", res.UserID.Hex()))

	http.Redirect(w, r, "/offerings?flash=Draft+saved", http.StatusSeeOther)
}

func (h *Handler) renderNewWithError(w http.ResponseWriter, r *http.Request, msg, title, description, templateID, startsAt string) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	tmpls, err := h.Templates.ListActive(ctx)
	if err != nil {
		h.Log.Error("offerings: list templates", zap.Error(err))
	}

	base := viewdata.NewBaseVM(r, "New Offering", "/offerings")
	w.WriteHeader(http.StatusUnprocessableEntity)
	templates.Render(w, r, "offerings_new", newFormData{
		BaseVM:      base,
		Templates:   tmpls,
		Error:       msg,
		Title:       title,
		Description: description,
		TemplateID:  templateID,
		StartsAt:    startsAt,
	})
}

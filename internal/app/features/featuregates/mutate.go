// internal/app/features/featuregates/mutate.go
package featuregates

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	uierrors "github.com/dalemusser/chapterhub/internal/app/features/errors"
	"github.com/dalemusser/chapterhub/internal/app/policy/featuregate"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleSetRule handles POST /featuregates/rules: upsert the global or
// chapter rule for one feature key.
func (h *Handler) HandleSetRule(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectList(w, r, "", "Invalid form submission.")
		return
	}

	key := strings.TrimSpace(r.FormValue("key"))
	scope := r.FormValue("scope")
	enabled := r.FormValue("enabled") == "true"

	change := featuregate.RuleChange{Enabled: enabled}
	if v := strings.TrimSpace(r.FormValue("starts_at")); v != "" {
		ts, err := time.Parse("2006-01-02T15:04", v)
		if err != nil {
			h.redirectList(w, r, "", "Start must be a valid date and time.")
			return
		}
		change.StartsAt = &ts
	}
	if v := strings.TrimSpace(r.FormValue("ends_at")); v != "" {
		ts, err := time.Parse("2006-01-02T15:04", v)
		if err != nil {
			h.redirectList(w, r, "", "End must be a valid date and time.")
			return
		}
		change.EndsAt = &ts
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	admin := h.admin(r)
	var err error
	switch scope {
	case "global":
		err = admin.SetGlobalRule(ctx, key, change)
	case "chapter":
		var chapterID primitive.ObjectID
		chapterID, err = primitive.ObjectIDFromHex(r.FormValue("chapter_id"))
		if err != nil {
			h.redirectList(w, r, "", "Pick a chapter for a chapter rule.")
			return
		}
		err = admin.SetChapterRule(ctx, key, chapterID, change)
	default:
		h.redirectList(w, r, "", "Scope must be global or chapter.")
		return
	}

	if err != nil {
		h.renderMutationError(w, r, key, err)
		return
	}

	h.redirectList(w, r, "Rule saved.", "")
}

// HandleDeleteRule handles POST /featuregates/rules/{id}/delete.
func (h *Handler) HandleDeleteRule(w http.ResponseWriter, r *http.Request) {
	ruleID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.redirectList(w, r, "", "Unknown rule.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.admin(r).DeleteRule(ctx, ruleID); err != nil {
		h.renderMutationError(w, r, "", err)
		return
	}

	h.redirectList(w, r, "Rule deleted.", "")
}

func (h *Handler) renderMutationError(w http.ResponseWriter, r *http.Request, key string, err error) {
	var forbidden *featuregate.ForbiddenError
	if errors.As(err, &forbidden) {
		uierrors.RenderForbidden(w, r, "Only admins manage feature gates.", "/dashboard")
		return
	}

	var setup *featuregate.SetupRequiredError
	if errors.As(err, &setup) {
		uierrors.RenderSetupRequired(w, r, setup.Step)
		return
	}

	var unknown *featuregate.UnknownKeyError
	if errors.As(err, &unknown) {
		h.redirectList(w, r, "", "Unknown feature key.")
		return
	}

	h.Log.Error("featuregates: mutate rule", zap.String("feature_key", key), zap.Error(err))
	http.Error(w, "unable to save the rule", http.StatusInternalServerError)
}

func (h *Handler) redirectList(w http.ResponseWriter, r *http.Request, flash, errMsg string) {
	dest := "/featuregates"
	if flash != "" {
		dest += "?flash=" + url.QueryEscape(flash)
	} else if errMsg != "" {
		dest += "?error=" + url.QueryEscape(errMsg)
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

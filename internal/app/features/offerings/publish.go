// internal/app/features/offerings/publish.go
package offerings

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	uierrors "github.com/dalemusser/chapterhub/internal/app/features/errors"
	"github.com/dalemusser/chapterhub/internal/app/policy/readiness"
	offeringstore "github.com/dalemusser/chapterhub/internal/app/store/offerings"
	"github.com/dalemusser/chapterhub/internal/app/system/gates"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"github.com/dalemusser/chapterhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Paths whose cached renderings go stale when an offering goes live.
var publishInvalidates = []string{"/", "/classes", "/offerings"}

type blockedData struct {
	viewdata.BaseVM
	Message string
	Missing []readiness.Requirement
}

// HandlePublish handles POST /offerings/{id}/publish. The offering must be
// a draft owned by the caller, and the caller must clear the publish gate.
func (h *Handler) HandlePublish(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireInstructor(w, r, "Only instructors can publish class offerings.", "/dashboard")
	if !res.OK {
		return
	}

	offeringID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderNotFound(w, r, "That offering doesn't exist.", "/offerings")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	offering, err := h.Offerings.OfferingByID(ctx, offeringID)
	if err != nil {
		h.Log.Error("offerings: load for publish", zap.String("offering_id", offeringID.Hex()), zap.Error(err))
		http.Error(w, "unable to load the offering", http.StatusInternalServerError)
		return
	}
	if offering == nil {
		uierrors.RenderNotFound(w, r, "That offering doesn't exist.", "/offerings")
		return
	}
	if offering.InstructorID != res.UserID {
		uierrors.RenderForbidden(w, r, "You can only publish your own offerings.", "/offerings")
		return
	}

	if err := h.Readiness.AssertCanPublishOffering(ctx, res.UserID, offering.TemplateID, offering.ID); err != nil {
		h.renderPublishError(w, r, offeringID, err)
		return
	}

	if err := h.Offerings.MarkPublished(ctx, offeringID); err != nil {
		if errors.Is(err, offeringstore.ErrNotDraft) {
			http.Redirect(w, r, "/offerings?error="+url.QueryEscape("Only drafts can be published."), http.StatusSeeOther)
			return
		}
		h.Log.Error("offerings: mark published", zap.String("offering_id", offeringID.Hex()), zap.Error(err))
		http.Error(w, "unable to publish the offering", http.StatusInternalServerError)
		return
	}

	if h.Cache != nil {
		h.Cache.Invalidate(publishInvalidates...)
	}

	h.Log.Info("offering published",
		zap.String("offering_id", offeringID.Hex()),
		zap.String("instructor_id", res.UserID.Hex()))

	http.Redirect(w, r, "/offerings?flash="+url.QueryEscape("Your class is live!"), http.StatusSeeOther)
}

func (h *Handler) renderPublishError(w http.ResponseWriter, r *http.Request, offeringID primitive.ObjectID, err error) {
	var blocked *readiness.PublishBlockedError
	if errors.As(err, &blocked) {
		base := viewdata.NewBaseVM(r, "Publishing Blocked", "/offerings")
		w.WriteHeader(http.StatusUnprocessableEntity)
		templates.Render(w, r, "offerings_blocked", blockedData{
			BaseVM:  base,
			Message: blocked.Message,
			Missing: blocked.Missing,
		})
		return
	}

	var notFound *readiness.NotFoundError
	if errors.As(err, &notFound) {
		uierrors.RenderNotFound(w, r, "The class template behind this offering is gone.", "/offerings")
		return
	}

	h.Log.Error("offerings: publish gate", zap.String("offering_id", offeringID.Hex()), zap.Error(err))
	http.Error(w, "unable to check publish eligibility", http.StatusInternalServerError)
}

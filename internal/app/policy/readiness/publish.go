// internal/app/policy/readiness/publish.go
package readiness

import (
	"context"
	"fmt"

	"github.com/dalemusser/chapterhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotFoundError reports a referenced record that does not exist. Publish
// eligibility is a hard gate, so a missing template fails fast instead of
// failing open.
type NotFoundError struct {
	Kind string
	ID   primitive.ObjectID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID.Hex())
}

// Publish-block reasons.
const (
	ReasonNotReady         = "not_ready"
	ReasonLevelNotApproved = "level_not_approved"
)

// PublishBlockedError explains why an offering may not be published.
// Reason distinguishes "complete training/interview" from "level not
// approved" so callers can render the right guidance.
type PublishBlockedError struct {
	Reason  string
	Message string
	Missing []Requirement
}

func (e *PublishBlockedError) Error() string { return e.Message }

// AssertCanPublishOffering verifies the instructor may publish an offering
// of the given template. It is read-only; callers abort the publish
// operation when it returns an error.
//
// offeringID is optional (NilObjectID when publishing a brand-new
// offering). Existing offerings with the grandfathered exemption bypass
// the gate entirely.
func (e *Engine) AssertCanPublishOffering(ctx context.Context, instructorID, templateID, offeringID primitive.ObjectID) error {
	if !e.Toggles.PublishGateEnabled() {
		return nil
	}

	if offeringID != primitive.NilObjectID {
		offering, err := e.Offerings.OfferingByID(ctx, offeringID)
		if err != nil {
			return err
		}
		if offering != nil && offering.GrandfatheredExemption {
			return nil
		}
	}

	tmpl, err := e.Templates.TemplateByID(ctx, templateID)
	if err != nil {
		return err
	}
	if tmpl == nil {
		return &NotFoundError{Kind: "class template", ID: templateID}
	}

	rd, err := e.InstructorReadiness(ctx, instructorID)
	if err != nil {
		return err
	}
	if !rd.CanPublishFirstOffering {
		return &PublishBlockedError{
			Reason:  ReasonNotReady,
			Message: "Complete your instructor training and interview before publishing your first class.",
			Missing: rd.MissingRequirements,
		}
	}

	// Only levels above the entry level need an explicit grant; 101 is
	// always permitted once base readiness passes.
	if tmpl.Level.Rank() > models.Level101.Rank() {
		ok, err := e.CanTeachLevel(ctx, instructorID, tmpl.Level)
		if err != nil {
			return err
		}
		if !ok {
			return &PublishBlockedError{
				Reason:  ReasonLevelNotApproved,
				Message: fmt.Sprintf("You are not yet approved to teach level %s classes.", tmpl.Level),
			}
		}
	}

	return nil
}

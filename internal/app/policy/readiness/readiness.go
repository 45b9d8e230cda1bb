// Package readiness decides whether an instructor may publish their first
// class offering.
//
// The gate aggregates three independent facts: completion of the required
// training modules, the interview gate outcome, and (for offerings above the
// entry level) an approved teaching level. It applies only to an
// instructor's *first* publish; once any non-exempt offering has gone live,
// the gate never blocks retroactively.
package readiness

import (
	"context"

	"github.com/dalemusser/chapterhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Data sources the engine reads from. The mongo stores under
// internal/app/store satisfy these; tests use in-memory fakes.
type (
	// ModuleSource lists the global training catalog's required modules.
	ModuleSource interface {
		RequiredModules(ctx context.Context) ([]models.TrainingModule, error)
	}

	// AssignmentSource lists one user's training assignments.
	AssignmentSource interface {
		AssignmentsForUser(ctx context.Context, userID primitive.ObjectID) ([]models.TrainingAssignment, error)
	}

	// InterviewSource returns the instructor's interview gate record,
	// or nil when none exists.
	InterviewSource interface {
		GateForInstructor(ctx context.Context, instructorID primitive.ObjectID) (*models.InterviewGate, error)
	}

	// OfferingSource lists an instructor's non-draft offerings and loads
	// single offerings by ID (nil when not found).
	OfferingSource interface {
		NonDraftForInstructor(ctx context.Context, instructorID primitive.ObjectID) ([]models.ClassOffering, error)
		OfferingByID(ctx context.Context, id primitive.ObjectID) (*models.ClassOffering, error)
	}

	// TemplateSource loads a class template by ID (nil when not found).
	TemplateSource interface {
		TemplateByID(ctx context.Context, id primitive.ObjectID) (*models.ClassTemplate, error)
	}
)

// Engine evaluates instructor publish readiness. All fields are required
// except Log, which defaults to a no-op logger.
type Engine struct {
	Modules     ModuleSource
	Assignments AssignmentSource
	Interviews  InterviewSource
	Offerings   OfferingSource
	Templates   TemplateSource

	// Explicit teaching permissions are consulted before the deprecated
	// legacy approvals; either source suffices to grant a level.
	Explicit GrantSource
	Legacy   GrantSource

	Toggles Toggles
	Log     *zap.Logger
}

// Requirement codes surfaced in Readiness.MissingRequirements.
const (
	CodeTrainingIncomplete = "TRAINING_INCOMPLETE"
	CodeInterviewRequired  = "INTERVIEW_REQUIRED"
)

// Requirement is one unmet precondition, with a user-facing action.
type Requirement struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
	Action string `json:"action"`
}

// ReadyToPublishAction is NextAction when nothing is missing.
const ReadyToPublishAction = "You're ready to publish your first class."

// Readiness is the derived publish-eligibility state for one instructor.
// It is ephemeral: computed per request, never persisted.
type Readiness struct {
	TrainingComplete        bool          `json:"training_complete"`
	InterviewPassed         bool          `json:"interview_passed"`
	IsFirstPublish          bool          `json:"is_first_publish"`
	CanPublishFirstOffering bool          `json:"can_publish_first_offering"`
	RequiredModuleCount     int           `json:"required_module_count"`
	CompletedModuleCount    int           `json:"completed_module_count"`
	TeachingPermissionLevels []models.TeachLevel `json:"teaching_permission_levels"`
	ApprovedLevels           []models.TeachLevel `json:"approved_levels"` // legacy source
	MissingRequirements      []Requirement       `json:"missing_requirements"`
	NextAction               string              `json:"next_action"`
}

// InstructorReadiness computes the full readiness snapshot for an
// instructor. An unknown instructor ID is not an error; it simply yields
// "no data" results (no assignments, no gate record, no offerings).
func (e *Engine) InstructorReadiness(ctx context.Context, instructorID primitive.ObjectID) (Readiness, error) {
	gateEnabled := e.Toggles.PublishGateEnabled()
	interviewEnforced := e.Toggles.InterviewGateEnforced()

	var (
		required    []models.TrainingModule
		assignments []models.TrainingAssignment
		gate        *models.InterviewGate
		explicit    []models.TeachLevel
		legacy      []models.TeachLevel
		offerings   []models.ClassOffering
	)

	// The six reads are independent, so they run concurrently.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		required, err = e.Modules.RequiredModules(gctx)
		return err
	})
	g.Go(func() (err error) {
		assignments, err = e.Assignments.AssignmentsForUser(gctx, instructorID)
		return err
	})
	g.Go(func() (err error) {
		gate, err = e.Interviews.GateForInstructor(gctx, instructorID)
		return err
	})
	g.Go(func() (err error) {
		explicit, err = e.Explicit.Levels(gctx, instructorID)
		return err
	})
	g.Go(func() (err error) {
		legacy, err = e.Legacy.Levels(gctx, instructorID)
		return err
	})
	g.Go(func() (err error) {
		offerings, err = e.Offerings.NonDraftForInstructor(gctx, instructorID)
		return err
	})
	if err := g.Wait(); err != nil {
		return Readiness{}, err
	}

	requiredSet := make(map[primitive.ObjectID]struct{}, len(required))
	for _, m := range required {
		requiredSet[m.ID] = struct{}{}
	}
	completed := 0
	for _, a := range assignments {
		if a.Status != models.TrainingStatusComplete {
			continue
		}
		if _, ok := requiredSet[a.ModuleID]; ok {
			completed++
		}
	}
	trainingComplete := len(required) == 0 || completed >= len(required)

	interviewPassed := !interviewEnforced
	if interviewEnforced && gate != nil {
		switch gate.Status {
		case models.InterviewStatusPassed, models.InterviewStatusWaived:
			interviewPassed = true
		}
	}

	// Grandfathered offerings are legacy data; they do not count as a
	// publish for gating purposes, so a never-vetted instructor whose
	// only offerings are exempt still faces the first-publish gate.
	hasPublished := false
	for _, o := range offerings {
		if models.OfferingCountsAsPublished(o.Status) && !o.GrandfatheredExemption {
			hasPublished = true
			break
		}
	}
	isFirstPublish := !hasPublished

	// The gate only blocks a first publish by an unready instructor.
	// Disabling it entirely, or having any published offering already,
	// bypasses the training/interview conditions.
	canPublish := !gateEnabled || !isFirstPublish || (trainingComplete && interviewPassed)

	rd := Readiness{
		TrainingComplete:         trainingComplete,
		InterviewPassed:          interviewPassed,
		IsFirstPublish:           isFirstPublish,
		CanPublishFirstOffering:  canPublish,
		RequiredModuleCount:      len(required),
		CompletedModuleCount:     completed,
		TeachingPermissionLevels: dedupeLevels(explicit),
		ApprovedLevels:           dedupeLevels(legacy),
	}

	// Ordered: training before interview, because NextAction surfaces the
	// first entry.
	if !trainingComplete {
		rd.MissingRequirements = append(rd.MissingRequirements, Requirement{
			Code:   CodeTrainingIncomplete,
			Detail: "Required training modules are not complete.",
			Action: "Finish your remaining instructor training modules.",
		})
	}
	if !interviewPassed {
		rd.MissingRequirements = append(rd.MissingRequirements, Requirement{
			Code:   CodeInterviewRequired,
			Detail: "The instructor interview has not been passed.",
			Action: "Schedule your instructor interview with your chapter lead.",
		})
	}
	if len(rd.MissingRequirements) > 0 {
		rd.NextAction = rd.MissingRequirements[0].Action
	} else {
		rd.NextAction = ReadyToPublishAction
	}

	if e.Log != nil {
		e.Log.Debug("instructor readiness evaluated",
			zap.String("instructor_id", instructorID.Hex()),
			zap.Bool("gate_enabled", gateEnabled),
			zap.Bool("training_complete", trainingComplete),
			zap.Bool("interview_passed", interviewPassed),
			zap.Bool("can_publish", canPublish))
	}

	return rd, nil
}

func dedupeLevels(levels []models.TeachLevel) []models.TeachLevel {
	seen := make(map[models.TeachLevel]struct{}, len(levels))
	out := make([]models.TeachLevel, 0, len(levels))
	for _, l := range levels {
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}

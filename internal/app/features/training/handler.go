// internal/app/features/training/handler.go
package training

import (
	"context"
	"net/http"

	trainingstore "github.com/dalemusser/chapterhub/internal/app/store/training"
	"github.com/dalemusser/chapterhub/internal/app/system/gates"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"github.com/dalemusser/chapterhub/internal/app/system/viewdata"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB          *mongo.Database
	Log         *zap.Logger
	Modules     *trainingstore.ModuleStore
	Assignments *trainingstore.AssignmentStore
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Log:         logger,
		Modules:     trainingstore.NewModules(db),
		Assignments: trainingstore.NewAssignments(db),
	}
}

// moduleProgress pairs a catalog module with the viewer's status on it.
type moduleProgress struct {
	Module models.TrainingModule
	Status string
	Done   bool
}

type progressData struct {
	viewdata.BaseVM
	Required  []moduleProgress
	Optional  []moduleProgress
	DoneCount int
	Total     int
	Flash     string
	Error     string
}

// ServeProgress handles GET /training: the signed-in instructor's progress
// through the training catalog.
func (h *Handler) ServeProgress(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireInstructor(w, r, "Training is for instructors.", "/dashboard")
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

	assignments, err := h.Assignments.AssignmentsForUser(ctx, res.UserID)
	if err != nil {
		h.Log.Error("training: list assignments", zap.String("user_id", res.UserID.Hex()), zap.Error(err))
		http.Error(w, "unable to load training progress", http.StatusInternalServerError)
		return
	}

	statusByModule := make(map[string]string, len(assignments))
	for _, a := range assignments {
		statusByModule[a.ModuleID.Hex()] = a.Status
	}

	data := progressData{
		BaseVM: viewdata.NewBaseVM(r, "Instructor Training", "/dashboard"),
		Flash:  r.URL.Query().Get("flash"),
		Error:  r.URL.Query().Get("error"),
	}
	for _, m := range modules {
		status, ok := statusByModule[m.ID.Hex()]
		if !ok {
			status = "not started"
		}
		mp := moduleProgress{
			Module: m,
			Status: status,
			Done:   status == models.TrainingStatusComplete,
		}
		if m.Required {
			data.Required = append(data.Required, mp)
			data.Total++
			if mp.Done {
				data.DoneCount++
			}
		} else {
			data.Optional = append(data.Optional, mp)
		}
	}

	templates.Render(w, r, "training_progress", data)
}

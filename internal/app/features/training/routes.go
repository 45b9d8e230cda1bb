// internal/app/features/training/routes.go
package training

import (
	"github.com/dalemusser/chapterhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServeProgress)
		pr.Post("/status", h.HandleSetStatus)
		pr.Get("/modules", h.ServeAdminModules)
		pr.Post("/modules", h.HandleCreateModule)
		pr.Post("/modules/required", h.HandleSetRequired)
	})

	return r
}

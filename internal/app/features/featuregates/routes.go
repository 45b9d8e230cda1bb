// internal/app/features/featuregates/routes.go
package featuregates

import (
	"github.com/dalemusser/chapterhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/", h.ServeList)
		pr.Post("/rules", h.HandleSetRule)
		pr.Post("/rules/{id}/delete", h.HandleDeleteRule)
	})

	return r
}

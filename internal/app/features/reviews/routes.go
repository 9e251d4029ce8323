// internal/app/features/reviews/routes.go
package reviews

import (
	"github.com/dalemusser/devcamper/internal/app/system/auth"
	"github.com/dalemusser/devcamper/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes returns the subrouter mounted at /reviews.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeReview)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(models.RoleUser, models.RoleAdmin))

		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}

// BootcampRoutes returns the subrouter mounted at /bootcamps/{bootcampId}/reviews.
func BootcampRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole(models.RoleUser, models.RoleAdmin))

		pr.Post("/", h.HandleCreate)
	})

	return r
}

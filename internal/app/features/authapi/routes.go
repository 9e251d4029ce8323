// internal/app/features/authapi/routes.go
package authapi

import (
	"github.com/dalemusser/devcamper/internal/app/system/auth"
	"github.com/dalemusser/devcamper/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// Routes mounts at /auth.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)
	r.With(sm.RequireSignedIn).Get("/me", h.ServeMe)
	if h.Forgot != nil {
		r.With(ratelimit.PerIP(h.Forgot)).Post("/forgotpassword", h.HandleForgotPassword)
	} else {
		r.Post("/forgotpassword", h.HandleForgotPassword)
	}
	r.Put("/resetpassword/{resettoken}", h.HandleResetPassword)
	return r
}

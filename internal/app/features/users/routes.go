// internal/app/features/users/routes.go
package users

import (
	"github.com/dalemusser/classhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the admin-only /users subrouter.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireRole("Admin access required", "admin"))
	r.Get("/", h.List)
	r.Patch("/{userID}", h.Patch)
	return r
}

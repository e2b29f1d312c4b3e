// internal/app/features/credits/routes.go
package credits

import (
	"github.com/dalemusser/classhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the /credits subrouter.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)

	r.Group(func(r chi.Router) {
		r.Use(sm.RequireRole("Admin access required", "admin"))
		r.Post("/adjust", h.Adjust)
	})
	return r
}

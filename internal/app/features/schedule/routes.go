// internal/app/features/schedule/routes.go
package schedule

import "github.com/go-chi/chi/v5"

// Routes returns the /schedule subrouter. The caller applies session
// middleware.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.List)
	return r
}

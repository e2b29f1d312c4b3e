// internal/app/features/videos/routes.go
package videos

import "github.com/go-chi/chi/v5"

// Routes returns the /videos subrouter. The caller applies session
// middleware.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.List)
	return r
}

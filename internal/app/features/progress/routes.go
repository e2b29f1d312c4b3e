// internal/app/features/progress/routes.go
package progress

import "github.com/go-chi/chi/v5"

// Routes returns the progress subrouter, mounted under
// /classes/{classID}/progress.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Upsert)
	r.Get("/", h.List)
	return r
}

// internal/app/features/assignments/routes.go
package assignments

import "github.com/go-chi/chi/v5"

// Routes returns the assignments subrouter, mounted under
// /classes/{classID}/assignments.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Delete("/{assignmentID}", h.Delete)
	return r
}

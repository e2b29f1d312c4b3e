// internal/app/features/notes/routes.go
package notes

import "github.com/go-chi/chi/v5"

// Routes returns the notes subrouter, mounted under
// /classes/{classID}/notes.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Delete("/{noteID}", h.Delete)
	return r
}

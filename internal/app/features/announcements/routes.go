// internal/app/features/announcements/routes.go
package announcements

import "github.com/go-chi/chi/v5"

// Routes returns the announcements subrouter, mounted under
// /classes/{classID}/announcements.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Delete("/{announcementID}", h.Delete)
	return r
}

// internal/app/features/classes/routes.go
package classes

import "github.com/go-chi/chi/v5"

// Subrouters are the per-class record surfaces mounted under
// /classes/{classID}/.
type Subrouters struct {
	Announcements chi.Router
	Assignments   chi.Router
	Notes         chi.Router
	Attendance    chi.Router
	Progress      chi.Router
}

// Routes returns the /classes subrouter. The caller applies session
// middleware; everything here assumes a signed-in user.
func Routes(h *Handler, sub Subrouters) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/", h.List)

	r.Route("/{classID}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Delete("/", h.Delete)
		r.Post("/meet", h.CreateMeet)
		r.Patch("/recording", h.SetRecording)

		r.Mount("/announcements", sub.Announcements)
		r.Mount("/assignments", sub.Assignments)
		r.Mount("/notes", sub.Notes)
		r.Mount("/attendance", sub.Attendance)
		r.Mount("/progress", sub.Progress)
	})
	return r
}

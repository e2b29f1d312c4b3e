// internal/app/features/attendance/routes.go
package attendance

import "github.com/go-chi/chi/v5"

// Routes returns the attendance subrouter, mounted under
// /classes/{classID}/attendance.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Upsert)
	r.Get("/", h.List)
	r.Delete("/{attendanceID}", h.Delete)
	return r
}

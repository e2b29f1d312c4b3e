// internal/app/features/authgoogle/routes.go
package authgoogle

import (
	"github.com/dalemusser/classhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the /google subrouter. Login requires a signed-in teacher;
// the callback arrives from Google without a session cookie and is
// authenticated by the stored state token instead.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Get("/callback", h.ServeCallback)

	r.Group(func(r chi.Router) {
		r.Use(sm.RequireSignedIn)
		r.Get("/login", h.ServeLogin)
	})
	return r
}

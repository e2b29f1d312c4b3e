// internal/app/features/authapi/routes.go
package authapi

import "github.com/go-chi/chi/v5"

// Routes returns the /auth subrouter.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)

	r.Group(func(r chi.Router) {
		r.Use(h.Sessions.RequireSignedIn)
		r.Get("/me", h.Me)
	})
	return r
}

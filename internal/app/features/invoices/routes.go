// internal/app/features/invoices/routes.go
package invoices

import (
	"github.com/dalemusser/classhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the /invoices subrouter.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)

	r.Group(func(r chi.Router) {
		r.Use(sm.RequireRole("Admin access required", "admin"))
		r.Post("/", h.Create)
		r.Patch("/{invoiceID}/status", h.UpdateStatus)
		r.Delete("/{invoiceID}", h.Delete)
	})
	return r
}

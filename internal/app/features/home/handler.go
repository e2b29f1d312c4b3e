// internal/app/features/home/handler.go
package home

import (
	"net/http"

	"github.com/dalemusser/classhub/internal/app/system/webjson"
)

// Handler serves the API root banner.
type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

// Serve handles GET /api/.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	webjson.OK(w, map[string]string{
		"message": "ClassHub API",
		"status":  "running",
	})
}

// internal/app/features/users/handler.go
package users

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/dalemusser/classhub/internal/app/store/users"
	"github.com/dalemusser/classhub/internal/app/system/apperr"
	"github.com/dalemusser/classhub/internal/app/system/timeouts"
	"github.com/dalemusser/classhub/internal/app/system/webjson"
	"github.com/dalemusser/classhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the admin user-management surface.
type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

func NewHandler(users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Log: logger}
}

// List handles GET /api/users (admin).
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		h.Log.Error("users: list failed", zap.Error(err))
		webjson.Error(w, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	webjson.OK(w, users)
}

type patchRequest struct {
	Role          *string `json:"role"`
	Name          *string `json:"name"`
	MeetLink      *string `json:"meet_link"`
	RecordingLink *string `json:"recording_link"`
}

// Patch handles PATCH /api/users/{userID} (admin). Absent fields are left
// unchanged; an empty patch is a 400.
func (h *Handler) Patch(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req patchRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.Users.Patch(ctx, userID, userstore.Update{
		Role:          req.Role,
		Name:          req.Name,
		MeetLink:      req.MeetLink,
		RecordingLink: req.RecordingLink,
	})
	switch {
	case errors.Is(err, userstore.ErrNoFields):
		webjson.Error(w, apperr.E(apperr.Validation, "No fields to update"))
	case errors.Is(err, mongo.ErrNoDocuments):
		webjson.Error(w, apperr.E(apperr.NotFound, "User not found"))
	case err != nil:
		h.Log.Error("users: patch failed", zap.String("user_id", userID), zap.Error(err))
		webjson.Error(w, err)
	default:
		webjson.Message(w, "User updated successfully")
	}
}

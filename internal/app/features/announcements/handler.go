// internal/app/features/announcements/handler.go
package announcements

import (
	"context"
	"errors"
	"net/http"

	announcementstore "github.com/dalemusser/classhub/internal/app/store/announcements"
	classstore "github.com/dalemusser/classhub/internal/app/store/classes"
	"github.com/dalemusser/classhub/internal/app/system/apperr"
	"github.com/dalemusser/classhub/internal/app/system/auth"
	"github.com/dalemusser/classhub/internal/app/system/authz"
	"github.com/dalemusser/classhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/classhub/internal/app/system/timeouts"
	"github.com/dalemusser/classhub/internal/app/system/webjson"
	"github.com/dalemusser/classhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves per-class announcements.
type Handler struct {
	Announcements *announcementstore.Store
	Classes       *classstore.Store
	Log           *zap.Logger
}

func NewHandler(announcements *announcementstore.Store, classes *classstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Announcements: announcements, Classes: classes, Log: logger}
}

type createRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Create handles POST /api/classes/{classID}/announcements.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if !authz.CanCreateClass(r) {
		webjson.Error(w, apperr.E(apperr.Forbidden, "Only teachers and admins can post announcements"))
		return
	}
	classID := chi.URLParam(r, "classID")

	var req createRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, err)
		return
	}
	if req.Title == "" {
		webjson.Error(w, apperr.E(apperr.Validation, "Title is required"))
		return
	}

	su, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Classes.GetByID(ctx, classID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webjson.Error(w, apperr.E(apperr.NotFound, "Class not found"))
			return
		}
		webjson.Error(w, err)
		return
	}

	annc, err := h.Announcements.Create(ctx, models.Announcement{
		ClassID:   classID,
		Title:     req.Title,
		Content:   htmlsanitize.Sanitize(req.Content),
		CreatedBy: su.ID,
	})
	if err != nil {
		h.Log.Error("announcements: create failed", zap.Error(err))
		webjson.Error(w, err)
		return
	}
	webjson.OK(w, annc)
}

// List handles GET /api/classes/{classID}/announcements.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	classID := chi.URLParam(r, "classID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	anncs, err := h.Announcements.ListByClass(ctx, classID)
	if err != nil {
		h.Log.Error("announcements: list failed", zap.Error(err))
		webjson.Error(w, err)
		return
	}
	if anncs == nil {
		anncs = []models.Announcement{}
	}
	webjson.OK(w, anncs)
}

// Delete handles DELETE /api/classes/{classID}/announcements/{announcementID}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if !authz.CanCreateClass(r) {
		webjson.Error(w, apperr.E(apperr.Forbidden, "Only teachers and admins can delete announcements"))
		return
	}
	classID := chi.URLParam(r, "classID")
	announcementID := chi.URLParam(r, "announcementID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Announcements.Delete(ctx, classID, announcementID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webjson.Error(w, apperr.E(apperr.NotFound, "Announcement not found"))
			return
		}
		h.Log.Error("announcements: delete failed", zap.Error(err))
		webjson.Error(w, err)
		return
	}
	webjson.Message(w, "Announcement deleted successfully")
}

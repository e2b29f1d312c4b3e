// internal/app/features/notes/handler.go
package notes

import (
	"context"
	"errors"
	"net/http"

	classstore "github.com/dalemusser/classhub/internal/app/store/classes"
	notestore "github.com/dalemusser/classhub/internal/app/store/notes"
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

// Handler serves per-class notes.
type Handler struct {
	Notes   *notestore.Store
	Classes *classstore.Store
	Log     *zap.Logger
}

func NewHandler(notes *notestore.Store, classes *classstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Notes: notes, Classes: classes, Log: logger}
}

type createRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Create handles POST /api/classes/{classID}/notes.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if !authz.CanCreateClass(r) {
		webjson.Error(w, apperr.E(apperr.Forbidden, "Only teachers and admins can add notes"))
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

	note, err := h.Notes.Create(ctx, models.Note{
		ClassID:  classID,
		Title:    req.Title,
		Content:  htmlsanitize.Sanitize(req.Content),
		AuthorID: su.ID,
	})
	if err != nil {
		h.Log.Error("notes: create failed", zap.Error(err))
		webjson.Error(w, err)
		return
	}
	webjson.OK(w, note)
}

// List handles GET /api/classes/{classID}/notes.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	classID := chi.URLParam(r, "classID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	notes, err := h.Notes.ListByClass(ctx, classID)
	if err != nil {
		h.Log.Error("notes: list failed", zap.Error(err))
		webjson.Error(w, err)
		return
	}
	if notes == nil {
		notes = []models.Note{}
	}
	webjson.OK(w, notes)
}

// Delete handles DELETE /api/classes/{classID}/notes/{noteID}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if !authz.CanCreateClass(r) {
		webjson.Error(w, apperr.E(apperr.Forbidden, "Only teachers and admins can delete notes"))
		return
	}
	classID := chi.URLParam(r, "classID")
	noteID := chi.URLParam(r, "noteID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Notes.Delete(ctx, classID, noteID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webjson.Error(w, apperr.E(apperr.NotFound, "Note not found"))
			return
		}
		h.Log.Error("notes: delete failed", zap.Error(err))
		webjson.Error(w, err)
		return
	}
	webjson.Message(w, "Note deleted successfully")
}

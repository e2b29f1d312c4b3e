// internal/app/features/assignments/handler.go
package assignments

import (
	"context"
	"errors"
	"net/http"

	assignmentstore "github.com/dalemusser/classhub/internal/app/store/assignments"
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

// Handler serves per-class assignments.
type Handler struct {
	Assignments *assignmentstore.Store
	Classes     *classstore.Store
	Log         *zap.Logger
}

func NewHandler(assignments *assignmentstore.Store, classes *classstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Assignments: assignments, Classes: classes, Log: logger}
}

type createRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
}

// Create handles POST /api/classes/{classID}/assignments.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if !authz.CanCreateClass(r) {
		webjson.Error(w, apperr.E(apperr.Forbidden, "Only teachers and admins can create assignments"))
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

	assignment, err := h.Assignments.Create(ctx, models.Assignment{
		ClassID:     classID,
		Title:       req.Title,
		Description: htmlsanitize.Sanitize(req.Description),
		DueDate:     req.DueDate,
		CreatedBy:   su.ID,
	})
	if err != nil {
		h.Log.Error("assignments: create failed", zap.Error(err))
		webjson.Error(w, err)
		return
	}
	webjson.OK(w, assignment)
}

// List handles GET /api/classes/{classID}/assignments.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	classID := chi.URLParam(r, "classID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	assignments, err := h.Assignments.ListByClass(ctx, classID)
	if err != nil {
		h.Log.Error("assignments: list failed", zap.Error(err))
		webjson.Error(w, err)
		return
	}
	if assignments == nil {
		assignments = []models.Assignment{}
	}
	webjson.OK(w, assignments)
}

// Delete handles DELETE /api/classes/{classID}/assignments/{assignmentID}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if !authz.CanCreateClass(r) {
		webjson.Error(w, apperr.E(apperr.Forbidden, "Only teachers and admins can delete assignments"))
		return
	}
	classID := chi.URLParam(r, "classID")
	assignmentID := chi.URLParam(r, "assignmentID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Assignments.Delete(ctx, classID, assignmentID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webjson.Error(w, apperr.E(apperr.NotFound, "Assignment not found"))
			return
		}
		h.Log.Error("assignments: delete failed", zap.Error(err))
		webjson.Error(w, err)
		return
	}
	webjson.Message(w, "Assignment deleted successfully")
}

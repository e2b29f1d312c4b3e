// internal/app/features/progress/handler.go
package progress

import (
	"context"
	"errors"
	"net/http"

	classstore "github.com/dalemusser/classhub/internal/app/store/classes"
	progressstore "github.com/dalemusser/classhub/internal/app/store/progress"
	"github.com/dalemusser/classhub/internal/app/system/apperr"
	"github.com/dalemusser/classhub/internal/app/system/auth"
	"github.com/dalemusser/classhub/internal/app/system/authz"
	"github.com/dalemusser/classhub/internal/app/system/timeouts"
	"github.com/dalemusser/classhub/internal/app/system/webjson"
	"github.com/dalemusser/classhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves per-class student progress.
type Handler struct {
	Progress *progressstore.Store
	Classes  *classstore.Store
	Log      *zap.Logger
}

func NewHandler(progress *progressstore.Store, classes *classstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Progress: progress, Classes: classes, Log: logger}
}

type upsertRequest struct {
	StudentID string  `json:"student_id"`
	Score     float64 `json:"score"`
	Remarks   string  `json:"remarks"`
}

// Upsert handles POST /api/classes/{classID}/progress. One record per
// student per class; resubmission updates it.
func (h *Handler) Upsert(w http.ResponseWriter, r *http.Request) {
	if !authz.CanCreateClass(r) {
		webjson.Error(w, apperr.E(apperr.Forbidden, "Only teachers and admins can record progress"))
		return
	}
	classID := chi.URLParam(r, "classID")

	var req upsertRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, err)
		return
	}
	if req.StudentID == "" {
		webjson.Error(w, apperr.E(apperr.Validation, "student_id is required"))
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

	record, err := h.Progress.Upsert(ctx, classID, req.StudentID, req.Score, req.Remarks, su.ID)
	if err != nil {
		h.Log.Error("progress: upsert failed", zap.Error(err))
		webjson.Error(w, err)
		return
	}
	webjson.OK(w, record)
}

// List handles GET /api/classes/{classID}/progress. Students see only their
// own rows; teachers and admins see the whole class.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	classID := chi.URLParam(r, "classID")
	su, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var (
		records []models.Progress
		err     error
	)
	if authz.IsStudent(r) {
		records, err = h.Progress.ListByClassAndStudent(ctx, classID, su.ID)
	} else {
		records, err = h.Progress.ListByClass(ctx, classID)
	}
	if err != nil {
		h.Log.Error("progress: list failed", zap.Error(err))
		webjson.Error(w, err)
		return
	}
	if records == nil {
		records = []models.Progress{}
	}
	webjson.OK(w, records)
}

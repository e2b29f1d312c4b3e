// internal/app/features/attendance/handler.go
package attendance

import (
	"context"
	"errors"
	"net/http"
	"time"

	attendancestore "github.com/dalemusser/classhub/internal/app/store/attendance"
	classstore "github.com/dalemusser/classhub/internal/app/store/classes"
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

// Handler serves per-class attendance sheets.
type Handler struct {
	Attendance *attendancestore.Store
	Classes    *classstore.Store
	Log        *zap.Logger
}

func NewHandler(attendance *attendancestore.Store, classes *classstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Attendance: attendance, Classes: classes, Log: logger}
}

type recordInput struct {
	StudentID string `json:"student_id"`
	Present   bool   `json:"present"`
}

type upsertRequest struct {
	SessionDate string        `json:"session_date"`
	Records     []recordInput `json:"records"`
}

// Upsert handles POST /api/classes/{classID}/attendance. Submitting twice
// for the same date replaces the sheet rather than adding a second one.
func (h *Handler) Upsert(w http.ResponseWriter, r *http.Request) {
	if !authz.CanCreateClass(r) {
		webjson.Error(w, apperr.E(apperr.Forbidden, "Only teachers and admins can record attendance"))
		return
	}
	classID := chi.URLParam(r, "classID")

	var req upsertRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, err)
		return
	}
	if req.SessionDate == "" {
		webjson.Error(w, apperr.E(apperr.Validation, "session_date is required"))
		return
	}
	if _, err := time.Parse("2006-01-02", req.SessionDate); err != nil {
		webjson.Error(w, apperr.E(apperr.Validation, "session_date must be YYYY-MM-DD"))
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

	records := make([]models.AttendanceEntry, 0, len(req.Records))
	for _, rec := range req.Records {
		if rec.StudentID == "" {
			webjson.Error(w, apperr.E(apperr.Validation, "student_id is required for each record"))
			return
		}
		records = append(records, models.AttendanceEntry{StudentID: rec.StudentID, Present: rec.Present})
	}

	sheet, err := h.Attendance.Upsert(ctx, classID, req.SessionDate, records, su.ID)
	if err != nil {
		h.Log.Error("attendance: upsert failed", zap.Error(err))
		webjson.Error(w, err)
		return
	}
	webjson.OK(w, sheet)
}

// List handles GET /api/classes/{classID}/attendance.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	classID := chi.URLParam(r, "classID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sheets, err := h.Attendance.ListByClass(ctx, classID)
	if err != nil {
		h.Log.Error("attendance: list failed", zap.Error(err))
		webjson.Error(w, err)
		return
	}
	if sheets == nil {
		sheets = []models.Attendance{}
	}
	webjson.OK(w, sheets)
}

// Delete handles DELETE /api/classes/{classID}/attendance/{attendanceID}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if !authz.CanCreateClass(r) {
		webjson.Error(w, apperr.E(apperr.Forbidden, "Only teachers and admins can delete attendance"))
		return
	}
	classID := chi.URLParam(r, "classID")
	attendanceID := chi.URLParam(r, "attendanceID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Attendance.Delete(ctx, classID, attendanceID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webjson.Error(w, apperr.E(apperr.NotFound, "Attendance record not found"))
			return
		}
		h.Log.Error("attendance: delete failed", zap.Error(err))
		webjson.Error(w, err)
		return
	}
	webjson.Message(w, "Attendance record deleted successfully")
}

// internal/app/features/schedule/handler.go
package schedule

import (
	"context"
	"net/http"
	"time"

	schedulestore "github.com/dalemusser/classhub/internal/app/store/schedules"
	"github.com/dalemusser/classhub/internal/app/system/apperr"
	"github.com/dalemusser/classhub/internal/app/system/auth"
	"github.com/dalemusser/classhub/internal/app/system/authz"
	"github.com/dalemusser/classhub/internal/app/system/timeouts"
	"github.com/dalemusser/classhub/internal/app/system/webjson"
	"github.com/dalemusser/classhub/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves teacher schedule entries.
type Handler struct {
	Schedules *schedulestore.Store
	Log       *zap.Logger
}

func NewHandler(schedules *schedulestore.Store, logger *zap.Logger) *Handler {
	return &Handler{Schedules: schedules, Log: logger}
}

type createRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	MeetingLink string    `json:"meeting_link"`
}

// Create handles POST /api/schedule.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if !authz.IsTeacher(r) {
		webjson.Error(w, apperr.E(apperr.Forbidden, "Only teachers can create schedules"))
		return
	}

	var req createRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, err)
		return
	}
	if req.Title == "" {
		webjson.Error(w, apperr.E(apperr.Validation, "Title is required"))
		return
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		webjson.Error(w, apperr.E(apperr.Validation, "start_time and end_time are required"))
		return
	}
	if !req.EndTime.After(req.StartTime) {
		webjson.Error(w, apperr.E(apperr.Validation, "end_time must be after start_time"))
		return
	}

	su, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sched, err := h.Schedules.Create(ctx, models.Schedule{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		MeetingLink: req.MeetingLink,
		TeacherID:   su.ID,
	})
	if err != nil {
		h.Log.Error("schedule: create failed", zap.Error(err))
		webjson.Error(w, err)
		return
	}
	webjson.OK(w, sched)
}

// List handles GET /api/schedule, returning the caller's own entries in
// chronological order.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	su, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	schedules, err := h.Schedules.ListByTeacher(ctx, su.ID)
	if err != nil {
		h.Log.Error("schedule: list failed", zap.Error(err))
		webjson.Error(w, err)
		return
	}
	if schedules == nil {
		schedules = []models.Schedule{}
	}
	webjson.OK(w, schedules)
}

// internal/app/features/enrollments/handler.go
package enrollments

import (
	"context"
	"errors"
	"net/http"

	classstore "github.com/dalemusser/classhub/internal/app/store/classes"
	enrollmentstore "github.com/dalemusser/classhub/internal/app/store/enrollments"
	"github.com/dalemusser/classhub/internal/app/system/apperr"
	"github.com/dalemusser/classhub/internal/app/system/auth"
	"github.com/dalemusser/classhub/internal/app/system/authz"
	"github.com/dalemusser/classhub/internal/app/system/timeouts"
	"github.com/dalemusser/classhub/internal/app/system/webjson"
	"github.com/dalemusser/classhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves class enrollment.
type Handler struct {
	Enrollments *enrollmentstore.Store
	Classes     *classstore.Store
	Log         *zap.Logger
}

func NewHandler(enrollments *enrollmentstore.Store, classes *classstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Enrollments: enrollments, Classes: classes, Log: logger}
}

type enrollRequest struct {
	ClassID string `json:"class_id"`
}

// Create handles POST /api/enrollments. The capacity check and the counter
// bump are one conditional update, and duplicates are stopped by the unique
// (user_id, class_id) index, so racing requests cannot oversubscribe a class
// or double-enroll a student.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if !authz.IsStudent(r) {
		webjson.Error(w, apperr.E(apperr.Forbidden, "Only students can enroll"))
		return
	}

	var req enrollRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, err)
		return
	}

	su, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Classes.GetByID(ctx, req.ClassID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webjson.Error(w, apperr.E(apperr.NotFound, "Class not found"))
			return
		}
		h.Log.Error("enroll: class lookup failed", zap.Error(err))
		webjson.Error(w, err)
		return
	}

	// Fast-path duplicate check so a re-enroll attempt on a full class
	// still reads "Already enrolled". The unique index remains the backstop.
	if enrolled, err := h.Enrollments.Exists(ctx, su.ID, req.ClassID); err != nil {
		h.Log.Error("enroll: duplicate check failed", zap.Error(err))
		webjson.Error(w, err)
		return
	} else if enrolled {
		webjson.Error(w, apperr.E(apperr.Conflict, "Already enrolled"))
		return
	}

	// Reserve the seat first; roll the counter back if the insert loses a
	// duplicate race.
	if err := h.Classes.IncrementEnrolled(ctx, req.ClassID); err != nil {
		if errors.Is(err, classstore.ErrClassFull) {
			webjson.Error(w, apperr.E(apperr.Conflict, "Class is full"))
			return
		}
		h.Log.Error("enroll: seat reservation failed", zap.Error(err))
		webjson.Error(w, err)
		return
	}

	if _, err := h.Enrollments.Create(ctx, su.ID, req.ClassID); err != nil {
		if derr := h.Classes.DecrementEnrolled(ctx, req.ClassID); derr != nil {
			h.Log.Error("enroll: rollback failed", zap.String("class_id", req.ClassID), zap.Error(derr))
		}
		if errors.Is(err, enrollmentstore.ErrDuplicateEnrollment) {
			webjson.Error(w, apperr.E(apperr.Conflict, "Already enrolled"))
			return
		}
		h.Log.Error("enroll: insert failed", zap.Error(err))
		webjson.Error(w, err)
		return
	}

	webjson.Message(w, "Enrolled successfully")
}

// List handles GET /api/enrollments, returning the caller's enrollments.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	su, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	enrollments, err := h.Enrollments.ListByUser(ctx, su.ID)
	if err != nil {
		h.Log.Error("enroll: list failed", zap.Error(err))
		webjson.Error(w, err)
		return
	}
	if enrollments == nil {
		enrollments = []models.Enrollment{}
	}
	webjson.OK(w, enrollments)
}

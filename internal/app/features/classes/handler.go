// internal/app/features/classes/handler.go
package classes

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	classstore "github.com/dalemusser/classhub/internal/app/store/classes"
	enrollmentstore "github.com/dalemusser/classhub/internal/app/store/enrollments"
	userstore "github.com/dalemusser/classhub/internal/app/store/users"
	"github.com/dalemusser/classhub/internal/app/system/apperr"
	"github.com/dalemusser/classhub/internal/app/system/auth"
	"github.com/dalemusser/classhub/internal/app/system/authz"
	"github.com/dalemusser/classhub/internal/app/system/ids"
	"github.com/dalemusser/classhub/internal/app/system/timeouts"
	"github.com/dalemusser/classhub/internal/app/system/webjson"
	"github.com/dalemusser/classhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves class CRUD plus meet/recording link management.
type Handler struct {
	Classes     *classstore.Store
	Enrollments *enrollmentstore.Store
	Users       *userstore.Store
	Log         *zap.Logger
}

func NewHandler(classes *classstore.Store, enrollments *enrollmentstore.Store, users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Classes: classes, Enrollments: enrollments, Users: users, Log: logger}
}

type createRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	MaxStudents   int    `json:"max_students"`
	RecordingLink string `json:"recording_link"`
}

// Create handles POST /api/classes. The class inherits the creating
// teacher's current meet link as its initial value.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if !authz.CanCreateClass(r) {
		webjson.Error(w, apperr.E(apperr.Forbidden, "Only teachers and admins can create classes"))
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

	su, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	// The creator's profile carries the default meet link for new classes.
	meetLink := ""
	if creator, err := h.Users.GetByID(ctx, su.ID); err == nil {
		meetLink = creator.MeetLink
	}

	cls, err := h.Classes.Create(ctx, models.Class{
		Title:         req.Title,
		Description:   req.Description,
		TeacherID:     su.ID,
		TeacherName:   su.Name,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		MaxStudents:   req.MaxStudents,
		MeetLink:      meetLink,
		RecordingLink: req.RecordingLink,
	})
	if err != nil {
		h.Log.Error("classes: create failed", zap.Error(err))
		webjson.Error(w, err)
		return
	}
	webjson.OK(w, cls)
}

// List handles GET /api/classes. Teachers see the classes they own,
// students the ones they are enrolled in, admins everything.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	su, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var (
		classes []models.Class
		err     error
	)
	switch su.Role {
	case "teacher":
		classes, err = h.Classes.ListByTeacher(ctx, su.ID)
	case "student":
		var classIDs []string
		classIDs, err = h.Enrollments.ClassIDsForUser(ctx, su.ID)
		if err == nil {
			classes, err = h.Classes.ListByIDs(ctx, classIDs)
		}
	default:
		classes, err = h.Classes.ListAll(ctx)
	}
	if err != nil {
		h.Log.Error("classes: list failed", zap.String("role", su.Role), zap.Error(err))
		webjson.Error(w, err)
		return
	}

	h.overlayTeacherMeetLinks(ctx, classes)
	if classes == nil {
		classes = []models.Class{}
	}
	webjson.OK(w, classes)
}

// Get handles GET /api/classes/{classID}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	classID := chi.URLParam(r, "classID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	cls, _ := h.loadClass(ctx, w, classID)
	if cls == nil {
		return
	}

	// Always show the teacher's current meet link.
	cls.MeetLink = ""
	if teacher, err := h.Users.GetByID(ctx, cls.TeacherID); err == nil {
		cls.MeetLink = teacher.MeetLink
	}
	webjson.OK(w, cls)
}

// CreateMeet handles POST /api/classes/{classID}/meet, generating a fresh
// meet link for the class.
func (h *Handler) CreateMeet(w http.ResponseWriter, r *http.Request) {
	classID := chi.URLParam(r, "classID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cls, _ := h.loadClass(ctx, w, classID)
	if cls == nil {
		return
	}
	if !authz.CanManageClass(r, cls) {
		webjson.Error(w, apperr.E(apperr.Forbidden, "Only the teacher or admin can create meet links"))
		return
	}

	meetLink := fmt.Sprintf("https://meet.google.com/%s", ids.MeetCode())
	if err := h.Classes.SetMeetLink(ctx, classID, meetLink); err != nil {
		h.Log.Error("classes: set meet link failed", zap.String("class_id", classID), zap.Error(err))
		webjson.Error(w, err)
		return
	}
	webjson.OK(w, map[string]string{"meet_link": meetLink})
}

type recordingRequest struct {
	RecordingLink string `json:"recording_link"`
}

// SetRecording handles PATCH /api/classes/{classID}/recording. The link may
// arrive as a JSON body or a recording_link query parameter.
func (h *Handler) SetRecording(w http.ResponseWriter, r *http.Request) {
	classID := chi.URLParam(r, "classID")

	link := query.Get(r, "recording_link")
	if link == "" {
		var req recordingRequest
		if err := webjson.Decode(r, &req); err == nil {
			link = req.RecordingLink
		}
	}
	if link == "" {
		webjson.Error(w, apperr.E(apperr.Validation, "recording_link is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cls, _ := h.loadClass(ctx, w, classID)
	if cls == nil {
		return
	}
	if !authz.CanManageClass(r, cls) {
		webjson.Error(w, apperr.E(apperr.Forbidden, "Only teacher or admin can add recording"))
		return
	}

	if err := h.Classes.SetRecordingLink(ctx, classID, link); err != nil {
		h.Log.Error("classes: set recording failed", zap.String("class_id", classID), zap.Error(err))
		webjson.Error(w, err)
		return
	}
	webjson.Message(w, "Recording link added successfully")
}

// Delete handles DELETE /api/classes/{classID}, removing the class and its
// enrollments.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	classID := chi.URLParam(r, "classID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	cls, _ := h.loadClass(ctx, w, classID)
	if cls == nil {
		return
	}
	if !authz.CanManageClass(r, cls) {
		webjson.Error(w, apperr.E(apperr.Forbidden, "Only the teacher or admin can delete this class"))
		return
	}

	if err := h.Classes.Delete(ctx, classID); err != nil {
		h.Log.Error("classes: delete failed", zap.String("class_id", classID), zap.Error(err))
		webjson.Error(w, err)
		return
	}
	if _, err := h.Enrollments.DeleteByClass(ctx, classID); err != nil {
		// The class is gone; orphaned enrollments are invisible to reads.
		h.Log.Error("classes: enrollment cleanup failed", zap.String("class_id", classID), zap.Error(err))
	}
	webjson.Message(w, "Class deleted successfully")
}

// loadClass fetches a class and writes the 404 itself when missing, so
// callers can bail on nil.
func (h *Handler) loadClass(ctx context.Context, w http.ResponseWriter, classID string) (*models.Class, error) {
	cls, err := h.Classes.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webjson.Error(w, apperr.E(apperr.NotFound, "Class not found"))
			return nil, err
		}
		h.Log.Error("classes: load failed", zap.String("class_id", classID), zap.Error(err))
		webjson.Error(w, err)
		return nil, err
	}
	return cls, nil
}

// overlayTeacherMeetLinks replaces each class's stored meet link with the
// owning teacher's current one, so profile updates show up immediately.
func (h *Handler) overlayTeacherMeetLinks(ctx context.Context, classes []models.Class) {
	cache := map[string]string{}
	for i := range classes {
		tid := classes[i].TeacherID
		link, seen := cache[tid]
		if !seen {
			if teacher, err := h.Users.GetByID(ctx, tid); err == nil {
				link = teacher.MeetLink
			}
			cache[tid] = link
		}
		classes[i].MeetLink = link
	}
}

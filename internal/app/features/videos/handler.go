// internal/app/features/videos/handler.go
package videos

import (
	"context"
	"net/http"

	videostore "github.com/dalemusser/classhub/internal/app/store/videos"
	"github.com/dalemusser/classhub/internal/app/system/apperr"
	"github.com/dalemusser/classhub/internal/app/system/auth"
	"github.com/dalemusser/classhub/internal/app/system/authz"
	"github.com/dalemusser/classhub/internal/app/system/timeouts"
	"github.com/dalemusser/classhub/internal/app/system/webjson"
	"github.com/dalemusser/classhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.uber.org/zap"
)

// Handler serves class video records.
type Handler struct {
	Videos *videostore.Store
	Log    *zap.Logger
}

func NewHandler(videos *videostore.Store, logger *zap.Logger) *Handler {
	return &Handler{Videos: videos, Log: logger}
}

type createRequest struct {
	ClassID     string `json:"class_id"`
	Title       string `json:"title"`
	VideoURL    string `json:"video_url"`
	Description string `json:"description"`
}

// Create handles POST /api/videos.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if !authz.CanCreateClass(r) {
		webjson.Error(w, apperr.E(apperr.Forbidden, "Only teachers and admins can upload videos"))
		return
	}

	var req createRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, err)
		return
	}
	if req.ClassID == "" || req.Title == "" {
		webjson.Error(w, apperr.E(apperr.Validation, "class_id and title are required"))
		return
	}

	su, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	video, err := h.Videos.Create(ctx, models.Video{
		ClassID:     req.ClassID,
		Title:       req.Title,
		VideoURL:    req.VideoURL,
		Description: req.Description,
		UploadedBy:  su.ID,
	})
	if err != nil {
		h.Log.Error("videos: create failed", zap.Error(err))
		webjson.Error(w, err)
		return
	}
	webjson.OK(w, video)
}

// List handles GET /api/videos with an optional class_id filter.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	videos, err := h.Videos.List(ctx, query.Get(r, "class_id"))
	if err != nil {
		h.Log.Error("videos: list failed", zap.Error(err))
		webjson.Error(w, err)
		return
	}
	if videos == nil {
		videos = []models.Video{}
	}
	webjson.OK(w, videos)
}

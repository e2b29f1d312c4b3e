// internal/app/features/authapi/handler.go
package authapi

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/dalemusser/classhub/internal/app/store/users"
	"github.com/dalemusser/classhub/internal/app/system/apperr"
	"github.com/dalemusser/classhub/internal/app/system/auth"
	"github.com/dalemusser/classhub/internal/app/system/passwords"
	"github.com/dalemusser/classhub/internal/app/system/timeouts"
	"github.com/dalemusser/classhub/internal/app/system/webjson"
	"github.com/dalemusser/classhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves registration, login, session introspection, and logout.
type Handler struct {
	Users    *userstore.Store
	Sessions *auth.SessionManager
	Log      *zap.Logger
}

func NewHandler(users *userstore.Store, sessions *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Sessions: sessions, Log: logger}
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Register handles POST /api/auth/register. New accounts are always
// students; role elevation is an admin patch.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, err)
		return
	}
	if req.Email == "" || req.Name == "" || req.Password == "" {
		webjson.Error(w, apperr.E(apperr.Validation, "Email, name, and password are required"))
		return
	}

	hash, err := passwords.Hash(req.Password)
	if err != nil {
		h.Log.Error("register: hashing failed", zap.Error(err))
		webjson.Error(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.Create(ctx, models.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		Role:         "student",
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			webjson.Error(w, apperr.E(apperr.Conflict, "Email already registered"))
			return
		}
		h.Log.Error("register: create failed", zap.Error(err))
		webjson.Error(w, err)
		return
	}

	webjson.OK(w, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login. Unknown email and wrong password are
// indistinguishable to the caller.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webjson.Error(w, apperr.E(apperr.Validation, "Invalid credentials"))
			return
		}
		h.Log.Error("login: lookup failed", zap.Error(err))
		webjson.Error(w, err)
		return
	}
	if !passwords.Verify(req.Password, user.PasswordHash) {
		webjson.Error(w, apperr.E(apperr.Validation, "Invalid credentials"))
		return
	}

	token, err := h.Sessions.SetSessionCookie(w, user.UserID)
	if err != nil {
		h.Log.Error("login: token issue failed", zap.Error(err))
		webjson.Error(w, err)
		return
	}

	webjson.OK(w, map[string]any{
		"access_token": token,
		"token_type":   "bearer",
		"user":         user,
	})
}

// Me handles GET /api/auth/me, returning the authenticated user's record.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	su, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByID(ctx, su.ID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webjson.Error(w, apperr.E(apperr.NotFound, "User not found"))
			return
		}
		h.Log.Error("me: lookup failed", zap.Error(err))
		webjson.Error(w, err)
		return
	}
	webjson.OK(w, user)
}

// Logout handles POST /api/auth/logout by expiring the session cookie. It
// does not require a valid session; logging out twice is fine.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.ClearSessionCookie(w)
	webjson.Message(w, "Logged out successfully")
}

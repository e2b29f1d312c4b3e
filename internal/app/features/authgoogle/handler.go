// internal/app/features/authgoogle/handler.go
package authgoogle

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/classhub/internal/app/store/oauthstate"
	userstore "github.com/dalemusser/classhub/internal/app/store/users"
	"github.com/dalemusser/classhub/internal/app/system/apperr"
	"github.com/dalemusser/classhub/internal/app/system/auth"
	"github.com/dalemusser/classhub/internal/app/system/authz"
	"github.com/dalemusser/classhub/internal/app/system/timeouts"
	"github.com/dalemusser/classhub/internal/app/system/webjson"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Handler connects a teacher's Google account (calendar scope) so meet
// links can be provisioned for their classes.
type Handler struct {
	Users      *userstore.Store
	StateStore *oauthstate.Store
	Log        *zap.Logger

	ClientID     string
	ClientSecret string
	RedirectURL  string // e.g. "https://classhub.example.com/api/google/callback"
}

// NewHandler creates a Google OAuth handler.
func NewHandler(users *userstore.Store, states *oauthstate.Store, clientID, clientSecret, baseURL string, logger *zap.Logger) *Handler {
	return &Handler{
		Users:        users,
		StateStore:   states,
		Log:          logger,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  baseURL + "/api/google/callback",
	}
}

// oauth2Config returns the Google OAuth2 configuration.
func (h *Handler) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.ClientID,
		ClientSecret: h.ClientSecret,
		RedirectURL:  h.RedirectURL,
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
			"https://www.googleapis.com/auth/calendar",
		},
		Endpoint: google.Endpoint,
	}
}

// IsConfigured returns true if Google OAuth is configured.
func (h *Handler) IsConfigured() bool {
	return h.ClientID != "" && h.ClientSecret != ""
}

// ServeLogin handles GET /api/google/login: stores a one-time state bound
// to the signed-in teacher and redirects to Google's consent screen.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if !authz.IsTeacher(r) {
		webjson.Error(w, apperr.E(apperr.Forbidden, "Only teachers can connect Google"))
		return
	}
	if !h.IsConfigured() {
		h.Log.Warn("google oauth not configured")
		webjson.Error(w, apperr.E(apperr.Validation, "Google OAuth is not configured"))
		return
	}

	su, _ := auth.CurrentUser(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	state, err := h.StateStore.Begin(ctx, su.ID, 0)
	if err != nil {
		h.Log.Error("google oauth: state save failed", zap.Error(err))
		webjson.Error(w, err)
		return
	}

	url := h.oauth2Config().AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// ServeCallback handles GET /api/google/callback?code&state: redeems the
// state for the initiating teacher, exchanges the code, and persists the
// tokens on that teacher's account.
func (h *Handler) ServeCallback(w http.ResponseWriter, r *http.Request) {
	code := query.Get(r, "code")
	state := query.Get(r, "state")
	if code == "" || state == "" {
		webjson.Error(w, apperr.E(apperr.Validation, "code and state are required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	teacherID, valid, err := h.StateStore.Redeem(ctx, state)
	if err != nil {
		h.Log.Error("google oauth: state redeem failed", zap.Error(err))
		webjson.Error(w, err)
		return
	}
	if !valid {
		webjson.Error(w, apperr.E(apperr.Validation, "Invalid or expired state"))
		return
	}

	token, err := h.oauth2Config().Exchange(ctx, code)
	if err != nil {
		h.Log.Error("google oauth: code exchange failed", zap.Error(err))
		webjson.Error(w, apperr.E(apperr.Validation, "Failed to exchange authorization code"))
		return
	}

	if err := h.Users.SetGoogleTokens(ctx, teacherID, token.AccessToken, token.RefreshToken); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			webjson.Error(w, apperr.E(apperr.NotFound, "User not found"))
			return
		}
		h.Log.Error("google oauth: token save failed", zap.String("user_id", teacherID), zap.Error(err))
		webjson.Error(w, err)
		return
	}

	webjson.Message(w, "Google connected successfully")
}

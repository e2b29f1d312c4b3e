// internal/app/system/auth/auth.go
package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/classhub/internal/app/system/apperr"
	"github.com/dalemusser/classhub/internal/app/system/timeouts"
	"github.com/dalemusser/classhub/internal/app/system/token"
	"github.com/dalemusser/classhub/internal/app/system/webjson"
	"go.uber.org/zap"
)

// CookieName is the cookie carrying the signed access token.
const CookieName = "access_token"

// SessionUser is what the middleware resolves for the request and injects
// into r.Context().
type SessionUser struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// UserFetcher loads fresh user data for a verified token subject. A nil user
// with a nil error means the record no longer exists; a non-nil error means
// the lookup itself failed and the request should not be treated as a
// deleted account.
type UserFetcher interface {
	FetchUser(ctx context.Context, userID string) (*SessionUser, error)
}

type ctxKey string

const (
	currentUserKey ctxKey = "currentUser"
	tokenStateKey  ctxKey = "tokenState"
)

// tokenState records why no user was attached, so RequireSignedIn can keep
// the original error semantics (401 for bad tokens, 404 for a valid token
// whose user record is gone).
type tokenState int

const (
	tokenMissing tokenState = iota
	tokenBad
	tokenUserGone
	tokenFetchFailed
	tokenOK
)

// SessionManager verifies the auth cookie and resolves the current user on
// each request. Cookies are Secure+SameSite=None when secure is set (prod
// behind HTTPS) and Lax otherwise so local http:// development works.
type SessionManager struct {
	issuer  *token.Issuer
	fetcher UserFetcher
	domain  string
	secure  bool
	log     *zap.Logger
}

// NewSessionManager builds a SessionManager around a token issuer.
func NewSessionManager(issuer *token.Issuer, domain string, secure bool, logger *zap.Logger) *SessionManager {
	return &SessionManager{issuer: issuer, domain: domain, secure: secure, log: logger}
}

// SetUserFetcher wires the store-backed fetcher. Fetching fresh user data on
// each request means role changes and deletions take effect immediately.
func (sm *SessionManager) SetUserFetcher(f UserFetcher) { sm.fetcher = f }

// Issuer exposes the token issuer for login handlers.
func (sm *SessionManager) Issuer() *token.Issuer { return sm.issuer }

// CurrentUser returns the resolved user and a found flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// WithTestUser injects a user directly into the request context. Tests use
// this to bypass the cookie/token path.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	ctx := context.WithValue(r.Context(), currentUserKey, u)
	ctx = context.WithValue(ctx, tokenStateKey, tokenOK)
	return r.WithContext(ctx)
}

// SetSessionCookie issues a token for userID and writes the auth cookie.
// The cookie lifetime matches the token lifetime.
func (sm *SessionManager) SetSessionCookie(w http.ResponseWriter, userID string) (string, error) {
	tok, err := sm.issuer.Issue(userID)
	if err != nil {
		return "", err
	}
	http.SetCookie(w, sm.cookie(tok, int(sm.issuer.TTL()/time.Second)))
	return tok, nil
}

// ClearSessionCookie expires the auth cookie.
func (sm *SessionManager) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, sm.cookie("", -1))
}

func (sm *SessionManager) cookie(value string, maxAge int) *http.Cookie {
	c := &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Domain:   sm.domain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   sm.secure,
	}
	if sm.secure {
		c.SameSite = http.SameSiteNoneMode
	} else {
		c.SameSite = http.SameSiteLaxMode
	}
	return c
}

// LoadSessionUser verifies the token (cookie first, then Authorization:
// Bearer) and injects the resolved user into context. It never rejects;
// RequireSignedIn decides what an absent user means per route.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state := tokenMissing

		if raw := requestToken(r); raw != "" {
			userID, err := sm.issuer.Verify(raw)
			switch {
			case err != nil:
				state = tokenBad
			case sm.fetcher == nil:
				state = tokenBad
			default:
				ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
				u, err := sm.fetcher.FetchUser(ctx, userID)
				cancel()
				switch {
				case err != nil:
					sm.log.Error("auth: user lookup failed", zap.String("user_id", userID), zap.Error(err))
					state = tokenFetchFailed
				case u == nil:
					state = tokenUserGone
				default:
					state = tokenOK
					r = r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
				}
			}
		}

		r = r.WithContext(context.WithValue(r.Context(), tokenStateKey, state))
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn rejects requests that did not resolve to a user:
// missing token -> 401 "Not authenticated", invalid/expired -> 401
// "Invalid token", valid token with no user record -> 404 "User not found",
// failed user lookup -> 500.
func (sm *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}

		state, _ := r.Context().Value(tokenStateKey).(tokenState)
		switch state {
		case tokenUserGone:
			webjson.Error(w, apperr.E(apperr.NotFound, "User not found"))
		case tokenFetchFailed:
			webjson.Error(w, apperr.E(apperr.Internal, "Internal server error"))
		case tokenBad:
			webjson.Error(w, apperr.E(apperr.Unauthenticated, "Invalid token"))
		default:
			webjson.Error(w, apperr.E(apperr.Unauthenticated, "Not authenticated"))
		}
	})
}

// RequireRole composes with RequireSignedIn semantics and additionally
// demands one of the allowed roles, rejecting with the given message so
// each route surface keeps its own 403 wording.
func (sm *SessionManager) RequireRole(message string, allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, _ := CurrentUser(r)
			if _, has := set[strings.ToLower(u.Role)]; !has {
				webjson.Error(w, apperr.E(apperr.Forbidden, message))
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}

// requestToken pulls the raw token from the cookie, falling back to an
// Authorization: Bearer header for non-browser clients.
func requestToken(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"strings"

	announcementsfeature "github.com/dalemusser/classhub/internal/app/features/announcements"
	assignmentsfeature "github.com/dalemusser/classhub/internal/app/features/assignments"
	attendancefeature "github.com/dalemusser/classhub/internal/app/features/attendance"
	authapifeature "github.com/dalemusser/classhub/internal/app/features/authapi"
	authgooglefeature "github.com/dalemusser/classhub/internal/app/features/authgoogle"
	classesfeature "github.com/dalemusser/classhub/internal/app/features/classes"
	creditsfeature "github.com/dalemusser/classhub/internal/app/features/credits"
	enrollmentsfeature "github.com/dalemusser/classhub/internal/app/features/enrollments"
	healthfeature "github.com/dalemusser/classhub/internal/app/features/health"
	homefeature "github.com/dalemusser/classhub/internal/app/features/home"
	invoicesfeature "github.com/dalemusser/classhub/internal/app/features/invoices"
	notesfeature "github.com/dalemusser/classhub/internal/app/features/notes"
	progressfeature "github.com/dalemusser/classhub/internal/app/features/progress"
	schedulefeature "github.com/dalemusser/classhub/internal/app/features/schedule"
	usersfeature "github.com/dalemusser/classhub/internal/app/features/users"
	videosfeature "github.com/dalemusser/classhub/internal/app/features/videos"
	announcementstore "github.com/dalemusser/classhub/internal/app/store/announcements"
	assignmentstore "github.com/dalemusser/classhub/internal/app/store/assignments"
	attendancestore "github.com/dalemusser/classhub/internal/app/store/attendance"
	classstore "github.com/dalemusser/classhub/internal/app/store/classes"
	creditstore "github.com/dalemusser/classhub/internal/app/store/credits"
	enrollmentstore "github.com/dalemusser/classhub/internal/app/store/enrollments"
	invoicestore "github.com/dalemusser/classhub/internal/app/store/invoices"
	notestore "github.com/dalemusser/classhub/internal/app/store/notes"
	"github.com/dalemusser/classhub/internal/app/store/oauthstate"
	progressstore "github.com/dalemusser/classhub/internal/app/store/progress"
	schedulestore "github.com/dalemusser/classhub/internal/app/store/schedules"
	userstore "github.com/dalemusser/classhub/internal/app/store/users"
	videostore "github.com/dalemusser/classhub/internal/app/store/videos"
	"github.com/dalemusser/classhub/internal/app/system/auth"
	"github.com/dalemusser/classhub/internal/app/system/token"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// ClassHub is a JSON API for a browser frontend: CORS with credentials so
// the auth cookie travels, a session middleware that resolves the current
// user on every request, and feature routers mounted under /api.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.ClassHubMongoDatabase

	// Stores
	users := userstore.New(db)
	classes := classstore.New(db)
	enrollments := enrollmentstore.New(db)
	videos := videostore.New(db)
	announcements := announcementstore.New(db)
	assignments := assignmentstore.New(db)
	notes := notestore.New(db)
	attendance := attendancestore.New(db)
	progress := progressstore.New(db)
	credits := creditstore.New(db)
	invoices := invoicestore.New(db)
	schedules := schedulestore.New(db)
	oauthStates := oauthstate.New(db)

	// Session manager around the token issuer. Secure cookies are enabled
	// in production mode; fetching fresh user data per request means role
	// changes and deletions take effect immediately.
	secure := coreCfg.Env == "prod"
	issuer := token.New([]byte(appCfg.TokenSecret), appCfg.TokenTTL)
	sessionMgr := auth.NewSessionManager(issuer, appCfg.CookieDomain, secure, logger)
	sessionMgr.SetUserFetcher(userstore.NewFetcher(db))

	r := chi.NewRouter()

	// CORS with credentials so the browser sends the auth cookie.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   splitOrigins(appCfg.AllowedOrigins),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.ClassHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Route("/api", func(r chi.Router) {
		// Public surface
		homeHandler := homefeature.NewHandler()
		r.Mount("/", homefeature.Routes(homeHandler))

		authHandler := authapifeature.NewHandler(users, sessionMgr, logger)
		r.Mount("/auth", authapifeature.Routes(authHandler))

		googleHandler := authgooglefeature.NewHandler(users, oauthStates,
			appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, logger)
		r.Mount("/google", authgooglefeature.Routes(googleHandler, sessionMgr))

		// Everything below requires a signed-in user; finer role checks
		// live in the handlers so each surface keeps its own 403 wording.
		r.Group(func(r chi.Router) {
			r.Use(sessionMgr.RequireSignedIn)

			classesHandler := classesfeature.NewHandler(classes, enrollments, users, logger)
			r.Mount("/classes", classesfeature.Routes(classesHandler, classesfeature.Subrouters{
				Announcements: announcementsfeature.Routes(announcementsfeature.NewHandler(announcements, classes, logger)),
				Assignments:   assignmentsfeature.Routes(assignmentsfeature.NewHandler(assignments, classes, logger)),
				Notes:         notesfeature.Routes(notesfeature.NewHandler(notes, classes, logger)),
				Attendance:    attendancefeature.Routes(attendancefeature.NewHandler(attendance, classes, logger)),
				Progress:      progressfeature.Routes(progressfeature.NewHandler(progress, classes, logger)),
			}))

			enrollHandler := enrollmentsfeature.NewHandler(enrollments, classes, logger)
			r.Mount("/enrollments", enrollmentsfeature.Routes(enrollHandler))

			videosHandler := videosfeature.NewHandler(videos, logger)
			r.Mount("/videos", videosfeature.Routes(videosHandler))

			usersHandler := usersfeature.NewHandler(users, logger)
			r.Mount("/users", usersfeature.Routes(usersHandler, sessionMgr))

			creditsHandler := creditsfeature.NewHandler(credits, users, logger)
			r.Mount("/credits", creditsfeature.Routes(creditsHandler, sessionMgr))

			invoicesHandler := invoicesfeature.NewHandler(invoices, logger)
			r.Mount("/invoices", invoicesfeature.Routes(invoicesHandler, sessionMgr))

			scheduleHandler := schedulefeature.NewHandler(schedules, logger)
			r.Mount("/schedule", schedulefeature.Routes(scheduleHandler))
		})
	})

	return r, nil
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		out = []string{"*"}
	}
	return out
}

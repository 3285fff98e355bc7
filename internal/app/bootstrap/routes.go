// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	accountfeature "github.com/homeclass/portal/internal/app/features/account"
	alertsfeature "github.com/homeclass/portal/internal/app/features/alerts"
	announcementsfeature "github.com/homeclass/portal/internal/app/features/announcements"
	assignmentsfeature "github.com/homeclass/portal/internal/app/features/assignments"
	authgooglefeature "github.com/homeclass/portal/internal/app/features/authgoogle"
	chatfeature "github.com/homeclass/portal/internal/app/features/chat"
	directoryfeature "github.com/homeclass/portal/internal/app/features/directory"
	eventsfeature "github.com/homeclass/portal/internal/app/features/events"
	feedfeature "github.com/homeclass/portal/internal/app/features/feed"
	healthfeature "github.com/homeclass/portal/internal/app/features/health"
	inboxfeature "github.com/homeclass/portal/internal/app/features/inbox"
	schoolsfeature "github.com/homeclass/portal/internal/app/features/schools"
	statefeature "github.com/homeclass/portal/internal/app/features/state"
	uploadsfeature "github.com/homeclass/portal/internal/app/features/uploads"
	yearbookfeature "github.com/homeclass/portal/internal/app/features/yearbook"
	"github.com/homeclass/portal/internal/app/feedsync"
	"github.com/homeclass/portal/internal/app/notify"
	alertstore "github.com/homeclass/portal/internal/app/store/alerts"
	announcementstore "github.com/homeclass/portal/internal/app/store/announcements"
	assignmentstore "github.com/homeclass/portal/internal/app/store/assignments"
	chatstore "github.com/homeclass/portal/internal/app/store/chatmessages"
	conversationstore "github.com/homeclass/portal/internal/app/store/conversations"
	eventstore "github.com/homeclass/portal/internal/app/store/events"
	readmarkstore "github.com/homeclass/portal/internal/app/store/readmarks"
	userstore "github.com/homeclass/portal/internal/app/store/users"
	yearbookstore "github.com/homeclass/portal/internal/app/store/yearbook"
	"github.com/homeclass/portal/internal/app/system/auth"
	"github.com/homeclass/portal/internal/app/system/push"
	"github.com/homeclass/portal/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. The portal exposes a JSON API under
// /api, the live feed socket at /api/feed, Google OAuth under /auth/google,
// and uploaded images as static files under /uploads.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	db := deps.MongoDatabase

	// Push delivery is best effort: without a relay configured we log
	// and drop instead of failing API writes.
	var sender push.Sender
	if appCfg.PushRelayURL != "" {
		sender = push.NewHTTPSender(appCfg.PushRelayURL, logger)
	} else {
		logger.Info("no push relay configured; notifications are logged only")
		sender = push.NewDummySender()
	}
	dispatcher := notify.NewDispatcher(userstore.New(db), sender, logger)

	feedDeps := feedsync.Deps{
		Users:         userstore.New(db),
		Assignments:   assignmentstore.New(db),
		Chat:          chatstore.New(db),
		Conversations: conversationstore.New(db),
		Alerts:        alertstore.New(db),
		Yearbook:      yearbookstore.New(db),
		Announcements: announcementstore.New(db),
		Events:        eventstore.New(db),
		ReadMarks:     readmarkstore.New(db),
		Log:           logger,
	}

	// Live feed sessions, shared by the socket and the REST state
	// endpoints so tab switches reach open sockets.
	liveSessions := feedsync.NewRegistry()

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Uploaded images, served with pre-compressed file support.
	r.Handle("/uploads/*", fileserver.Handler("/uploads", appCfg.UploadDir))

	// Google sign-in (optional; returns 404s when not configured).
	if appCfg.GoogleClientID != "" {
		googleHandler := authgooglefeature.NewHandler(db, sessionMgr, appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, logger)
		r.Route("/auth/google", googleHandler.MountRoutes)
	}

	r.Route("/api", func(api chi.Router) {
		// Public: signup/login plus the school registry the signup
		// form needs. School mutations are superadmin-gated in-handler.
		accountHandler := accountfeature.NewHandler(db, sessionMgr, logger)
		api.Route("/auth", accountHandler.MountRoutes)

		schoolsHandler := schoolsfeature.NewHandler(db, logger)
		api.Route("/schools", schoolsHandler.MountRoutes)

		// Everything below requires a signed-in user.
		api.Group(func(priv chi.Router) {
			priv.Use(sessionMgr.RequireSignedIn)

			directoryHandler := directoryfeature.NewHandler(db, logger)
			priv.Route("/directory", directoryHandler.MountRoutes)

			assignmentsHandler := assignmentsfeature.NewHandler(db, dispatcher, logger)
			priv.Route("/homework", assignmentsHandler.MountRoutes)

			chatHandler := chatfeature.NewHandler(db, dispatcher, logger)
			priv.Route("/chat", chatHandler.MountRoutes)

			inboxHandler := inboxfeature.NewHandler(db, dispatcher, logger)
			priv.Route("/inbox", inboxHandler.MountRoutes)

			alertsHandler := alertsfeature.NewHandler(db, dispatcher, logger)
			priv.Route("/alerts", alertsHandler.MountRoutes)

			yearbookHandler := yearbookfeature.NewHandler(db, logger)
			priv.Route("/journal", yearbookHandler.MountRoutes)

			announcementsHandler := announcementsfeature.NewHandler(db, dispatcher, logger)
			priv.Route("/announcements", func(rr chi.Router) {
				announcementsHandler.MountRoutes(rr, sessionMgr.RequireRole(models.StaffRoles...))
			})

			eventsHandler := eventsfeature.NewHandler(db, logger)
			priv.Route("/events", eventsHandler.MountRoutes)

			uploadsHandler := uploadsfeature.NewHandler(appCfg.UploadDir, logger)
			priv.Route("/uploads", uploadsHandler.MountRoutes)

			stateHandler := statefeature.NewHandler(db, liveSessions, logger)
			priv.Route("/state", stateHandler.MountRoutes)

			feedHandler := feedfeature.NewHandler(feedDeps, liveSessions, logger)
			priv.Route("/feed", feedHandler.MountRoutes)
		})
	})

	return r, nil
}

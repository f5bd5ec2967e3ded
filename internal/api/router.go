package api

import (
	"net/http"
	"time"

	"codejarvis/internal/api/handler"
	"codejarvis/internal/api/middleware"
	"codejarvis/internal/common/security"
	"codejarvis/internal/platform/config"
	"codejarvis/internal/web"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(svc handler.Services, pages *web.Renderer) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	// The only deadline on remote calls: they run on the request context.
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// The session cookie is a signed token carrying the session id.
	r.Use(jwtauth.Verify(security.TokenAuth, middleware.TokenFromSessionCookie(config.AppConfig.SessionCookieName)))
	r.Use(middleware.LoadSession(svc.Sessions))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	handler.NewAuthHandler(svc.Sessions, pages).RegisterRoutes(r)

	r.Group(func(private chi.Router) {
		private.Use(middleware.RequireSession)
		handler.NewHomeHandler(svc, pages).RegisterRoutes(private)
		handler.NewContestHandler(svc.Reminders).RegisterRoutes(private)
		handler.NewProblemHandler(svc.Problems, pages).RegisterRoutes(private)
		handler.NewSettingsHandler(svc.Settings).RegisterRoutes(private)
	})

	r.Route("/api/codespace", handler.NewSubmissionHandler(svc.CodeSpace).RegisterRoutes)

	return r
}

package handler

import (
	"log"
	"net/http"
	"net/url"

	"codejarvis/internal/api/middleware"
	"codejarvis/internal/app/service"
	"codejarvis/internal/common/security"
	"codejarvis/internal/platform/config"
	"codejarvis/internal/web"

	"github.com/go-chi/chi/v5"
)

const loginFailedMessage = "Sign-in is unavailable right now. Please try again."

type AuthHandler struct {
	sessionService *service.SessionService
	pages          *web.Renderer
}

func NewAuthHandler(sessionService *service.SessionService, pages *web.Renderer) *AuthHandler {
	return &AuthHandler{sessionService: sessionService, pages: pages}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(public chi.Router) {
		public.Use(middleware.PublicOnly)
		public.Get("/", h.landing)
		public.Get("/login", h.login)
	})
	r.Get("/auth/callback", h.callback)
	r.Get("/auth/callback/complete", h.completeLogin)
	r.Post("/logout", h.logout)
}

func (h *AuthHandler) landing(w http.ResponseWriter, r *http.Request) {
	page := landingPage{}
	if r.URL.Query().Get("error") != "" {
		page.Error = loginFailedMessage
	}
	h.pages.Render(w, http.StatusOK, "landing", page)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	target, err := h.sessionService.LoginURL(r.Context())
	if err != nil {
		log.Printf("ERROR: %v", err)
		http.Redirect(w, r, "/?error=login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// callback receives the provider redirect. The token normally arrives in the
// URL fragment, which only the browser can read, so the page script forwards
// it to completeLogin.
func (h *AuthHandler) callback(w http.ResponseWriter, r *http.Request) {
	if token := r.URL.Query().Get("token"); token != "" {
		http.Redirect(w, r, "/auth/callback/complete?token="+url.QueryEscape(token), http.StatusSeeOther)
		return
	}
	h.pages.Render(w, http.StatusOK, "callback", nil)
}

func (h *AuthHandler) completeLogin(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	session, err := h.sessionService.Login(r.Context(), token)
	if err != nil {
		log.Printf("ERROR: Login failed: %v", err)
		http.Redirect(w, r, "/?error=login", http.StatusSeeOther)
		return
	}
	cookieToken, err := security.GenerateSessionCookieToken(session.ID)
	if err != nil {
		log.Printf("ERROR: Failed to sign session cookie: %v", err)
		http.Redirect(w, r, "/?error=login", http.StatusSeeOther)
		return
	}
	setSessionCookie(w, cookieToken)
	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	if session, ok := middleware.GetSessionFromContext(r.Context()); ok {
		if err := h.sessionService.Logout(r.Context(), session.ID); err != nil {
			log.Printf("ERROR: %v", err)
		}
	}
	clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func setSessionCookie(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     config.AppConfig.SessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   config.AppConfig.SessionCookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     config.AppConfig.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   config.AppConfig.SessionCookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

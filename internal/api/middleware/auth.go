package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"

	"codejarvis/internal/common"
	"codejarvis/internal/common/security"
	"codejarvis/internal/domain/model"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const SessionCtxKey contextKey = "session"

// SessionProvider resolves a session id to the stored session.
type SessionProvider interface {
	Current(ctx context.Context, sessionID string) (*model.Session, error)
}

// LoadSession resolves the verified cookie claims to a stored session and
// puts it in the request context. Requests without one pass through
// anonymous; the guards below decide what that means.
func LoadSession(sessions SessionProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				next.ServeHTTP(w, r)
				return
			}
			sessionID, err := security.GetSessionIDFromClaims(claims)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			session, err := sessions.Current(r.Context(), sessionID)
			if err != nil {
				if !errors.Is(err, common.ErrNoSession) {
					log.Printf("ERROR: Failed to load session %s: %v", sessionID, err)
				}
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), SessionCtxKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession sends visitors without a session to the landing page.
// Whether the remote token is still valid is not checked here.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetSessionFromContext(r.Context()); !ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSessionJSON is RequireSession for the JSON endpoints.
func RequireSessionJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetSessionFromContext(r.Context()); !ok {
			common.RespondWithError(w, http.StatusUnauthorized, "Sign in required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// PublicOnly sends signed-in visitors straight to the dashboard.
func PublicOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetSessionFromContext(r.Context()); ok {
			http.Redirect(w, r, "/home", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetSessionFromContext(ctx context.Context) (*model.Session, bool) {
	session, ok := ctx.Value(SessionCtxKey).(*model.Session)
	return session, ok && session != nil
}

// TokenFromSessionCookie is a jwtauth token finder for the named cookie.
func TokenFromSessionCookie(name string) func(r *http.Request) string {
	return func(r *http.Request) string {
		cookie, err := r.Cookie(name)
		if err != nil {
			return ""
		}
		return cookie.Value
	}
}

package api

import (
	"log/slog"
	"net/http"

	"github.com/terra-clan/catalogue-browser/internal/session"
)

// SessionCookieName is the cookie carrying the browser session ID
const SessionCookieName = "catalogue_session"

// SessionMiddleware binds each request to a browser session
type SessionMiddleware struct {
	sessions *session.Manager
}

// NewSessionMiddleware creates new session middleware
func NewSessionMiddleware(sessions *session.Manager) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions}
}

// Attach resolves the session cookie, opening a fresh session when the
// cookie is missing or no longer valid, and stores the ID in the context.
func (m *SessionMiddleware) Attach(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var current string
		if cookie, err := r.Cookie(SessionCookieName); err == nil {
			current = cookie.Value
		}

		id, err := m.sessions.Open(r.Context(), current)
		if err != nil {
			slog.Error("failed to open session", "error", err)
			respondError(w, http.StatusServiceUnavailable, "session_unavailable", "session store unavailable")
			return
		}

		if id != current {
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookieName,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		next.ServeHTTP(w, r.WithContext(ContextWithSessionID(r.Context(), id)))
	})
}

package middleware

import (
	"context"
	"net/http"

	"github.com/maisonbelle/storefront/internal/clientstore"
)

type contextKey string

const sessionKey contextKey = "storefront.session"

// SessionCookie is the cookie carrying the client-session identifier. The
// session maps to the browser tab's durable storage: cart, wishlist, token
// and currency all key off it.
const SessionCookie = "mb_session"

// Session issues a session ID cookie on first visit and puts the ID on the
// request context for handlers.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sessionID string
		if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
			sessionID = c.Value
		} else {
			sessionID = clientstore.NewSessionID()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    sessionID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := context.WithValue(r.Context(), sessionKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionID returns the session identifier set by Session.
func SessionID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionKey).(string)
	return id, ok && id != ""
}

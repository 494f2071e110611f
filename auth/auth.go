// Package auth holds the login session of a request. There is no global
// login flag: the session travels in the request context and is persisted
// in a signed cookie by Manager.
package auth

import (
	"context"
	"net/http"

	"github.com/diewo77/gst-invoices/httpx"
)

type ctxKey string

const sessionCtxKey = ctxKey("session")

// Session is the login state of one client. The zero value is logged out.
type Session struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
}

func (s Session) Authenticated() bool { return s.UserID != 0 }

// Login returns the session for a user who just proved their credentials.
func Login(userID int64, email, name string) Session {
	return Session{UserID: userID, Email: email, Name: name}
}

// Logout returns the logged-out session.
func Logout() Session { return Session{} }

// WithSession stores s in ctx.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey, s)
}

// FromContext returns the session stored in ctx, or the logged-out session.
func FromContext(ctx context.Context) Session {
	s, _ := ctx.Value(sessionCtxKey).(Session)
	return s
}

// RequireAuth rejects requests without an authenticated session with 401 JSON.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !FromContext(r.Context()).Authenticated() {
			httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

package auth

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	sessionCookieName = "gst_session"
	sessionMaxAge     = 14 * 24 * 60 * 60

	keyUserID = "uid"
	keyEmail  = "email"
	keyName   = "name"
)

// UserVerifier reports whether a session's user still exists.
type UserVerifier func(ctx context.Context, userID int64) bool

// Manager persists sessions in a signed cookie.
type Manager struct {
	store  *sessions.CookieStore
	verify UserVerifier
}

type Option func(*Manager)

// WithVerifier drops sessions whose user fails verify.
func WithVerifier(verify UserVerifier) Option {
	return func(m *Manager) { m.verify = verify }
}

// WithSecureCookie marks the cookie Secure (HTTPS only).
func WithSecureCookie(secure bool) Option {
	return func(m *Manager) { m.store.Options.Secure = secure }
}

func NewManager(secret []byte, opts ...Option) *Manager {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	m := &Manager{store: store}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load reads the session from the request cookie. A missing, expired or
// tampered cookie yields the logged-out session.
func (m *Manager) Load(r *http.Request) Session {
	sess, err := m.store.Get(r, sessionCookieName)
	if err != nil {
		return Logout()
	}
	uid, _ := sess.Values[keyUserID].(int64)
	if uid == 0 {
		return Logout()
	}
	email, _ := sess.Values[keyEmail].(string)
	name, _ := sess.Values[keyName].(string)
	return Login(uid, email, name)
}

// Save writes s to the response cookie. Saving the logged-out session
// expires the cookie.
func (m *Manager) Save(w http.ResponseWriter, r *http.Request, s Session) error {
	sess, err := m.store.Get(r, sessionCookieName)
	if err != nil && sess == nil {
		return errors.Wrap(err, "load session")
	}
	if !s.Authenticated() {
		sess.Values = map[interface{}]interface{}{}
		sess.Options.MaxAge = -1
	} else {
		sess.Values[keyUserID] = s.UserID
		sess.Values[keyEmail] = s.Email
		sess.Values[keyName] = s.Name
		sess.Options.MaxAge = sessionMaxAge
	}
	return errors.Wrap(sess.Save(r, w), "save session")
}

// Middleware injects the cookie session into the request context. Sessions
// pointing at users that no longer exist are cleared.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := m.Load(r)
		if s.Authenticated() && m.verify != nil && !m.verify(r.Context(), s.UserID) {
			if err := m.Save(w, r, Logout()); err != nil {
				zap.L().Warn("clear stale session", zap.Error(err))
			}
			s = Logout()
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	})
}

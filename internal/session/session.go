package session

import (
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

const (
	// CookieName is the name of the session cookie.
	CookieName = "routinelog_session"

	userIDKey = "user_id"
)

// Manager maps the session cookie to the logged-in user id. The user id is
// the only value ever stored in a session.
type Manager struct {
	store *sessions.CookieStore
	name  string
}

// NewManager builds a cookie-backed session manager. The TTL becomes the
// cookie MaxAge, so session expiry is explicit rather than browser-defined.
func NewManager(secret string, ttl time.Duration) *Manager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{store: store, name: CookieName}
}

// UserID reports the user id bound to the request's session, if any.
// A cookie that fails to decode counts as no session.
func (m *Manager) UserID(r *http.Request) (int, bool) {
	sess, err := m.store.Get(r, m.name)
	if err != nil {
		return 0, false
	}
	raw, ok := sess.Values[userIDKey]
	if !ok {
		return 0, false
	}
	id, ok := raw.(int)
	if !ok || id < 1 {
		return 0, false
	}
	return id, true
}

// SetUserID binds the session to the given user id, replacing any
// previously logged-in user.
func (m *Manager) SetUserID(w http.ResponseWriter, r *http.Request, id int) error {
	sess, err := m.store.Get(r, m.name)
	if err != nil {
		// A stale or tampered cookie decodes to an error but still
		// yields a fresh session to write into.
		sess, _ = m.store.New(r, m.name)
	}
	sess.Values[userIDKey] = id
	return sess.Save(r, w)
}

// Clear logs the session out and expires the cookie.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, err := m.store.Get(r, m.name)
	if err != nil {
		return err
	}
	delete(sess.Values, userIDKey)
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

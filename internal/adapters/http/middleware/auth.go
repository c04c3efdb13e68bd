package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"time"

	"flotenn/internal/domain/account"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const sessionContextKey contextKey = "session"

// SessionTTL is how long a sign-in lasts.
const SessionTTL = 24 * time.Hour

// Session is the authenticated identity plus its resolved role.
type Session struct {
	AccountID string
	Name      string
	Email     string
	Role      account.Role
	CreatedAt time.Time
}

// CanWrite reports whether the session may perform admin mutations.
func (s Session) CanWrite() bool {
	return s.Role.CanWrite()
}

// SessionEventKind says what happened to a session.
type SessionEventKind string

const (
	SessionSignedIn  SessionEventKind = "signed_in"
	SessionSignedOut SessionEventKind = "signed_out"
	SessionExpired   SessionEventKind = "expired"
)

// SessionEvent is delivered to subscribers after every session change.
type SessionEvent struct {
	Kind    SessionEventKind
	Session Session
}

// SessionStore is an in-memory session store living for the whole process.
type SessionStore struct {
	mu          sync.Mutex
	sessions    map[string]Session
	subscribers map[int]func(SessionEvent)
	nextSub     int
	now         func() time.Time
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions:    make(map[string]Session),
		subscribers: make(map[int]func(SessionEvent)),
		now:         time.Now,
	}
}

// Subscribe registers fn for every subsequent session change and returns a
// function that removes it. Callbacks run synchronously, outside the store's
// lock, in subscription order.
func (ss *SessionStore) Subscribe(fn func(SessionEvent)) (unsubscribe func()) {
	ss.mu.Lock()
	id := ss.nextSub
	ss.nextSub++
	ss.subscribers[id] = fn
	ss.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			ss.mu.Lock()
			delete(ss.subscribers, id)
			ss.mu.Unlock()
		})
	}
}

func (ss *SessionStore) publish(ev SessionEvent) {
	ss.mu.Lock()
	ids := make([]int, 0, len(ss.subscribers))
	for id := range ss.subscribers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(SessionEvent), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, ss.subscribers[id])
	}
	ss.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// Create signs a in and returns the session token.
// PRE: a has a valid role
// POST: Session is stored; subscribers see SessionSignedIn
func (ss *SessionStore) Create(a account.Account) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	sess := Session{
		AccountID: a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Role:      a.Role,
		CreatedAt: ss.now(),
	}
	ss.mu.Lock()
	ss.sessions[token] = sess
	ss.mu.Unlock()

	ss.publish(SessionEvent{Kind: SessionSignedIn, Session: sess})
	return token, nil
}

// Get returns the current session for token.
// POST: Expired sessions are removed and reported as absent
func (ss *SessionStore) Get(token string) (Session, bool) {
	ss.mu.Lock()
	sess, ok := ss.sessions[token]
	expired := ok && ss.now().Sub(sess.CreatedAt) > SessionTTL
	if expired {
		delete(ss.sessions, token)
	}
	ss.mu.Unlock()

	if expired {
		ss.publish(SessionEvent{Kind: SessionExpired, Session: sess})
		return Session{}, false
	}
	return sess, ok
}

// Delete signs the session for token out. Unknown tokens are ignored.
// POST: Subscribers see SessionSignedOut when a session was removed
func (ss *SessionStore) Delete(token string) {
	ss.mu.Lock()
	sess, ok := ss.sessions[token]
	delete(ss.sessions, token)
	ss.mu.Unlock()

	if ok {
		ss.publish(SessionEvent{Kind: SessionSignedOut, Session: sess})
	}
}

// DeleteForAccount signs every session of accountID out, e.g. after the
// account is deleted or its password is reset. It returns how many were removed.
func (ss *SessionStore) DeleteForAccount(accountID string) int {
	ss.mu.Lock()
	var removed []Session
	for token, sess := range ss.sessions {
		if sess.AccountID == accountID {
			removed = append(removed, sess)
			delete(ss.sessions, token)
		}
	}
	ss.mu.Unlock()

	for _, sess := range removed {
		ss.publish(SessionEvent{Kind: SessionSignedOut, Session: sess})
	}
	return len(removed)
}

// Refresh replaces the identity fields of every session of a, keeping tokens
// and creation times. It is called after an account edit so role changes take
// effect immediately.
func (ss *SessionStore) Refresh(a account.Account) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	for token, sess := range ss.sessions {
		if sess.AccountID == a.ID {
			sess.Name, sess.Email, sess.Role = a.Name, a.Email, a.Role
			ss.sessions[token] = sess
		}
	}
}

const sessionCookieName = "flotenn_session"

// SecureCookies marks session cookies Secure. Set in production.
var SecureCookies = false

// LoginPath is where unauthenticated admin requests are sent.
const LoginPath = "/admin/login"

// Auth returns middleware that extracts the session from the cookie and puts it
// in the request context. It does not block anonymous requests.
func Auth(sessions *SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := SessionToken(r); token != "" {
				if sess, ok := sessions.Get(token); ok {
					r = r.WithContext(ContextWithSession(r.Context(), sess))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth blocks anonymous requests by redirecting to the login page.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetSessionFromContext(r.Context()); !ok {
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole blocks requests whose role is not in required. An empty set
// admits every signed-in role. Viewers are additionally refused every
// non-GET request.
func RequireRole(required account.RoleSet) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := GetSessionFromContext(r.Context())
			if !ok {
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}
			if !account.IsAuthorized(sess.Role, required) {
				slog.Warn("auth_denied", "path", r.URL.Path, "account_id", sess.AccountID, "role", sess.Role)
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			if r.Method != http.MethodGet && r.Method != http.MethodHead && !sess.CanWrite() {
				slog.Warn("auth_denied", "path", r.URL.Path, "account_id", sess.AccountID, "role", sess.Role, "reason", "read_only")
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetSessionFromContext extracts the session from the request context.
func GetSessionFromContext(ctx context.Context) (Session, bool) {
	sess, ok := ctx.Value(sessionContextKey).(Session)
	return sess, ok
}

// ContextWithSession returns a context carrying sess.
func ContextWithSession(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}

// SessionToken returns the session cookie value, or "" when absent.
func SessionToken(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// SetSessionCookie sets the session cookie on the response.
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   int(SessionTTL.Seconds()),
	})
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

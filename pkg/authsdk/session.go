package authsdk

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"
)

// expiryBuffer is subtracted from the server-reported token lifetime so the
// session refreshes shortly before actual expiry.
const expiryBuffer = 30 * time.Second

// Session represents an authenticated session with automatic token renewal.
// All Session methods handle access token expiration transparently: the
// session refreshes proactively via the refresh cookie, adopts renewed
// tokens the server hands back mid-request, and retries a rejected request
// once after a forced renewal.
//
// Every holder of the old token can learn about a renewal through
// Subscribe; when renewal itself fails the session clears all credential
// state and notifies with an empty token, at which point the caller must
// log in again.
//
// Sessions are safe for concurrent use.
type Session struct {
	client *SDKClient

	mu          sync.RWMutex
	accessToken string
	expiresAt   time.Time
	tokenTTL    time.Duration
	user        User

	listeners  map[int]func(accessToken string)
	listenerID int
}

// newSession creates an authenticated session from an auth response. The
// refresh token never appears here; it lives in the client's cookie jar.
func newSession(client *SDKClient, auth *AuthResponse) *Session {
	ttl := time.Duration(auth.ExpiresIn) * time.Second

	return &Session{
		client:      client,
		accessToken: auth.AccessToken,
		expiresAt:   time.Now().Add(ttl - expiryBuffer),
		tokenTTL:    ttl,
		user:        auth.User,
		listeners:   make(map[int]func(string)),
	}
}

// Subscribe registers a listener invoked after every token change: with the
// new access token on renewal, and with an empty string when the session
// dies (failed renewal or logout). The returned function unsubscribes.
//
// Listeners run synchronously on the goroutine that triggered the change
// and must not block.
func (s *Session) Subscribe(fn func(accessToken string)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listenerID++
	id := s.listenerID
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// notify fans a token change out to subscribers. Must be called without the
// session lock held.
func (s *Session) notify(token string) {
	s.mu.RLock()
	fns := make([]func(string), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(token)
	}
}

// getValidToken returns a valid access token, refreshing through the cookie
// jar if the current one is past its local expiry. Concurrent callers
// coalesce on the write lock so only one refresh request goes out; everyone
// waiting gets the single result.
func (s *Session) getValidToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	if time.Now().Before(s.expiresAt) {
		token := s.accessToken
		s.mu.RUnlock()
		return token, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()

	// Another goroutine may have refreshed while we waited for the lock.
	if time.Now().Before(s.expiresAt) {
		token := s.accessToken
		s.mu.Unlock()
		return token, nil
	}

	token, err := s.refreshLocked(ctx)
	s.mu.Unlock()

	if err == nil || errors.Is(err, ErrSessionExpired) {
		s.notify(token)
	}
	return token, err
}

// forceRefresh discards the current token and refreshes unconditionally.
func (s *Session) forceRefresh(ctx context.Context) (string, error) {
	s.mu.Lock()
	token, err := s.refreshLocked(ctx)
	s.mu.Unlock()

	if err == nil || errors.Is(err, ErrSessionExpired) {
		s.notify(token)
	}
	return token, err
}

// refreshLocked performs the refresh call and updates or clears the
// session state. Callers must hold the write lock and fan out the returned
// token to subscribers after releasing it.
func (s *Session) refreshLocked(ctx context.Context) (string, error) {
	auth, err := s.client.Refresh(ctx)
	if err != nil {
		// A spent refresh cookie is unrecoverable: drop every credential
		// so no stale token lingers, and surface the expiry.
		if errors.Is(err, ErrSessionExpired) || errors.Is(err, ErrUnauthorized) {
			s.clearLocked()
			return "", ErrSessionExpired
		}
		return s.accessToken, err
	}

	s.tokenTTL = time.Duration(auth.ExpiresIn) * time.Second
	s.accessToken = auth.AccessToken
	s.expiresAt = time.Now().Add(s.tokenTTL - expiryBuffer)
	s.user = auth.User

	return s.accessToken, nil
}

func (s *Session) clearLocked() {
	s.accessToken = ""
	s.expiresAt = time.Time{}
	s.user = User{}
}

// adoptToken replaces the access token with one the server renewed
// transparently mid-request. The server mints these with the full access
// lifetime.
func (s *Session) adoptToken(token string) {
	s.mu.Lock()
	s.accessToken = token
	s.expiresAt = time.Now().Add(s.tokenTTL - expiryBuffer)
	s.mu.Unlock()

	s.notify(token)
}

// AccessToken returns the current access token without checking expiration.
// Prefer the Session methods, which handle renewal automatically.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// User returns the account snapshot from the most recent auth response.
func (s *Session) User() User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Logout clears the refresh cookie server-side and drops all local
// credential state. There is no server-side revocation list: an access
// token already issued stays valid until its natural expiry.
func (s *Session) Logout(ctx context.Context) error {
	resp, err := s.client.doRequest(ctx, http.MethodPost, "/v1/logout", nil, nil)
	if err != nil {
		return err
	}

	var msg MessageResponse
	if err := decodeJSON(resp, &msg, http.StatusOK); err != nil {
		return err
	}

	s.mu.Lock()
	s.clearLocked()
	s.mu.Unlock()

	s.notify("")
	return nil
}

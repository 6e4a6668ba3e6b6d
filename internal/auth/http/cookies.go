package http

import (
	"net/http"
	"time"
)

// RefreshCookieName is the cookie that carries the refresh token. The token
// never appears in a response body; HttpOnly keeps it out of script reach.
const RefreshCookieName = "refresh_token"

// CookiePolicy controls the attributes of the refresh cookie. Secure is off
// for local development over plain HTTP and must be on in production.
type CookiePolicy struct {
	Secure bool
}

// SetRefresh writes the refresh cookie. Scoped to /v1 so it rides along on
// every API call, letting the gate renew access tokens transparently.
func (p CookiePolicy) SetRefresh(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    token,
		Path:     "/v1",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   p.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearRefresh expires the refresh cookie.
func (p CookiePolicy) ClearRefresh(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    "",
		Path:     "/v1",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   p.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

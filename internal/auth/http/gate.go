package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cartloop/storefront-auth/internal/auth/domain"
	"github.com/cartloop/storefront-auth/internal/auth/service"
	"github.com/cartloop/storefront-auth/internal/auth/store"
	"github.com/cartloop/storefront-auth/pkg/authsdk"
	"github.com/cartloop/storefront-auth/pkg/httpx"
	"github.com/cartloop/storefront-auth/pkg/jwtx"
	"github.com/cartloop/storefront-auth/pkg/slogx"
)

// Gate authenticates protected routes and enforces role requirements.
//
// An expired or absent access token is not fatal: if the request carries
// a valid refresh cookie the gate mints a fresh access token, returns it
// in the X-New-Access-Token response header, and lets the request
// through. Any other token failure (bad signature, malformed) is
// terminal: a tampered token must never reach the refresh path.
//
// The principal and role are read from the store on every request, so a
// deleted account's outstanding tokens stop working immediately and role
// changes bind without waiting for a renewal.
type Gate struct {
	Tokens  *service.TokenService
	Cookies CookiePolicy
}

// Require builds a middleware that admits only the given roles. With no
// roles listed, any authenticated user passes.
func (g *Gate) Require(roles ...domain.Role) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				// A fresh tab or a restarted client arrives with no
				// access token at all. The refresh cookie still proves
				// the session, so renew in-flight instead of forcing a
				// re-login.
				if hasRefreshCookie(r) {
					g.renewAndServe(w, r, next, roles)
					return
				}
				authsdk.ErrUnauthorized.WriteError(w)
				return
			}

			claims, err := g.Tokens.VerifyAccess(token)
			switch {
			case err == nil:
				user, err := g.Tokens.Store.Users().GetUserByID(r.Context(), claims.Subject)
				if err != nil {
					if errors.Is(err, store.ErrNotFound) {
						// The token outlived its principal.
						authsdk.ErrUnauthorized.WriteError(w)
						return
					}
					authsdk.ErrServerError.WriteError(w)
					return
				}
				if !roleAllowed(user.Role, roles) {
					authsdk.ErrForbidden.WriteError(w)
					return
				}
				next.ServeHTTP(w, withIdentity(r, user.ID, string(user.Role)))

			case errors.Is(err, jwtx.ErrExpired):
				g.renewAndServe(w, r, next, roles)

			default:
				slogx.FromContext(r.Context()).Info("rejected access token", slog.Any("error", err))
				authsdk.ErrUnauthorized.WriteError(w)
			}
		})
	}
}

// renewAndServe handles the expired-or-missing-access-token path: redeem
// the refresh cookie, re-check the role against the freshly loaded user,
// and serve the original request with the new token exposed in the
// response header.
func (g *Gate) renewAndServe(w http.ResponseWriter, r *http.Request, next http.Handler, roles []domain.Role) {
	cookie, err := r.Cookie(RefreshCookieName)
	if err != nil || cookie.Value == "" {
		authsdk.ErrSessionExpired.WriteError(w)
		return
	}

	access, user, err := g.Tokens.Refresh(r.Context(), cookie.Value)
	if err != nil {
		g.Cookies.ClearRefresh(w)
		authsdk.ErrSessionExpired.WriteError(w)
		return
	}

	// The role comes from the freshly loaded user, not the dead token.
	if !roleAllowed(user.Role, roles) {
		authsdk.ErrForbidden.WriteError(w)
		return
	}

	w.Header().Set(authsdk.NewAccessTokenHeader, access)
	slogx.FromContext(r.Context()).Debug("renewed access token in-flight", slog.String("user_id", user.ID))

	next.ServeHTTP(w, withIdentity(r, user.ID, string(user.Role)))
}

func hasRefreshCookie(r *http.Request) bool {
	c, err := r.Cookie(RefreshCookieName)
	return err == nil && c.Value != ""
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}

func roleAllowed(role domain.Role, allowed []domain.Role) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

func withIdentity(r *http.Request, userID, role string) *http.Request {
	ctx := context.WithValue(r.Context(), httpx.CtxKeyUserID, userID)
	ctx = context.WithValue(ctx, httpx.CtxKeyRole, role)
	return r.WithContext(ctx)
}

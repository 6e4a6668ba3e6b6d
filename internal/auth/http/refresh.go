package http

import (
	"net/http"

	"github.com/cartloop/storefront-auth/internal/auth/service"
	"github.com/cartloop/storefront-auth/pkg/authsdk"
	"github.com/cartloop/storefront-auth/pkg/httpx"
)

// RefreshHandler serves GET /v1/auth/refresh, the explicit renewal
// endpoint clients call when they notice their access token has expired.
type RefreshHandler struct {
	TokenService *service.TokenService
	Cookies      CookiePolicy
}

// ServeHTTP godoc
//
//	@Summary		Renew access token
//	@Description	Redeems the refresh cookie for a fresh access token. The new token is returned in the body and mirrored in the X-New-Access-Token header.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	authsdk.AuthResponse	"access_token, token_type, expires_in, user"
//	@Failure		401	{object}	authsdk.APIError		"session_expired"
//	@Header			200	{string}	X-New-Access-Token		"renewed access token"
//	@Router			/v1/auth/refresh [get].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(RefreshCookieName)
	if err != nil || cookie.Value == "" {
		authsdk.ErrSessionExpired.WriteError(w)
		return
	}

	access, user, err := h.TokenService.Refresh(r.Context(), cookie.Value)
	if err != nil {
		h.Cookies.ClearRefresh(w)
		authsdk.ErrSessionExpired.WriteError(w)
		return
	}

	w.Header().Set(authsdk.NewAccessTokenHeader, access)
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authsdk.AuthResponse{
		AccessToken: access,
		TokenType:   "Bearer",
		ExpiresIn:   int(h.TokenService.AccessTokenTTL().Seconds()),
		User:        publicUser(user),
	})
}

// LogoutHandler serves POST /v1/logout.
//
// There is no server-side revocation list; logging out clears the refresh
// cookie and the client discards its access token, which dies on its own
// within one access TTL.
type LogoutHandler struct {
	Cookies CookiePolicy
}

// ServeHTTP godoc
//
//	@Summary		Log out
//	@Description	Clears the refresh cookie. The client should discard its access token.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	authsdk.MessageResponse	"message"
//	@Router			/v1/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Cookies.ClearRefresh(w)
	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{Message: "logged out"})
}

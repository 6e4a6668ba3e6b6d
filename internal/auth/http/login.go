package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/cartloop/storefront-auth/internal/auth/service"
	"github.com/cartloop/storefront-auth/pkg/authsdk"
	"github.com/cartloop/storefront-auth/pkg/httpx"
)

// LoginHandler serves POST /v1/login.
type LoginHandler struct {
	TokenService *service.TokenService
	Cookies      CookiePolicy
}

// ServeHTTP godoc
//
//	@Summary		Log in
//	@Description	Authenticates an email/password pair. On success the response carries the access token and the refresh token is set as an HttpOnly cookie.
//	@Description	Failures never reveal whether the email is registered. Ten wrong passwords lock the account for an hour.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		authsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	authsdk.AuthResponse	"access_token, token_type, expires_in, user"
//	@Failure		400		{object}	authsdk.APIError		"invalid_request"
//	@Failure		401		{object}	authsdk.APIError		"invalid_credentials"
//	@Failure		403		{object}	authsdk.APIError		"account_locked"
//	@Router			/v1/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req authsdk.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Email == "" || req.Password == "" {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	pair, user, err := h.TokenService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		var locked *service.AccountLockedError
		switch {
		case errors.As(err, &locked):
			authsdk.AccountLockedError(locked.MinutesRemaining(time.Now())).WriteError(w)
		case errors.Is(err, service.ErrInvalidCredentials):
			authsdk.ErrInvalidCredentials.WriteError(w)
		default:
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}

	h.Cookies.SetRefresh(w, pair.RefreshToken, h.TokenService.RefreshTokenTTL())
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authsdk.AuthResponse{
		AccessToken: pair.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(h.TokenService.AccessTokenTTL().Seconds()),
		User:        publicUser(user),
	})
}

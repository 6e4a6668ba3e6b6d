package http

import (
	"errors"
	"net/http"

	"github.com/cartloop/storefront-auth/internal/auth/service"
	"github.com/cartloop/storefront-auth/pkg/authsdk"
	"github.com/cartloop/storefront-auth/pkg/cryptox"
	"github.com/cartloop/storefront-auth/pkg/httpx"
)

// SignupHandler serves the two-phase signup: stage with an emailed code,
// then verify to create the account.
type SignupHandler struct {
	SignupService *service.SignupService
	Cookies       CookiePolicy
}

// HandleSignup godoc
//
//	@Summary		Start signup
//	@Description	Validates the request and emails a 6-digit verification code. No account exists until the code is verified.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		authsdk.SignupRequest	true	"Signup details"
//	@Success		200		{object}	authsdk.MessageResponse	"message"
//	@Failure		400		{object}	authsdk.APIError		"invalid_request, invalid_email, weak_password, email_taken"
//	@Failure		403		{object}	authsdk.APIError		"code_blacklisted"
//	@Router			/v1/signup [post].
func (h *SignupHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req authsdk.SignupRequest
	if err := decodeBody(r, &req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	err := h.SignupService.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			authsdk.ErrInvalidEmail.WriteError(w)
		case errors.Is(err, cryptox.ErrWeakPassword):
			authsdk.ErrWeakPassword.WriteError(w)
		case errors.Is(err, service.ErrEmailTaken):
			authsdk.ErrEmailTaken.WriteError(w)
		case errors.Is(err, service.ErrCodeBlacklisted):
			authsdk.ErrCodeBlacklisted.WriteError(w)
		default:
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{
		Message: "verification code sent",
	})
}

// HandleVerify godoc
//
//	@Summary		Verify signup code
//	@Description	Redeems the emailed code, creates the account, and signs the user in. The refresh token is set as an HttpOnly cookie.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		authsdk.VerifyOTPRequest	true	"Email and code"
//	@Success		200		{object}	authsdk.AuthResponse		"access_token, token_type, expires_in, user"
//	@Failure		400		{object}	authsdk.APIError			"invalid_request, code_invalid, code_expired"
//	@Failure		403		{object}	authsdk.APIError			"code_blacklisted"
//	@Failure		404		{object}	authsdk.APIError			"not_found"
//	@Router			/v1/verify-otp [post].
func (h *SignupHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	var req authsdk.VerifyOTPRequest
	if err := decodeBody(r, &req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Email == "" || req.Code == "" {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	pair, user, err := h.SignupService.VerifySignup(r.Context(), req.Email, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCodeNotFound):
			authsdk.ErrNotFound.WriteError(w)
		case errors.Is(err, service.ErrCodeBlacklisted):
			authsdk.ErrCodeBlacklisted.WriteError(w)
		case errors.Is(err, service.ErrCodeExpired):
			authsdk.ErrCodeExpired.WriteError(w)
		case errors.Is(err, service.ErrCodeInvalid):
			authsdk.ErrCodeInvalid.WriteError(w)
		default:
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}

	tokens := h.SignupService.Tokens
	h.Cookies.SetRefresh(w, pair.RefreshToken, tokens.RefreshTokenTTL())
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authsdk.AuthResponse{
		AccessToken: pair.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(tokens.AccessTokenTTL().Seconds()),
		User:        publicUser(user),
	})
}

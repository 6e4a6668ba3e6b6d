package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/cartloop/storefront-auth/internal/auth/service"
	"github.com/cartloop/storefront-auth/pkg/authsdk"
	"github.com/cartloop/storefront-auth/pkg/cryptox"
	"github.com/cartloop/storefront-auth/pkg/httpx"
)

// PasswordHandler serves the password change and reset endpoints.
type PasswordHandler struct {
	PasswordService *service.PasswordService
}

// HandleChange godoc
//
//	@Summary		Change password
//	@Description	Rotates the password of the authenticated account after re-checking the current one.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			body	body		authsdk.ChangePasswordRequest	true	"Current and new password"
//	@Success		200		{object}	authsdk.MessageResponse			"message"
//	@Failure		400		{object}	authsdk.APIError				"invalid_request, weak_password"
//	@Failure		401		{object}	authsdk.APIError				"invalid_credentials"
//	@Failure		403		{object}	authsdk.APIError				"account_locked"
//	@Security		BearerAuth
//	@Router			/v1/changepassword [put].
func (h *PasswordHandler) HandleChange(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())
	if userID == "" {
		authsdk.ErrUnauthorized.WriteError(w)
		return
	}

	var req authsdk.ChangePasswordRequest
	if err := decodeBody(r, &req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	err := h.PasswordService.Change(r.Context(), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		var locked *service.AccountLockedError
		switch {
		case errors.As(err, &locked):
			authsdk.AccountLockedError(locked.MinutesRemaining(time.Now())).WriteError(w)
		case errors.Is(err, service.ErrInvalidCredentials):
			authsdk.ErrInvalidCredentials.WriteError(w)
		case errors.Is(err, cryptox.ErrWeakPassword):
			authsdk.ErrWeakPassword.WriteError(w)
		case errors.Is(err, service.ErrUserNotFound):
			authsdk.ErrNotFound.WriteError(w)
		default:
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{Message: "password changed"})
}

// HandleSendOTP godoc
//
//	@Summary		Request password reset code
//	@Description	Emails a 6-digit reset code to a registered account. Unlike login, an unknown email is reported as 404.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		authsdk.SendOTPRequest	true	"Account email"
//	@Success		200		{object}	authsdk.MessageResponse	"message"
//	@Failure		400		{object}	authsdk.APIError		"invalid_request"
//	@Failure		403		{object}	authsdk.APIError		"code_blacklisted"
//	@Failure		404		{object}	authsdk.APIError		"not_found"
//	@Router			/v1/sendotp [post].
func (h *PasswordHandler) HandleSendOTP(w http.ResponseWriter, r *http.Request) {
	var req authsdk.SendOTPRequest
	if err := decodeBody(r, &req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Email == "" {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	err := h.PasswordService.SendResetCode(r.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			authsdk.ErrNotFound.WriteError(w)
		case errors.Is(err, service.ErrCodeBlacklisted):
			authsdk.ErrCodeBlacklisted.WriteError(w)
		default:
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{Message: "reset code sent"})
}

// HandleReset godoc
//
//	@Summary		Reset password
//	@Description	Redeems an emailed reset code for a new password. The code is single-use. Resetting does not clear an active login lockout.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		authsdk.ResetPasswordRequest	true	"Email, code, and new password"
//	@Success		200		{object}	authsdk.MessageResponse			"message"
//	@Failure		400		{object}	authsdk.APIError				"invalid_request, code_invalid, code_expired, weak_password"
//	@Failure		403		{object}	authsdk.APIError				"code_blacklisted"
//	@Failure		404		{object}	authsdk.APIError				"not_found"
//	@Router			/v1/resetpassword [put].
func (h *PasswordHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	var req authsdk.ResetPasswordRequest
	if err := decodeBody(r, &req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Email == "" || req.Code == "" || req.NewPassword == "" {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	err := h.PasswordService.Reset(r.Context(), req.Email, req.Code, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCodeNotFound), errors.Is(err, service.ErrUserNotFound):
			authsdk.ErrNotFound.WriteError(w)
		case errors.Is(err, service.ErrCodeBlacklisted):
			authsdk.ErrCodeBlacklisted.WriteError(w)
		case errors.Is(err, service.ErrCodeExpired):
			authsdk.ErrCodeExpired.WriteError(w)
		case errors.Is(err, service.ErrCodeInvalid):
			authsdk.ErrCodeInvalid.WriteError(w)
		case errors.Is(err, cryptox.ErrWeakPassword):
			authsdk.ErrWeakPassword.WriteError(w)
		default:
			authsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{Message: "password reset"})
}

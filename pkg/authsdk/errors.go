package authsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cartloop/storefront-auth/pkg/httpx"
)

// Error codes shared by the server and the SDK. The server writes them,
// the SDK parses them back into the same typed values.
const (
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeAccountLocked      = "account_locked"
	ErrorCodeUnauthorized       = "unauthorized"
	ErrorCodeForbidden          = "forbidden"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeInvalidEmail       = "invalid_email"
	ErrorCodeEmailTaken         = "email_taken"
	ErrorCodeWeakPassword       = "weak_password"
	ErrorCodeCodeInvalid        = "code_invalid"
	ErrorCodeCodeExpired        = "code_expired"
	ErrorCodeCodeBlacklisted    = "code_blacklisted"
	ErrorCodeServerError        = "server_error"
	ErrorCodeSessionExpired     = "session_expired"
)

// APIError is the error envelope every endpoint uses. It implements the
// error interface and is used both by the server (to write HTTP responses)
// and by the SDK client (to represent parsed error responses).
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code (e.g. "invalid_credentials")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is matches APIErrors by code, so errors.Is works between a parsed
// response error and the predefined sentinel values below.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Code == e.Code
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(e)
}

var (
	// ErrInvalidRequest is returned when the request body is malformed or
	// missing required fields.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrInvalidCredentials deliberately covers unknown email and wrong
	// password with a single message.
	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "email or password is incorrect",
	}

	// ErrUnauthorized is returned when no usable access token accompanies
	// a protected request.
	ErrUnauthorized = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeUnauthorized,
		Description: "authentication required",
	}

	// ErrSessionExpired is returned when both the access token and the
	// refresh cookie are spent; the client must log in again.
	ErrSessionExpired = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeSessionExpired,
		Description: "session expired, please log in again",
	}

	// ErrForbidden is returned when the caller is authenticated but their
	// role does not allow the operation.
	ErrForbidden = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeForbidden,
		Description: "insufficient permissions for this operation",
	}

	// ErrNotFound is returned when the referenced account or code record
	// does not exist.
	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "the requested resource was not found",
	}

	// ErrInvalidEmail is returned when the signup email is not a
	// deliverable address.
	ErrInvalidEmail = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidEmail,
		Description: "the email address is not valid",
	}

	// ErrEmailTaken is returned when signing up with an already-registered email.
	ErrEmailTaken = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeEmailTaken,
		Description: "an account with this email already exists",
	}

	// ErrWeakPassword is returned when a new password fails the policy.
	ErrWeakPassword = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeWeakPassword,
		Description: "password must be at least 6 characters with an uppercase letter and a symbol",
	}

	// ErrCodeInvalid is returned for a wrong one-time code.
	ErrCodeInvalid = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeCodeInvalid,
		Description: "the code is incorrect",
	}

	// ErrCodeExpired is returned when the one-time code is past its window.
	ErrCodeExpired = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeCodeExpired,
		Description: "the code has expired, request a new one",
	}

	// ErrCodeBlacklisted is returned after too many wrong guesses.
	ErrCodeBlacklisted = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeCodeBlacklisted,
		Description: "too many failed attempts, try again later",
	}

	// ErrServerError is the catch-all for unexpected failures.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "an unexpected error occurred",
	}
)

// AccountLockedError builds the lockout error with the remaining minutes
// in the message.
func AccountLockedError(minutes int) *APIError {
	unit := "minutes"
	if minutes == 1 {
		unit = "minute"
	}
	return &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeAccountLocked,
		Description: fmt.Sprintf("account locked, try again in ~%d %s", minutes, unit),
	}
}

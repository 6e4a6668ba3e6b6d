package authsdk

// NewAccessTokenHeader is the response header the server uses to hand the
// client a renewed access token after a transparent refresh. The SDK
// transport watches every response for it.
const NewAccessTokenHeader = "X-New-Access-Token"

// User is the client-safe account projection returned by the service.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// SignupRequest stages a new account pending email verification.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyOTPRequest redeems the emailed signup code.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// LoginRequest authenticates an existing account.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by login, signup verification, and refresh.
// The refresh token is never in the body; it travels in an HttpOnly cookie.
type AuthResponse struct {
	// AccessToken is the JWT access token used to authenticate API requests
	AccessToken string `json:"access_token"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the lifetime in seconds of the access token
	ExpiresIn int `json:"expires_in"`

	// User is the authenticated account
	User User `json:"user"`
}

// MessageResponse is the generic acknowledgement envelope.
type MessageResponse struct {
	Message string `json:"message"`
}

// ChangePasswordRequest rotates the password of an authenticated account.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// SendOTPRequest asks for a password-reset code to be emailed.
type SendOTPRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest redeems a reset code for a new password.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

// UsersResponse lists accounts for the admin surface.
type UsersResponse struct {
	Users []User `json:"users"`
}

// UpdateRoleRequest changes an account's role.
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// HealthChecks reports the status of critical dependencies.
type HealthChecks struct {
	Database string `json:"database"`
}

// HealthResponse is returned by the livez and readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

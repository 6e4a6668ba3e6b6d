package authsdk

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// SDKClient is a client for the storefront authentication service.
// It provides access to unauthenticated operations and can create
// authenticated Sessions.
//
// The client's HTTP client carries a cookie jar: the refresh token only
// ever travels in an HttpOnly cookie scoped to /v1, so the jar is what
// keeps the renewal credential between requests.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new auth service client.
func NewSDKClient(baseURL string) *SDKClient {
	jar, _ := cookiejar.New(nil)

	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
	}
}

// Signup stages a new customer account and triggers the verification email.
// No account exists until the code is redeemed with VerifySignup.
func (c *SDKClient) Signup(ctx context.Context, req SignupRequest) (*MessageResponse, error) {
	resp, err := c.postJSON(ctx, "/v1/signup", req)
	if err != nil {
		return nil, err
	}

	var msg MessageResponse
	if err := decodeJSON(resp, &msg, http.StatusOK); err != nil {
		return nil, err
	}

	return &msg, nil
}

// VerifySignup redeems the emailed signup code, creating the account and
// returning an authenticated session.
func (c *SDKClient) VerifySignup(ctx context.Context, email, code string) (*Session, error) {
	resp, err := c.postJSON(ctx, "/v1/verify-otp", VerifyOTPRequest{Email: email, Code: code})
	if err != nil {
		return nil, err
	}

	var auth AuthResponse
	if err := decodeJSON(resp, &auth, http.StatusOK); err != nil {
		return nil, err
	}

	return newSession(c, &auth), nil
}

// Login authenticates with email and password and returns an authenticated
// session. The server sets the refresh cookie on the same response; the
// client's jar captures it.
func (c *SDKClient) Login(ctx context.Context, email, password string) (*Session, error) {
	resp, err := c.postJSON(ctx, "/v1/login", LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	var auth AuthResponse
	if err := decodeJSON(resp, &auth, http.StatusOK); err != nil {
		return nil, err
	}

	return newSession(c, &auth), nil
}

// Refresh exchanges the refresh cookie for a fresh access token. Sessions
// call this automatically; it is exported for callers that manage tokens
// themselves.
func (c *SDKClient) Refresh(ctx context.Context) (*AuthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/auth/refresh", nil, nil)
	if err != nil {
		return nil, err
	}

	var auth AuthResponse
	if err := decodeJSON(resp, &auth, http.StatusOK); err != nil {
		return nil, err
	}

	return &auth, nil
}

// SendResetCode asks for a password-reset code to be emailed.
func (c *SDKClient) SendResetCode(ctx context.Context, email string) (*MessageResponse, error) {
	resp, err := c.postJSON(ctx, "/v1/sendotp", SendOTPRequest{Email: email})
	if err != nil {
		return nil, err
	}

	var msg MessageResponse
	if err := decodeJSON(resp, &msg, http.StatusOK); err != nil {
		return nil, err
	}

	return &msg, nil
}

// ResetPassword redeems a reset code for a new password. The code is
// consumed on success; a rejected new password leaves it redeemable.
func (c *SDKClient) ResetPassword(ctx context.Context, email, code, newPassword string) (*MessageResponse, error) {
	resp, err := c.putJSON(ctx, "/v1/resetpassword", ResetPasswordRequest{
		Email:       email,
		Code:        code,
		NewPassword: newPassword,
	})
	if err != nil {
		return nil, err
	}

	var msg MessageResponse
	if err := decodeJSON(resp, &msg, http.StatusOK); err != nil {
		return nil, err
	}

	return &msg, nil
}

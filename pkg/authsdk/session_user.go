package authsdk

import (
	"context"
	"net/http"
)

// Me retrieves the authenticated account's profile.
func (s *Session) Me(ctx context.Context) (*User, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/me", nil)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	return &user, nil
}

// ChangePassword rotates the account password after re-checking the current
// one. Existing tokens stay valid; only future logins use the new password.
func (s *Session) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	req := ChangePasswordRequest{
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPut, "/v1/changepassword", req)
	if err != nil {
		return err
	}

	var msg MessageResponse
	return decodeJSON(resp, &msg, http.StatusOK)
}

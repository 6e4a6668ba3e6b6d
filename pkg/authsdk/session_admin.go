package authsdk

import (
	"context"
	"fmt"
	"net/http"
)

// ListUsers lists all accounts. Requires the admin or superadmin role.
func (s *Session) ListUsers(ctx context.Context) ([]User, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/users", nil)
	if err != nil {
		return nil, err
	}

	var out UsersResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return out.Users, nil
}

// UpdateUserRole changes an account's role. Requires the superadmin role.
//
// A demoted user's outstanding access token keeps its old role until expiry;
// the new role binds at the next renewal.
func (s *Session) UpdateUserRole(ctx context.Context, userID, role string) error {
	path := fmt.Sprintf("/v1/users/%s/role", userID)

	resp, err := s.doAuthRequest(ctx, http.MethodPut, path, UpdateRoleRequest{Role: role})
	if err != nil {
		return err
	}

	var msg MessageResponse
	return decodeJSON(resp, &msg, http.StatusOK)
}

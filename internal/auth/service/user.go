package service

import (
	"context"
	"errors"

	"github.com/cartloop/storefront-auth/internal/auth/domain"
	"github.com/cartloop/storefront-auth/internal/auth/store"
)

type UserService struct {
	Store store.Store
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// ListUsers returns every account, newest first. Admin surface only.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx)
}

// UpdateRole changes a user's role. The HTTP layer restricts this to
// superadmins; the service only checks the target exists and the role
// parses.
func (s *UserService) UpdateRole(ctx context.Context, userID string, role domain.Role) error {
	if _, err := s.Store.Users().GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.Store.Users().UpdateRole(ctx, userID, role)
}

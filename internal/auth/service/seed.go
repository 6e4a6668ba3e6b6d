package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/cartloop/storefront-auth/internal/auth/domain"
	"github.com/cartloop/storefront-auth/internal/auth/store"
	"github.com/cartloop/storefront-auth/pkg/cryptox"
	"github.com/cartloop/storefront-auth/pkg/idx"
	"github.com/cartloop/storefront-auth/pkg/slogx"
)

// SeedSuperAdmin ensures a superadmin account exists at startup. Signup
// only ever creates customers, so without seeding there would be no way to
// reach the admin surface on a fresh database. Idempotent: if the email is
// already registered nothing happens.
func SeedSuperAdmin(ctx context.Context, st store.Store, email, password string) error {
	l := slogx.FromContext(ctx)
	email = normalizeEmail(email)

	if email == "" || password == "" {
		return nil
	}

	if err := cryptox.ValidatePassword(password); err != nil {
		return err
	}

	_, err := st.Users().GetUserByEmail(ctx, email)
	if err == nil {
		return nil // already seeded
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return err
	}

	user := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		Name:         "Super Admin",
		PasswordHash: hash,
		Role:         domain.RoleSuperAdmin,
	}
	if err := st.Users().CreateUser(ctx, user); err != nil {
		return err
	}

	l.Info("seeded superadmin account", slog.String("user_id", user.ID), slog.String("email", email))
	return nil
}

package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/cartloop/storefront-auth/internal/auth/domain"
	"github.com/cartloop/storefront-auth/internal/auth/store"
	"github.com/cartloop/storefront-auth/internal/auth/store/drivers/sqlite"
	"github.com/cartloop/storefront-auth/pkg/cryptox"
	"github.com/cartloop/storefront-auth/pkg/idx"
	"github.com/cartloop/storefront-auth/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	cryptox.SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func newTestTokenService(st store.Store) *TokenService {
	accessSecret := []byte("test-access-secret")
	refreshSecret := []byte("test-refresh-secret")
	issuer := "storefront-auth-test"

	return &TokenService{
		Store:           st,
		AccessSigner:    jwtx.NewSigner(accessSecret),
		AccessVerifier:  jwtx.NewVerifier(accessSecret, issuer),
		RefreshSigner:   jwtx.NewSigner(refreshSecret),
		RefreshVerifier: jwtx.NewVerifier(refreshSecret, issuer),
		Issuer:          issuer,
	}
}

// mustCreateUser inserts a user directly, bypassing the signup flow.
func mustCreateUser(t *testing.T, st store.Store, email, password string, role domain.Role) domain.User {
	t.Helper()

	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	user := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		Name:         "Test User",
		PasswordHash: hash,
		Role:         role,
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), user))
	return user
}

// captureMailer records the last code instead of sending anything.
type captureMailer struct {
	to   string
	code string
}

func (m *captureMailer) SendSignupCode(ctx context.Context, to, name, code string) error {
	m.to, m.code = to, code
	return nil
}

func (m *captureMailer) SendResetCode(ctx context.Context, to, code string) error {
	m.to, m.code = to, code
	return nil
}

func futureTime(d time.Duration) *time.Time {
	t := time.Now().Add(d)
	return &t
}

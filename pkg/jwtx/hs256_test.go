package jwtx_test

import (
	"testing"
	"time"

	"github.com/cartloop/storefront-auth/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "storefront-auth"

var (
	accessSecret  = []byte("unit-test-access-secret-0123456789")
	refreshSecret = []byte("unit-test-refresh-secret-987654321")
)

func TestHS256RoundTrip(t *testing.T) {
	t.Parallel()

	signer := jwtx.NewSigner(accessSecret)
	verifier := jwtx.NewVerifier(accessSecret, testIssuer)

	now := time.Now().UTC()
	claims := jwtx.NewClaims("01HZXW5E8RQ6TBKT6G2Q0V9M3A", "customer", 5*time.Minute, testIssuer, now)

	token, err := signer.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, claims.Subject, parsed.Subject)
	require.Equal(t, claims.Role, parsed.Role)
	require.Equal(t, testIssuer, parsed.Issuer)
}

func TestHS256CrossClassSecretFails(t *testing.T) {
	t.Parallel()

	// A refresh token must not verify under the access secret, and vice
	// versa. Distinct secrets are what separate the two classes.
	signer := jwtx.NewSigner(refreshSecret)
	verifier := jwtx.NewVerifier(accessSecret, testIssuer)

	claims := jwtx.NewClaims("user-1", "customer", time.Hour, testIssuer, time.Now().UTC())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestHS256ExpiredIsDistinguishable(t *testing.T) {
	t.Parallel()

	signer := jwtx.NewSigner(accessSecret)
	verifier := jwtx.NewVerifier(accessSecret, testIssuer)

	claims := jwtx.NewClaims("user-1", "customer", -1*time.Minute, testIssuer, time.Now().UTC())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrExpired)
	require.NotErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestHS256TamperedToken(t *testing.T) {
	t.Parallel()

	signer := jwtx.NewSigner(accessSecret)
	verifier := jwtx.NewVerifier(accessSecret, testIssuer)

	claims := jwtx.NewClaims("user-1", "customer", time.Hour, testIssuer, time.Now().UTC())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	// Flip a character in the payload segment.
	tampered := []byte(token)
	mid := len(tampered) / 2
	if tampered[mid] == 'a' {
		tampered[mid] = 'b'
	} else {
		tampered[mid] = 'a'
	}

	_, err = verifier.Verify(string(tampered))
	require.Error(t, err)
	require.NotErrorIs(t, err, jwtx.ErrExpired)
}

func TestHS256IssuerMismatch(t *testing.T) {
	t.Parallel()

	signer := jwtx.NewSigner(accessSecret)
	verifier := jwtx.NewVerifier(accessSecret, "some-other-service")

	claims := jwtx.NewClaims("user-1", "admin", time.Hour, testIssuer, time.Now().UTC())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrIssuer)
}

func TestHS256Garbage(t *testing.T) {
	t.Parallel()

	verifier := jwtx.NewVerifier(accessSecret, testIssuer)

	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := verifier.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	}
}

package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Signer mints HS256 tokens under a single symmetric secret. The service
// holds two of these, one per token class, so a compromised access secret
// cannot forge refresh tokens and vice versa.
type Signer struct {
	secret []byte
}

// NewSigner creates an HS256 signer from a raw secret.
func NewSigner(secret []byte) *Signer {
	return &Signer{secret: secret}
}

// Sign serializes and signs the claims.
func (s *Signer) Sign(c Claims) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return tok.SignedString(s.secret)
}

// Verifier validates HS256 tokens against one class's secret and an
// expected issuer.
type Verifier struct {
	secret []byte
	issuer string
}

// NewVerifier creates a verifier bound to a secret and issuer.
func NewVerifier(secret []byte, issuer string) *Verifier {
	return &Verifier{secret: secret, issuer: issuer}
}

// Verify parses and validates a token string, returning its claims.
//
// Failure mapping matters here: ErrExpired means the signature checked out
// but the token is past its exp, which a gate may recover from via a
// refresh token. ErrInvalidSig / ErrMalformed are terminal: a tampered
// token must never fall through to the refresh path.
func (v *Verifier) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSig
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return Claims{}, ErrNotYetValid
		default:
			return Claims{}, ErrMalformed
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrMalformed
	}

	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}

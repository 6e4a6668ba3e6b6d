package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTLs. Access tokens are deliberately short so a leaked
// bearer header is only useful for a bounded window; refresh tokens trade
// that caution for user convenience.
const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Claims are the claims carried by both token classes: the principal ID in
// the subject plus the principal's role. Keeping the shape identical across
// classes means the only thing separating an access token from a refresh
// token is the secret it was signed with.
type Claims struct {
	jwt.RegisteredClaims

	// Role is the principal's role at issue time (customer, admin,
	// superadmin). Gates re-check the stored role on refresh, so a stale
	// claim here is never authoritative for longer than one access TTL.
	Role string `json:"role,omitempty"`
}

// NewClaims builds minimally-correct claims for a principal.
func NewClaims(subject, role string, ttl time.Duration, issuer string, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: role,
	}
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't before nbf.
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}

	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}

	return nil
}

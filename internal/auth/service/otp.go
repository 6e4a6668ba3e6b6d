package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base32"
	"time"

	"github.com/cartloop/storefront-auth/pkg/cryptox"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/hotp"
)

// One-time-code policy shared by the signup and password-reset flows.
const (
	// OTPTTL is how long an emailed code stays redeemable.
	OTPTTL = 10 * time.Minute

	// MaxOTPAttempts wrong guesses blacklists the email for OTPBlacklistWindow.
	MaxOTPAttempts     = 10
	OTPBlacklistWindow = 24 * time.Hour
)

// generateCode mints a random one-time code in 100000-999999. HOTP over a
// fresh random secret gives uniformly distributed digits without
// hand-rolling modulo-bias handling; leading-zero draws are discarded so
// the range stays uniform and codes never look five digits long.
func generateCode() (string, error) {
	for {
		var seed [20]byte
		if _, err := rand.Read(seed[:]); err != nil {
			return "", err
		}
		secret := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(seed[:])
		code, err := hotp.GenerateCodeCustom(secret, 1, hotp.ValidateOpts{
			Digits:    otp.DigitsSix,
			Algorithm: otp.AlgorithmSHA1,
		})
		if err != nil {
			return "", err
		}
		if code[0] != '0' {
			return code, nil
		}
	}
}

// spendAttempt advances the guess counter for a staged code. The returned
// pointer is non-nil when this attempt crossed the blacklist threshold.
// Expired submissions spend the budget exactly like wrong ones, so waiting
// a code out never resets the ceiling.
func spendAttempt(now time.Time, attempts int) (int, *time.Time) {
	attempts++
	if attempts >= MaxOTPAttempts {
		until := now.Add(OTPBlacklistWindow)
		return attempts, &until
	}
	return attempts, nil
}

// hashCode fingerprints a code for storage. The plaintext code only ever
// exists in the outbound email.
func hashCode(code string) string {
	return cryptox.FingerprintToken(code)
}

// codeMatches compares a submitted code against the stored fingerprint in
// constant time.
func codeMatches(code, storedHash string) bool {
	return subtle.ConstantTimeCompare([]byte(hashCode(code)), []byte(storedHash)) == 1
}

package jwtx

import "errors"

// Verification failures come in two kinds the caller MUST be able to tell
// apart: ErrExpired (good signature, past exp, recoverable via a refresh
// token) and everything else (tamper, wrong secret, garbage), which is terminal.
var (
	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrInvalidSig = errors.New("jwtx: invalid signature")

	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)

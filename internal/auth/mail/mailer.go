// Package mail delivers the one-time codes the auth flows email out.
// Services depend on the Mailer interface only, so tests and local
// development can swap the SMTP sender for a logging one.
package mail

import "context"

type Mailer interface {
	// SendSignupCode emails the verification code for a new account.
	SendSignupCode(ctx context.Context, to, name, code string) error

	// SendResetCode emails a password-reset code to an existing account.
	SendResetCode(ctx context.Context, to, code string) error
}

package mail

import (
	"context"
	"log/slog"
)

// LogMailer writes codes to the log instead of sending email. For local
// development and tests only; never wire it up in production.
type LogMailer struct {
	Logger *slog.Logger
}

func (m *LogMailer) SendSignupCode(ctx context.Context, to, name, code string) error {
	m.Logger.Info("signup code (dev mailer)",
		slog.String("to", to),
		slog.String("name", name),
		slog.String("code", code),
	)
	return nil
}

func (m *LogMailer) SendResetCode(ctx context.Context, to, code string) error {
	m.Logger.Info("reset code (dev mailer)",
		slog.String("to", to),
		slog.String("code", code),
	)
	return nil
}

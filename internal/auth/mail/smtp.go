package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
)

// SMTPConfig carries the connection settings for the outbound mail server.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer sends codes through a real SMTP server using go-mail.
// A fresh client is dialed per message; code emails are rare enough that
// connection pooling isn't worth the complexity.
type SMTPMailer struct {
	cfg SMTPConfig
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) SendSignupCode(ctx context.Context, to, name, code string) error {
	subject := "Verify your account"
	body := fmt.Sprintf(
		"Hi %s,\n\nYour verification code is: %s\n\nIt expires in 10 minutes. If you didn't sign up, ignore this email.\n",
		name, code,
	)
	return m.send(ctx, to, subject, body)
}

func (m *SMTPMailer) SendResetCode(ctx context.Context, to, code string) error {
	subject := "Password reset code"
	body := fmt.Sprintf(
		"Your password reset code is: %s\n\nIt expires in 10 minutes. If you didn't request a reset, ignore this email.\n",
		code,
	)
	return m.send(ctx, to, subject, body)
}

func (m *SMTPMailer) send(ctx context.Context, to, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("mail: invalid from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("mail: invalid recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	opts := []gomail.Option{
		gomail.WithPort(m.cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if m.cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(m.cfg.Username),
			gomail.WithPassword(m.cfg.Password),
		)
	}

	client, err := gomail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("mail: client: %w", err)
	}
	defer client.Close()

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("mail: send: %w", err)
	}
	return nil
}

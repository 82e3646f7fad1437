package email

import (
	"context"
	"fmt"

	"tour-booking-api/internal/config"

	"gopkg.in/gomail.v2"
)

// Mailer delivers outbound account email. Delivery failures are returned to
// the caller; the password-reset protocol rolls back on them rather than
// retrying.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, name, resetURL string) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, name, resetURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Forgot your password? Submit a PATCH request with your new password to:\n\n%s\n\n"+
			"This link is valid for 10 minutes. If you didn't forget your password, please ignore this email.\n",
		name, resetURL,
	)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Your password reset token (valid for 10 minutes)")
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	return nil
}

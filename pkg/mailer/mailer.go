package mailer

import (
	"context"
	"fmt"
	"net/smtp"

	"account-service/pkg/utils"
)

// Mailer delivers plain-text mail. Implementations must be safe for
// concurrent use by request handlers.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPMailer sends mail over authenticated SMTP.
type SMTPMailer struct {
	config utils.EmailConfig
}

func NewSMTPMailer(config utils.EmailConfig) *SMTPMailer {
	return &SMTPMailer{config: config}
}

func (m *SMTPMailer) Send(_ context.Context, to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)
	auth := smtp.PlainAuth("", m.config.User, m.config.Password, m.config.Host)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		m.config.From, to, subject, body)

	if err := smtp.SendMail(addr, auth, m.config.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}

	return nil
}

package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/shopcore/admin-service/internal/app/config"
)

// Mailer sends account notifications. Sending is always best-effort; a
// failed mail never fails the workflow that triggered it.
type Mailer interface {
	SendWelcomeEmail(toEmail, fullName string) error
}

type smtpMailer struct {
	cfg config.SMTPConfig
}

func NewSMTPMailer(cfg config.SMTPConfig) Mailer {
	return &smtpMailer{cfg: cfg}
}

func (m *smtpMailer) SendWelcomeEmail(toEmail, fullName string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.SenderEmail)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "Welcome to the store")
	msg.SetBody("text/plain", fmt.Sprintf("Hi %s, your account has been created.", fullName))

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send welcome email to %s: %w", toEmail, err)
	}
	return nil
}

// NoOpMailer is used when SMTP is not configured.
type NoOpMailer struct{}

func (NoOpMailer) SendWelcomeEmail(string, string) error { return nil }

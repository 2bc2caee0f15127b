package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
)

// SMTPConfig holds SMTP relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	From     string
	Username string
	Password string
}

// SMTPMailer sends lifecycle emails through an SMTP relay.
type SMTPMailer struct {
	cfg SMTPConfig
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) SendConfirmation(to, firstName, linkURL string) error {
	body := fmt.Sprintf("Hello %s,\n\nPlease confirm your account:\n%s\n", firstName, linkURL)
	return m.send(to, "Confirm your account", body)
}

func (m *SMTPMailer) SendPasswordReset(to, firstName, linkURL string) error {
	body := fmt.Sprintf("Hello %s,\n\nReset your password within 10 minutes:\n%s\n\nIf you did not request this, ignore this email.\n", firstName, linkURL)
	return m.send(to, "Password reset instructions", body)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	e := email.NewEmail()
	e.From = m.cfg.From
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	return e.Send(addr, auth)
}

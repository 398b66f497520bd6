// Package mail sends the account emails the service triggers. Transport is
// plain SMTP via gomail; delivery failures are the caller's to log, never
// to escalate past the request boundary.
package mail

import (
	"fmt"
	"log"
	"strings"

	"gopkg.in/gomail.v2"
)

// Mailer is the outbound notification collaborator.
type Mailer interface {
	SendTemporaryPassword(to, username, tempPassword string) error
}

// SMTPMailer sends mail through a configured SMTP relay.
type SMTPMailer struct {
	host string
	port int
	user string
	pass string
	from string
}

// Ensure SMTPMailer implements Mailer
var _ Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer creates a mailer for the given relay settings.
func NewSMTPMailer(host string, port int, user, pass, from string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, user: user, pass: pass, from: from}
}

// SendTemporaryPassword emails a temporary credential for the forgot-password
// flow. When SMTP is not configured the send is skipped with a log line so
// local deployments without a relay still work.
func (m *SMTPMailer) SendTemporaryPassword(to, username, tempPassword string) error {
	if m.host == "" || m.user == "" || m.from == "" {
		log.Printf("mail: SMTP not configured, skipping temporary password mail to %s", to)
		return nil
	}
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("empty recipient")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Temporary password - Recipe App")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hello %s,\n\nYour temporary password: %s\nPlease log in and change your password right away to keep your account safe.\n\nRecipe App",
		username, tempPassword,
	))

	dialer := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

package contact

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Zachkp/portfolio-api/internal/config"
)

// ErrNotConfigured is returned when SMTP_USER or SMTP_PASS is unset.
var ErrNotConfigured = errors.New("SMTP credentials not configured")

// Submission is one contact form entry.
type Submission struct {
	Name    string
	Email   string
	Message string
}

// Mailer delivers a submission to the site owner.
type Mailer interface {
	Send(s Submission) error
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer sends submissions through an authenticated SMTP relay.
type SMTPMailer struct {
	cfg  config.SMTPConfig
	send sendFunc
}

// NewSMTPMailer sends through cfg.Host:cfg.Port with PLAIN auth.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, send: smtp.SendMail}
}

// Send forwards the submission to the site owner with Reply-To set to the
// sender. Without a recipient, mail goes to the SMTP user.
func (m *SMTPMailer) Send(s Submission) error {
	if m.cfg.User == "" || m.cfg.Pass == "" {
		return ErrNotConfigured
	}
	to := m.cfg.ToEmail
	if to == "" {
		to = m.cfg.User
	}

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	if err := m.send(m.cfg.Host+":"+m.cfg.Port, auth, m.cfg.User, []string{to}, composeMessage(m.cfg.User, to, s)); err != nil {
		return fmt.Errorf("sending contact email: %w", err)
	}
	return nil
}

type header struct {
	name  string
	value string
}

// headerSafe drops CR and LF so a value cannot start a new header line.
var headerSafe = strings.NewReplacer("\r", "", "\n", "")

func composeMessage(from, to string, s Submission) []byte {
	headers := []header{
		{"To", to},
		{"Subject", "Portfolio Contact: " + s.Name},
		{"From", from},
		{"Reply-To", s.Email},
	}

	var b strings.Builder
	for _, h := range headers {
		b.WriteString(h.name + ": " + headerSafe.Replace(h.value) + "\r\n")
	}
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "New message from the portfolio contact form.\n\nName: %s\nEmail: %s\nMessage:\n%s\n", s.Name, s.Email, s.Message)
	return []byte(b.String())
}

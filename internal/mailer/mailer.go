// Package mailer provides outbound email delivery for Lumina. The only
// consumer today is the password reset flow. Delivery is an external
// collaborator: failures map to the mail-delivery error code and never
// reveal SMTP details to the client.
package mailer

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/luminaschool/lumina-server/internal/config"
)

// Sender is the delivery contract. Services depend on this interface so
// tests can capture outbound mail without a network.
type Sender interface {
	SendMail(ctx context.Context, to []string, subject, body string) error

	// IsConfigured reports whether delivery is actually possible. Callers
	// degrade gracefully (e.g., password reset reports success without
	// sending) when mail is not set up.
	IsConfigured() bool
}

// smtpSender implements Sender over plain SMTP with optional AUTH.
type smtpSender struct {
	cfg config.SMTPConfig
}

// New creates a Sender from config. An empty Host yields a disabled sender.
func New(cfg config.SMTPConfig) Sender {
	if cfg.Host == "" {
		return disabledSender{}
	}
	return &smtpSender{cfg: cfg}
}

// SendMail delivers a plain-text message. The context bounds are advisory:
// net/smtp has no context support, so cancellation is checked up front only.
func (s *smtpSender) SendMail(ctx context.Context, to []string, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	msg := strings.Join([]string{
		"From: " + s.cfg.From,
		"To: " + strings.Join(to, ", "),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(addr, auth, s.cfg.From, to, []byte(msg)); err != nil {
		return fmt.Errorf("sending mail via %s: %w", addr, err)
	}
	return nil
}

func (s *smtpSender) IsConfigured() bool { return true }

// disabledSender is the no-op used when SMTP is not configured.
type disabledSender struct{}

func (disabledSender) SendMail(ctx context.Context, to []string, subject, body string) error {
	return fmt.Errorf("mail delivery is not configured")
}

func (disabledSender) IsConfigured() bool { return false }

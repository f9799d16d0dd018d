package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPConfig holds outbound mail settings.
type SMTPConfig struct {
	Host     string
	Port     string
	From     string
	Username string
	Password string
}

// SMTPMailer delivers notifications over plain SMTP.
type SMTPMailer struct {
	cfg SMTPConfig
}

// NewSMTPMailer constructs an SMTPMailer.
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// SendRegistrationConfirmation mails every participant of a new registration.
func (m *SMTPMailer) SendRegistrationConfirmation(ctx context.Context, recipients []string, details EventDetails) error {
	subject := fmt.Sprintf("Registration confirmed: %s", details.Title)
	body := fmt.Sprintf(
		"You are registered for %s on %s, hosted by %s.\r\nLocation: %s\r\n",
		details.Title, details.Date.Format("Jan 2, 2006 15:04 MST"),
		details.OrgName, details.Location,
	)
	return m.send(ctx, recipients, subject, body)
}

// SendCertificate mails one participant's attendance certificate.
func (m *SMTPMailer) SendCertificate(ctx context.Context, cert Certificate) error {
	subject := fmt.Sprintf("Certificate of attendance: %s", cert.Event.Title)
	body := fmt.Sprintf(
		"Dear %s,\r\n\r\nThis certifies your attendance at %s on %s, hosted by %s at %s.\r\n",
		cert.ParticipantName, cert.Event.Title,
		cert.Event.Date.Format("Jan 2, 2006"), cert.Event.OrgName,
		cert.Event.Location,
	)
	return m.send(ctx, []string{cert.ParticipantEmail}, subject, body)
}

// send delivers one message. net/smtp has no context support, so the dial is
// run in a goroutine and abandoned if the context expires first; the caller's
// timeout bounds the request even when the mail server hangs.
func (m *SMTPMailer) send(ctx context.Context, recipients []string, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + strings.Join(recipients, ", "),
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	addr := m.cfg.Host + ":" + m.cfg.Port
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, m.cfg.From, recipients, []byte(msg))
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send mail: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("send mail: %w", ctx.Err())
	}
}

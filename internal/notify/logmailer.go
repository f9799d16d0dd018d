package notify

import (
	"context"
	"log/slog"
)

// LogMailer is the Mailer used when no SMTP host is configured: it records
// what would have been sent and succeeds. Keeps local development and tests
// free of a mail server.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer constructs a LogMailer.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendRegistrationConfirmation(ctx context.Context, recipients []string, details EventDetails) error {
	m.logger.Info("mail (log only): registration confirmation",
		slog.String("event", details.Title),
		slog.Int("recipients", len(recipients)),
	)
	return nil
}

func (m *LogMailer) SendCertificate(ctx context.Context, cert Certificate) error {
	m.logger.Info("mail (log only): certificate",
		slog.String("event", cert.Event.Title),
		slog.String("participant", cert.ParticipantEmail),
	)
	return nil
}

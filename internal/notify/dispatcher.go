package notify

import (
	"context"
	"log/slog"
	"time"
)

// Dispatcher wraps a Mailer with the delivery contract the core relies on:
// every call is bounded by a timeout, failures are logged, and only the
// certificate path reports success back (its caller needs the outcome for
// the sent-at idempotency marker).
type Dispatcher struct {
	mailer  Mailer
	timeout time.Duration
	logger  *slog.Logger
}

// NewDispatcher constructs a Dispatcher.
func NewDispatcher(mailer Mailer, timeout time.Duration, logger *slog.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{mailer: mailer, timeout: timeout, logger: logger}
}

// RegistrationConfirmed dispatches confirmation mail to every participant of
// a new registration. Fire-and-forget: it returns immediately and the
// registration stands whether or not delivery succeeds.
func (d *Dispatcher) RegistrationConfirmed(recipients []string, details EventDetails) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.mailer.SendRegistrationConfirmation(ctx, recipients, details); err != nil {
			d.logger.Warn("registration confirmation delivery failed",
				slog.String("event", details.Title),
				slog.Int("recipients", len(recipients)),
				slog.String("error", err.Error()),
			)
			return
		}
		d.logger.Info("registration confirmation sent",
			slog.String("event", details.Title),
			slog.Int("recipients", len(recipients)),
		)
	}()
}

// Certificate delivers one attendance certificate synchronously, bounded by
// the dispatcher timeout. The error return lets the attendance machine set
// the certificate-sent marker only after a successful send; the caller logs
// and swallows the failure rather than surfacing it.
func (d *Dispatcher) Certificate(ctx context.Context, cert Certificate) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	return d.mailer.SendCertificate(ctx, cert)
}

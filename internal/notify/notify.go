// Package notify is the notification gateway: registration confirmations and
// attendance certificates, delivered by email. Deliveries are best-effort
// from the caller's point of view; a mail outage never fails a request.
package notify

import (
	"context"
	"time"
)

// EventDetails carries the event fields notification content needs.
type EventDetails struct {
	Title    string
	Date     time.Time
	Location string
	OrgName  string
}

// Certificate identifies one participant's attendance certificate.
type Certificate struct {
	ParticipantName  string
	ParticipantEmail string
	Event            EventDetails
}

// Mailer is the transport that actually delivers notifications.
type Mailer interface {
	SendRegistrationConfirmation(ctx context.Context, recipients []string, details EventDetails) error
	SendCertificate(ctx context.Context, cert Certificate) error
}

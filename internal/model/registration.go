package model

import (
	"strings"
	"time"
)

// RegistrationStatus is the lifecycle status of a registration as a whole.
type RegistrationStatus string

const (
	RegistrationRegistered RegistrationStatus = "registered"
	// Reserved statuses: accepted in storage, produced by no current flow.
	RegistrationWaitlisted RegistrationStatus = "waitlisted"
	RegistrationCancelled  RegistrationStatus = "cancelled"
)

// AttendanceStatus is the per-participant attendance state.
type AttendanceStatus string

const (
	AttendanceUnmarked            AttendanceStatus = "unmarked"
	AttendancePendingConfirmation AttendanceStatus = "pending_confirmation"
	AttendanceConfirmed           AttendanceStatus = "confirmed"
	AttendanceAbsent              AttendanceStatus = "absent"
)

// AttendanceAction is a requested transition on a participant's attendance.
type AttendanceAction string

const (
	ActionMarkPending       AttendanceAction = "mark-pending"
	ActionMarkPresent       AttendanceAction = "mark-present"
	ActionConfirmAttendance AttendanceAction = "confirm-attendance"
	ActionMarkAbsent        AttendanceAction = "mark-absent"
)

// Valid reports whether a is a known attendance action.
func (a AttendanceAction) Valid() bool {
	switch a {
	case ActionMarkPending, ActionMarkPresent, ActionConfirmAttendance, ActionMarkAbsent:
		return true
	}
	return false
}

// Attendance is the attendance sub-state embedded in each participant.
// CertificateSentAt is set at most once per confirmed stretch; it is the
// idempotency guard for the certificate email.
type Attendance struct {
	Status            AttendanceStatus `json:"status"`
	MarkedBy          string           `json:"marked_by,omitempty"`
	MarkedAt          *time.Time       `json:"marked_at,omitempty"`
	ConfirmedBy       string           `json:"confirmed_by,omitempty"`
	ConfirmedAt       *time.Time       `json:"confirmed_at,omitempty"`
	ConfirmationNotes string           `json:"confirmation_notes,omitempty"`
	CertificateSentAt *time.Time       `json:"certificate_sent_at,omitempty"`
}

// Participant is a member of a registration's team. Participants are embedded
// in their registration and have no independent lifecycle.
type Participant struct {
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	IsPrimary  bool       `json:"is_primary"`
	Attendance Attendance `json:"attendance"`
}

// Registration is one user's registration for an event, holding the full
// participant team. Exactly one registration exists per (event, user) pair.
type Registration struct {
	ID           string             `json:"id"`
	EventID      string             `json:"event_id"`
	UserID       string             `json:"user_id"`
	TeamSize     int                `json:"team_size"`
	Status       RegistrationStatus `json:"status"`
	Participants []Participant      `json:"participants"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// FindParticipant returns the index of the participant with the given
// normalized email, or -1.
func (r *Registration) FindParticipant(email string) int {
	email = NormalizeEmail(email)
	for i := range r.Participants {
		if r.Participants[i].Email == email {
			return i
		}
	}
	return -1
}

// ParticipantInput is one additional team member in a registration request.
type ParticipantInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RegisterRequest is the payload for registering for an event. Participants
// lists additional team members only; the registering user is always the
// primary participant.
type RegisterRequest struct {
	TeamSize     int                `json:"team_size"`
	Participants []ParticipantInput `json:"participants"`
}

// RegistrationStatusResponse reports whether the caller is registered.
type RegistrationStatusResponse struct {
	Registered bool `json:"registered"`
}

// AttendanceRequest is the payload for an attendance transition.
type AttendanceRequest struct {
	ParticipantEmail string           `json:"participant_email"`
	Action           AttendanceAction `json:"action"`
	Notes            string           `json:"notes,omitempty"`
}

// AttendanceResponse wraps the participant state after a transition.
type AttendanceResponse struct {
	Success     bool        `json:"success"`
	Participant Participant `json:"participant"`
}

// NormalizeEmail canonicalizes an email address for storage and comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail does a basic structural check on an already-normalized address.
func ValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	return len(parts[0]) > 0 && strings.Contains(parts[1], ".")
}

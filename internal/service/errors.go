// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the repository layer: the registration engine,
// the attendance state machine, and the roster visibility policy.
package service

import "errors"

// Centralized service layer errors. All errors returned by service methods
// are defined here so error handling in handlers stays predictable.

// ===== Authorization =====
var (
	ErrForbidden = errors.New("not authorized to perform this action")
)

// ===== Events =====
var (
	ErrEventNotFound      = errors.New("event not found")
	ErrEventClosed        = errors.New("event is closed for registration")
	ErrTitleRequired      = errors.New("event title is required")
	ErrDateNotFuture      = errors.New("event date must be in the future")
	ErrInvalidTeamBounds  = errors.New("team size bounds must satisfy 1 <= min <= max")
	ErrOrganizationNeeded = errors.New("event creation requires an organization")
)

// ===== Registration =====
var (
	ErrSelfRegistrationForbidden    = errors.New("organizers cannot register for their own organization's events")
	ErrAlreadyRegistered            = errors.New("already registered for this event")
	ErrTeamSizeOutOfRange           = errors.New("team size is outside the event's allowed range")
	ErrUnexpectedParticipants       = errors.New("solo registration must not list additional participants")
	ErrIncompleteParticipantDetails = errors.New("each additional participant needs a name and email")
	ErrInvalidParticipantEmail      = errors.New("participant email is not a valid address")
	ErrDuplicateParticipantEmail    = errors.New("participant emails must be unique within a team")
)

// ===== Attendance =====
var (
	ErrRegistrationNotFound   = errors.New("registration not found")
	ErrParticipantNotFound    = errors.New("participant not found in this registration")
	ErrInvalidAttendanceInput = errors.New("unknown attendance action")
	ErrInvalidStateTransition = errors.New("attendance action not allowed from the current status")
)

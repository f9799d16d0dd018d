package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/gatherhall/gatherhall/internal/model"
	"github.com/gatherhall/gatherhall/internal/notify"
)

// CertificateDispatcher delivers attendance certificates synchronously,
// bounded by a timeout. The error return drives the sent-at marker.
type CertificateDispatcher interface {
	Certificate(ctx context.Context, cert notify.Certificate) error
}

// AttendanceService is the attendance state machine. Participant attendance
// moves unmarked -> pending_confirmation -> confirmed, with absent reachable
// from any state and re-markable afterwards. Whenever a transition lands on
// confirmed, the certificate is dispatched at most once per confirmed
// stretch.
type AttendanceService struct {
	events        EventStore
	registrations RegistrationStore
	orgs          OrganizationStore
	certificates  CertificateDispatcher
	logger        *slog.Logger
	now           func() time.Time
}

// NewAttendanceService constructs an AttendanceService.
func NewAttendanceService(
	events EventStore,
	registrations RegistrationStore,
	orgs OrganizationStore,
	certificates CertificateDispatcher,
	logger *slog.Logger,
) *AttendanceService {
	return &AttendanceService{
		events:        events,
		registrations: registrations,
		orgs:          orgs,
		certificates:  certificates,
		logger:        logger,
		now:           time.Now,
	}
}

// Apply runs one attendance transition for one participant. Authorization
// and transition checks happen before any write; the attendance mutation is
// persisted before the certificate dispatch, so a mail outage never loses an
// attendance record.
func (s *AttendanceService) Apply(ctx context.Context, actor model.Actor, eventID, registrationID string, req model.AttendanceRequest) (*model.Participant, error) {
	if !req.Action.Valid() {
		return nil, ErrInvalidAttendanceInput
	}

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	if !CanRecordAttendance(actor, event) {
		return nil, ErrForbidden
	}
	if req.Action == model.ActionConfirmAttendance && !CanConfirmAttendance(actor, event) {
		return nil, ErrForbidden
	}

	reg, err := s.registrations.GetByID(ctx, registrationID)
	if err != nil {
		return nil, replaceNotFound(err, ErrRegistrationNotFound)
	}
	if reg.EventID != event.ID {
		return nil, ErrRegistrationNotFound
	}

	idx := reg.FindParticipant(req.ParticipantEmail)
	if idx < 0 {
		return nil, ErrParticipantNotFound
	}

	// Copy-on-write: transition a copy of the array and commit it whole.
	participants := make([]model.Participant, len(reg.Participants))
	copy(participants, reg.Participants)

	if err := s.transition(&participants[idx], actor, req); err != nil {
		return nil, err
	}
	if err := s.registrations.ReplaceParticipants(ctx, reg.ID, participants); err != nil {
		return nil, replaceNotFound(err, ErrRegistrationNotFound)
	}

	s.logger.Info("attendance updated",
		slog.String("event_id", event.ID),
		slog.String("registration_id", reg.ID),
		slog.String("participant", participants[idx].Email),
		slog.String("action", string(req.Action)),
		slog.String("status", string(participants[idx].Attendance.Status)),
		slog.String("actor_id", actor.ID),
	)

	s.dispatchCertificate(ctx, event, reg.ID, participants, idx)

	result := participants[idx]
	return &result, nil
}

// transition applies one action to one participant's attendance in place.
func (s *AttendanceService) transition(p *model.Participant, actor model.Actor, req model.AttendanceRequest) error {
	now := s.now().UTC()
	att := &p.Attendance

	switch req.Action {
	case model.ActionMarkPending:
		if att.Status == model.AttendanceConfirmed {
			return ErrInvalidStateTransition
		}
		att.Status = model.AttendancePendingConfirmation
		att.MarkedBy = actor.ID
		att.MarkedAt = &now
		if req.Notes != "" {
			att.ConfirmationNotes = req.Notes
		}

	case model.ActionMarkPresent:
		att.Status = model.AttendanceConfirmed
		att.MarkedBy = actor.ID
		att.MarkedAt = &now
		att.ConfirmedBy = actor.ID
		att.ConfirmedAt = &now
		if req.Notes != "" {
			att.ConfirmationNotes = req.Notes
		}

	case model.ActionConfirmAttendance:
		if att.Status != model.AttendancePendingConfirmation {
			return ErrInvalidStateTransition
		}
		att.Status = model.AttendanceConfirmed
		att.ConfirmedBy = actor.ID
		att.ConfirmedAt = &now
		if req.Notes != "" {
			att.ConfirmationNotes = req.Notes
		}

	case model.ActionMarkAbsent:
		// Reopens the record: confirmation and the certificate marker are
		// cleared so a later re-mark can issue a fresh certificate.
		att.Status = model.AttendanceAbsent
		att.MarkedBy = actor.ID
		att.MarkedAt = &now
		att.ConfirmedBy = ""
		att.ConfirmedAt = nil
		att.CertificateSentAt = nil
	}
	return nil
}

// dispatchCertificate sends the certificate when a transition landed on
// confirmed and none has been sent for this confirmed stretch. The sent-at
// marker is written only after a successful send, so a gateway failure
// leaves a retry possible (e.g. re-invoking mark-present). Failures are
// logged, never surfaced: the attendance change has already committed.
func (s *AttendanceService) dispatchCertificate(ctx context.Context, event *model.Event, regID string, participants []model.Participant, idx int) {
	p := &participants[idx]
	if p.Attendance.Status != model.AttendanceConfirmed || p.Attendance.CertificateSentAt != nil {
		return
	}
	if !model.ValidEmail(p.Email) {
		s.logger.Warn("skipping certificate for invalid email",
			slog.String("registration_id", regID),
			slog.String("participant", p.Email),
		)
		return
	}

	details := notify.EventDetails{
		Title:    event.Title,
		Date:     event.Date,
		Location: event.Location,
	}
	if org, err := s.orgs.GetByID(ctx, string(event.OrganizationID)); err == nil {
		details.OrgName = org.Name
	}

	err := s.certificates.Certificate(ctx, notify.Certificate{
		ParticipantName:  p.Name,
		ParticipantEmail: p.Email,
		Event:            details,
	})
	if err != nil {
		s.logger.Warn("certificate delivery failed",
			slog.String("registration_id", regID),
			slog.String("participant", p.Email),
			slog.String("error", err.Error()),
		)
		return
	}

	sentAt := s.now().UTC()
	p.Attendance.CertificateSentAt = &sentAt
	if err := s.registrations.ReplaceParticipants(ctx, regID, participants); err != nil {
		// Last-writer-wins: if a concurrent transition already replaced the
		// array, the marker write simply loses.
		s.logger.Warn("recording certificate marker failed",
			slog.String("registration_id", regID),
			slog.String("participant", p.Email),
			slog.String("error", err.Error()),
		)
		p.Attendance.CertificateSentAt = nil
		return
	}

	s.logger.Info("certificate sent",
		slog.String("registration_id", regID),
		slog.String("participant", p.Email),
	)
}

package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gatherhall/gatherhall/internal/model"
	"github.com/gatherhall/gatherhall/internal/notify"
	"github.com/gatherhall/gatherhall/internal/repository"
)

// RegistrationStore is the persistence surface the registration engine needs.
type RegistrationStore interface {
	Create(ctx context.Context, reg *model.Registration) error
	GetByID(ctx context.Context, id string) (*model.Registration, error)
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*model.Registration, error)
	ListByEvent(ctx context.Context, eventID string) ([]model.Registration, error)
	ReplaceParticipants(ctx context.Context, id string, participants []model.Participant) error
}

// OrganizationStore resolves organization names for notification content.
type OrganizationStore interface {
	GetByID(ctx context.Context, id string) (*model.Organization, error)
}

// ConfirmationDispatcher delivers registration confirmations. Fire-and-forget:
// the engine's success never depends on it.
type ConfirmationDispatcher interface {
	RegistrationConfirmed(recipients []string, details notify.EventDetails)
}

// RegistrationService is the registration engine: it enforces the creation
// invariants and answers status and roster queries.
type RegistrationService struct {
	events        EventStore
	registrations RegistrationStore
	orgs          OrganizationStore
	confirmations ConfirmationDispatcher
	logger        *slog.Logger
	now           func() time.Time
}

// NewRegistrationService constructs a RegistrationService.
func NewRegistrationService(
	events EventStore,
	registrations RegistrationStore,
	orgs OrganizationStore,
	confirmations ConfirmationDispatcher,
	logger *slog.Logger,
) *RegistrationService {
	return &RegistrationService{
		events:        events,
		registrations: registrations,
		orgs:          orgs,
		confirmations: confirmations,
		logger:        logger,
		now:           time.Now,
	}
}

// Create registers the actor (and their team) for an event. Validations run
// in a fixed order, each failing with its own sentinel, and no state is
// written until all pass. The storage-level unique index re-checks the
// duplicate rule so a concurrent double-submit loses cleanly with
// ErrAlreadyRegistered.
func (s *RegistrationService) Create(ctx context.Context, actor model.Actor, eventID string, req model.RegisterRequest) (*model.Registration, error) {
	// 1. The event must exist and still be open.
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if event.Closed(s.now()) {
		return nil, ErrEventClosed
	}

	// 2. Organizer-class actors of the owning org must not register for
	// events they help run. Super-admin is a platform role with no single
	// org and is exempt.
	if actor.Role.IsOrganizerClass() && actor.OrgID.Matches(event.OrganizationID) {
		return nil, ErrSelfRegistrationForbidden
	}

	// 3. Friendly duplicate check. The unique index closes the race window
	// between this read and the insert below.
	if _, err := s.registrations.GetByEventAndUser(ctx, eventID, actor.ID); err == nil {
		return nil, ErrAlreadyRegistered
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	// 4. Team size must sit inside the event's bounds.
	if req.TeamSize < event.MinTeamSize || req.TeamSize > event.MaxTeamSize {
		return nil, ErrTeamSizeOutOfRange
	}

	// 5–7. Participant list shape and email rules.
	participants, err := buildParticipants(actor, req)
	if err != nil {
		return nil, err
	}

	reg := &model.Registration{
		EventID:      event.ID,
		UserID:       actor.ID,
		TeamSize:     req.TeamSize,
		Status:       model.RegistrationRegistered,
		Participants: participants,
	}
	if err := s.registrations.Create(ctx, reg); err != nil {
		if errors.Is(err, repository.ErrAlreadyRegistered) {
			return nil, ErrAlreadyRegistered
		}
		return nil, err
	}

	s.logger.Info("registration created",
		slog.String("event_id", event.ID),
		slog.String("user_id", actor.ID),
		slog.Int("team_size", reg.TeamSize),
	)

	recipients := make([]string, 0, len(participants))
	for _, p := range participants {
		recipients = append(recipients, p.Email)
	}
	s.confirmations.RegistrationConfirmed(recipients, s.eventDetails(ctx, event))

	return reg, nil
}

// buildParticipants validates the participant list against the requested
// team size and assembles the stored participant array: the actor first as
// primary, then the additional members in request order, all with unmarked
// attendance.
func buildParticipants(actor model.Actor, req model.RegisterRequest) ([]model.Participant, error) {
	if req.TeamSize == 1 && len(req.Participants) > 0 {
		return nil, ErrUnexpectedParticipants
	}
	if req.TeamSize > 1 && len(req.Participants) != req.TeamSize-1 {
		return nil, ErrIncompleteParticipantDetails
	}

	actorEmail := model.NormalizeEmail(actor.Email)
	participants := make([]model.Participant, 0, req.TeamSize)
	participants = append(participants, model.Participant{
		Name:       actor.Name,
		Email:      actorEmail,
		IsPrimary:  true,
		Attendance: model.Attendance{Status: model.AttendanceUnmarked},
	})

	seen := map[string]bool{actorEmail: true}
	for _, in := range req.Participants {
		name := strings.TrimSpace(in.Name)
		email := model.NormalizeEmail(in.Email)
		if name == "" || email == "" {
			return nil, ErrIncompleteParticipantDetails
		}
		if !model.ValidEmail(email) {
			return nil, ErrInvalidParticipantEmail
		}
		if seen[email] {
			return nil, ErrDuplicateParticipantEmail
		}
		seen[email] = true
		participants = append(participants, model.Participant{
			Name:       name,
			Email:      email,
			Attendance: model.Attendance{Status: model.AttendanceUnmarked},
		})
	}
	return participants, nil
}

// Status reports whether the actor holds a registration for the event.
func (s *RegistrationService) Status(ctx context.Context, actor model.Actor, eventID string) (bool, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return false, mapStoreErr(err)
	}
	_, err := s.registrations.GetByEventAndUser(ctx, eventID, actor.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Roster returns every registration for an event, with participant
// attendance sub-state. Gated by the roster visibility policy.
func (s *RegistrationService) Roster(ctx context.Context, actor model.Actor, eventID string) ([]model.Registration, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if !CanViewRoster(actor, event) {
		return nil, ErrForbidden
	}
	return s.registrations.ListByEvent(ctx, eventID)
}

// eventDetails assembles notification content for an event. A missing
// organization record degrades to an empty name rather than failing the
// notification.
func (s *RegistrationService) eventDetails(ctx context.Context, event *model.Event) notify.EventDetails {
	details := notify.EventDetails{
		Title:    event.Title,
		Date:     event.Date,
		Location: event.Location,
	}
	org, err := s.orgs.GetByID(ctx, string(event.OrganizationID))
	if err != nil {
		s.logger.Warn("organization lookup for notification failed",
			slog.String("organization_id", string(event.OrganizationID)),
			slog.String("error", err.Error()),
		)
		return details
	}
	details.OrgName = org.Name
	return details
}

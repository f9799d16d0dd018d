package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/gatherhall/gatherhall/internal/model"
)

// EventStore is the persistence surface the event service needs.
type EventStore interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id string) (*model.Event, error)
	List(ctx context.Context) ([]model.Event, error)
	MarkCompleted(ctx context.Context, id string) error
}

// EventService manages the event lifecycle: creation, reads with lazy
// auto-completion, and explicit completion.
type EventService struct {
	events EventStore
	logger *slog.Logger
	now    func() time.Time
}

// NewEventService constructs an EventService.
func NewEventService(events EventStore, logger *slog.Logger) *EventService {
	return &EventService{events: events, logger: logger, now: time.Now}
}

// Create validates and persists a new event owned by the actor's
// organization. Only organizer-class actors (or super-admins acting within
// an organization context) may create events.
func (s *EventService) Create(ctx context.Context, actor model.Actor, req model.CreateEventRequest) (*model.Event, error) {
	if !actor.Role.IsOrganizerClass() && actor.Role != model.RoleSuperAdmin {
		return nil, ErrForbidden
	}
	if actor.OrgID == "" {
		return nil, ErrOrganizationNeeded
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return nil, ErrTitleRequired
	}
	if !req.Date.After(s.now()) {
		return nil, ErrDateNotFuture
	}
	if req.MinTeamSize < 1 || req.MaxTeamSize < req.MinTeamSize {
		return nil, ErrInvalidTeamBounds
	}

	event := &model.Event{
		Title:          req.Title,
		Description:    strings.TrimSpace(req.Description),
		Location:       strings.TrimSpace(req.Location),
		Date:           req.Date.UTC(),
		MinTeamSize:    req.MinTeamSize,
		MaxTeamSize:    req.MaxTeamSize,
		OrganizationID: actor.OrgID,
		OrganizerID:    actor.ID,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Get returns a single event, lazily flipping the completed flag when its
// date has passed. The flag write is best-effort; the returned value is
// authoritative either way.
func (s *EventService) Get(ctx context.Context, id string) (*model.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if !event.Completed && event.Date.Before(s.now()) {
		event.Completed = true
		if err := s.events.MarkCompleted(ctx, event.ID); err != nil {
			s.logger.Warn("lazy event completion failed",
				slog.String("event_id", event.ID),
				slog.String("error", err.Error()),
			)
		}
	}
	return event, nil
}

// List returns all events ordered by date.
func (s *EventService) List(ctx context.Context) ([]model.Event, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range events {
		if !events[i].Completed && events[i].Date.Before(now) {
			events[i].Completed = true
		}
	}
	return events, nil
}

// Complete explicitly marks an event completed. Allowed for the organizer,
// a same-org admin, or a super-admin.
func (s *EventService) Complete(ctx context.Context, actor model.Actor, id string) (*model.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if !CanManageEvent(actor, event) {
		return nil, ErrForbidden
	}
	if !event.Completed {
		if err := s.events.MarkCompleted(ctx, event.ID); err != nil {
			return nil, err
		}
		event.Completed = true
	}
	return event, nil
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/gatherhall/gatherhall/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventCreate(t *testing.T) {
	coordinator := model.Actor{
		ID:    "coord-1",
		Role:  model.RoleCoordinator,
		OrgID: model.NewOrgID("org-1"),
	}
	validReq := func() model.CreateEventRequest {
		return model.CreateEventRequest{
			Title:       "  Spring Workshop  ",
			Location:    "Room 4",
			Date:        time.Now().Add(72 * time.Hour),
			MinTeamSize: 1,
			MaxTeamSize: 3,
		}
	}

	t.Run("success", func(t *testing.T) {
		svc := NewEventService(&mockEventStore{}, testLogger())
		event, err := svc.Create(context.Background(), coordinator, validReq())
		require.NoError(t, err)
		assert.Equal(t, "Spring Workshop", event.Title)
		assert.Equal(t, coordinator.OrgID, event.OrganizationID)
		assert.Equal(t, coordinator.ID, event.OrganizerID)
		assert.False(t, event.Completed)
	})

	t.Run("regular user forbidden", func(t *testing.T) {
		svc := NewEventService(&mockEventStore{}, testLogger())
		actor := coordinator
		actor.Role = model.RoleUser
		_, err := svc.Create(context.Background(), actor, validReq())
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("no organization", func(t *testing.T) {
		svc := NewEventService(&mockEventStore{}, testLogger())
		actor := coordinator
		actor.OrgID = ""
		_, err := svc.Create(context.Background(), actor, validReq())
		assert.ErrorIs(t, err, ErrOrganizationNeeded)
	})

	t.Run("blank title", func(t *testing.T) {
		svc := NewEventService(&mockEventStore{}, testLogger())
		req := validReq()
		req.Title = "   "
		_, err := svc.Create(context.Background(), coordinator, req)
		assert.ErrorIs(t, err, ErrTitleRequired)
	})

	t.Run("past date", func(t *testing.T) {
		svc := NewEventService(&mockEventStore{}, testLogger())
		req := validReq()
		req.Date = time.Now().Add(-time.Hour)
		_, err := svc.Create(context.Background(), coordinator, req)
		assert.ErrorIs(t, err, ErrDateNotFuture)
	})

	t.Run("inverted team bounds", func(t *testing.T) {
		svc := NewEventService(&mockEventStore{}, testLogger())
		req := validReq()
		req.MinTeamSize = 4
		req.MaxTeamSize = 2
		_, err := svc.Create(context.Background(), coordinator, req)
		assert.ErrorIs(t, err, ErrInvalidTeamBounds)
	})
}

func TestEventGet_LazyCompletion(t *testing.T) {
	pastEvent := futureEvent()
	pastEvent.Date = time.Now().Add(-time.Hour)

	var completedID string
	store := eventStoreWith(pastEvent)
	store.markCompletedFunc = func(ctx context.Context, id string) error {
		completedID = id
		return nil
	}
	svc := NewEventService(store, testLogger())

	event, err := svc.Get(context.Background(), pastEvent.ID)
	require.NoError(t, err)
	assert.True(t, event.Completed)
	assert.Equal(t, pastEvent.ID, completedID)
}

func TestEventGet_NotFound(t *testing.T) {
	svc := NewEventService(&mockEventStore{}, testLogger())
	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestEventList_FlagsPastEvents(t *testing.T) {
	store := &mockEventStore{
		listFunc: func(ctx context.Context) ([]model.Event, error) {
			return []model.Event{
				{ID: "past", Date: time.Now().Add(-time.Hour)},
				{ID: "upcoming", Date: time.Now().Add(time.Hour)},
			}, nil
		},
	}
	svc := NewEventService(store, testLogger())

	events, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.True(t, events[0].Completed)
	assert.False(t, events[1].Completed)
}

func TestEventComplete(t *testing.T) {
	event := futureEvent()

	t.Run("organizer completes", func(t *testing.T) {
		svc := NewEventService(eventStoreWith(event), testLogger())
		actor := model.Actor{ID: event.OrganizerID, Role: model.RoleUser}

		completed, err := svc.Complete(context.Background(), actor, event.ID)
		require.NoError(t, err)
		assert.True(t, completed.Completed)
	})

	t.Run("unrelated actor forbidden", func(t *testing.T) {
		svc := NewEventService(eventStoreWith(event), testLogger())
		_, err := svc.Complete(context.Background(), regularActor(), event.ID)
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/gatherhall/gatherhall/internal/model"
	"github.com/gatherhall/gatherhall/internal/notify"
	"github.com/gatherhall/gatherhall/internal/repository"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ============================================================================
// Mock stores
// ============================================================================

type mockEventStore struct {
	createFunc        func(ctx context.Context, event *model.Event) error
	getByIDFunc       func(ctx context.Context, id string) (*model.Event, error)
	listFunc          func(ctx context.Context) ([]model.Event, error)
	markCompletedFunc func(ctx context.Context, id string) error
}

func (m *mockEventStore) Create(ctx context.Context, event *model.Event) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, event)
	}
	return nil
}

func (m *mockEventStore) GetByID(ctx context.Context, id string) (*model.Event, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockEventStore) List(ctx context.Context) ([]model.Event, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockEventStore) MarkCompleted(ctx context.Context, id string) error {
	if m.markCompletedFunc != nil {
		return m.markCompletedFunc(ctx, id)
	}
	return nil
}

type mockRegistrationStore struct {
	createFunc              func(ctx context.Context, reg *model.Registration) error
	getByIDFunc             func(ctx context.Context, id string) (*model.Registration, error)
	getByEventAndUserFunc   func(ctx context.Context, eventID, userID string) (*model.Registration, error)
	listByEventFunc         func(ctx context.Context, eventID string) ([]model.Registration, error)
	replaceParticipantsFunc func(ctx context.Context, id string, participants []model.Participant) error

	mu       sync.Mutex
	replaced [][]model.Participant
}

func (m *mockRegistrationStore) Create(ctx context.Context, reg *model.Registration) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, reg)
	}
	reg.ID = "reg-1"
	reg.CreatedAt = time.Now().UTC()
	reg.UpdatedAt = reg.CreatedAt
	return nil
}

func (m *mockRegistrationStore) GetByID(ctx context.Context, id string) (*model.Registration, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockRegistrationStore) GetByEventAndUser(ctx context.Context, eventID, userID string) (*model.Registration, error) {
	if m.getByEventAndUserFunc != nil {
		return m.getByEventAndUserFunc(ctx, eventID, userID)
	}
	return nil, repository.ErrNotFound
}

func (m *mockRegistrationStore) ListByEvent(ctx context.Context, eventID string) ([]model.Registration, error) {
	if m.listByEventFunc != nil {
		return m.listByEventFunc(ctx, eventID)
	}
	return nil, nil
}

func (m *mockRegistrationStore) ReplaceParticipants(ctx context.Context, id string, participants []model.Participant) error {
	m.mu.Lock()
	snapshot := make([]model.Participant, len(participants))
	copy(snapshot, participants)
	m.replaced = append(m.replaced, snapshot)
	m.mu.Unlock()
	if m.replaceParticipantsFunc != nil {
		return m.replaceParticipantsFunc(ctx, id, participants)
	}
	return nil
}

func (m *mockRegistrationStore) lastReplaced() []model.Participant {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.replaced) == 0 {
		return nil
	}
	return m.replaced[len(m.replaced)-1]
}

type mockOrgStore struct {
	getByIDFunc func(ctx context.Context, id string) (*model.Organization, error)
}

func (m *mockOrgStore) GetByID(ctx context.Context, id string) (*model.Organization, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &model.Organization{ID: id, Name: "Test Org"}, nil
}

// ============================================================================
// Mock notification gateway
// ============================================================================

type mockConfirmations struct {
	mu    sync.Mutex
	calls [][]string
}

func (m *mockConfirmations) RegistrationConfirmed(recipients []string, details notify.EventDetails) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, recipients)
}

func (m *mockConfirmations) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

type mockCertificates struct {
	mu    sync.Mutex
	calls []notify.Certificate
	err   error
}

func (m *mockCertificates) Certificate(ctx context.Context, cert notify.Certificate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, cert)
	return m.err
}

func (m *mockCertificates) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// ============================================================================
// Fixtures
// ============================================================================

func futureEvent() *model.Event {
	return &model.Event{
		ID:             "event-1",
		Title:          "Autumn Hack Night",
		Location:       "Hall B",
		Date:           time.Now().Add(48 * time.Hour),
		MinTeamSize:    1,
		MaxTeamSize:    4,
		OrganizationID: model.NewOrgID("org-1"),
		OrganizerID:    "organizer-1",
	}
}

func regularActor() model.Actor {
	return model.Actor{
		ID:    "user-1",
		Name:  "Jordan Miles",
		Email: "jordan@example.com",
		Role:  model.RoleUser,
		OrgID: model.NewOrgID("org-9"),
	}
}

func eventStoreWith(event *model.Event) *mockEventStore {
	return &mockEventStore{
		getByIDFunc: func(ctx context.Context, id string) (*model.Event, error) {
			if id == event.ID {
				copied := *event
				return &copied, nil
			}
			return nil, repository.ErrNotFound
		},
	}
}

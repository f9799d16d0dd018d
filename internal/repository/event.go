package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gatherhall/gatherhall/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EventRepository handles persistence for events.
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, title, description, location, date, min_team_size,
	max_team_size, completed, organization_id, organizer_id, created_at`

// Create inserts a new event, assigning it a generated UUID.
func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	event.ID = uuid.New().String()
	event.CreatedAt = time.Now().UTC()

	_, err := r.db.Exec(ctx,
		`INSERT INTO events (`+eventColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		event.ID, event.Title, event.Description, event.Location, event.Date,
		event.MinTeamSize, event.MaxTeamSize, event.Completed,
		string(event.OrganizationID), event.OrganizerID, event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// GetByID returns a single event or ErrNotFound.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

// List returns all events ordered by date ascending.
func (r *EventRepository) List(ctx context.Context) ([]model.Event, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+eventColumns+` FROM events ORDER BY date ASC`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, *event)
	}
	return events, rows.Err()
}

// MarkCompleted sets the completed flag on a single event.
func (r *EventRepository) MarkCompleted(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE events SET completed = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark event completed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CompletePastDue marks every event whose date has passed as completed and
// returns how many rows changed. Used by the background sweeper; reads also
// complete lazily so the sweeper is a catch-up, not a correctness requirement.
func (r *EventRepository) CompletePastDue(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE events SET completed = TRUE WHERE completed = FALSE AND date < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("complete past-due events: %w", err)
	}
	return tag.RowsAffected(), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*model.Event, error) {
	var e model.Event
	var orgID string
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Location, &e.Date,
		&e.MinTeamSize, &e.MaxTeamSize, &e.Completed, &orgID, &e.OrganizerID,
		&e.CreatedAt)
	if err != nil {
		return nil, err
	}
	e.OrganizationID = model.NewOrgID(orgID)
	return &e, nil
}

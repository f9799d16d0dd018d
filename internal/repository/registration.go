package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gatherhall/gatherhall/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the SQLSTATE raised when an insert hits a unique index.
const uniqueViolation = "23505"

// RegistrationRepository handles persistence for registrations. Participants
// are stored as a JSONB array embedded in the registration row and replaced
// wholesale on every mutation.
type RegistrationRepository struct {
	db *pgxpool.Pool
}

// NewRegistrationRepository constructs a RegistrationRepository.
func NewRegistrationRepository(db *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Create inserts a new registration. The unique index on
// (event_id, user_id) is the sole concurrency guard against
// double-registration: a request that loses the race gets
// ErrAlreadyRegistered rather than corrupting state.
func (r *RegistrationRepository) Create(ctx context.Context, reg *model.Registration) error {
	reg.ID = uuid.New().String()
	now := time.Now().UTC()
	reg.CreatedAt = now
	reg.UpdatedAt = now

	participants, err := json.Marshal(reg.Participants)
	if err != nil {
		return fmt.Errorf("marshal participants: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO registrations (id, event_id, user_id, team_size, status, participants, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		reg.ID, reg.EventID, reg.UserID, reg.TeamSize, string(reg.Status),
		participants, reg.CreatedAt, reg.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrAlreadyRegistered
		}
		return fmt.Errorf("insert registration: %w", err)
	}
	return nil
}

// GetByID returns a single registration or ErrNotFound.
func (r *RegistrationRepository) GetByID(ctx context.Context, id string) (*model.Registration, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, event_id, user_id, team_size, status, participants, created_at, updated_at
		 FROM registrations WHERE id = $1`, id)
	reg, err := scanRegistration(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	return reg, nil
}

// GetByEventAndUser returns the registration for an (event, user) pair or
// ErrNotFound.
func (r *RegistrationRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*model.Registration, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, event_id, user_id, team_size, status, participants, created_at, updated_at
		 FROM registrations WHERE event_id = $1 AND user_id = $2`, eventID, userID)
	reg, err := scanRegistration(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get registration by event and user: %w", err)
	}
	return reg, nil
}

// ListByEvent returns all registrations for an event in creation order.
func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID string) ([]model.Registration, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, event_id, user_id, team_size, status, participants, created_at, updated_at
		 FROM registrations WHERE event_id = $1 ORDER BY created_at ASC`, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	var regs []model.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		regs = append(regs, *reg)
	}
	return regs, rows.Err()
}

// ReplaceParticipants swaps the entire participant array of a registration.
// Whole-array replacement keeps attendance mutation copy-on-write: the service
// layer edits a copy and commits it in one write.
func (r *RegistrationRepository) ReplaceParticipants(ctx context.Context, id string, participants []model.Participant) error {
	data, err := json.Marshal(participants)
	if err != nil {
		return fmt.Errorf("marshal participants: %w", err)
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE registrations SET participants = $2, updated_at = $3 WHERE id = $1`,
		id, data, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("replace participants: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanRegistration(row rowScanner) (*model.Registration, error) {
	var reg model.Registration
	var status string
	var participants []byte
	err := row.Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.TeamSize, &status,
		&participants, &reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		return nil, err
	}
	reg.Status = model.RegistrationStatus(status)
	if err := json.Unmarshal(participants, &reg.Participants); err != nil {
		return nil, fmt.Errorf("unmarshal participants: %w", err)
	}
	return &reg, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatherhall/gatherhall/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OrganizationRepository provides read access to organizations. The core only
// needs names for notification content; organization management is handled
// elsewhere.
type OrganizationRepository struct {
	db *pgxpool.Pool
}

// NewOrganizationRepository constructs an OrganizationRepository.
func NewOrganizationRepository(db *pgxpool.Pool) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// GetByID returns a single organization or ErrNotFound.
func (r *OrganizationRepository) GetByID(ctx context.Context, id string) (*model.Organization, error) {
	var org model.Organization
	err := r.db.QueryRow(ctx,
		`SELECT id, name FROM organizations WHERE id = $1`, id,
	).Scan(&org.ID, &org.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get organization: %w", err)
	}
	return &org, nil
}

package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is applied idempotently at startup. The compound unique index on
// registrations(event_id, user_id) backs the at-most-one-registration
// guarantee; the application-level duplicate check only exists for a friendly
// error on the common path.
const schema = `
CREATE TABLE IF NOT EXISTS organizations (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS events (
	id              TEXT PRIMARY KEY,
	title           TEXT NOT NULL,
	description     TEXT NOT NULL DEFAULT '',
	location        TEXT NOT NULL DEFAULT '',
	date            TIMESTAMPTZ NOT NULL,
	min_team_size   INT NOT NULL CHECK (min_team_size >= 1),
	max_team_size   INT NOT NULL CHECK (max_team_size >= min_team_size),
	completed       BOOLEAN NOT NULL DEFAULT FALSE,
	organization_id TEXT NOT NULL REFERENCES organizations(id),
	organizer_id    TEXT NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS registrations (
	id           TEXT PRIMARY KEY,
	event_id     TEXT NOT NULL REFERENCES events(id),
	user_id      TEXT NOT NULL,
	team_size    INT NOT NULL CHECK (team_size >= 1),
	status       TEXT NOT NULL,
	participants JSONB NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL,
	CONSTRAINT registrations_event_user_unique UNIQUE (event_id, user_id)
);

CREATE INDEX IF NOT EXISTS registrations_event_idx ON registrations (event_id);
`

// EnsureSchema applies the schema. Every statement is idempotent so this is
// safe to run on every boot.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

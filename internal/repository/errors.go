// Package repository implements all database queries for the platform.
// It uses pgx directly (no ORM) for transparency and performance.
package repository

import "errors"

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrAlreadyRegistered is returned when a registration for the same
// (event, user) pair already exists. The compound unique index on
// registrations(event_id, user_id) raises this even when two requests race
// past the application-level duplicate check.
var ErrAlreadyRegistered = errors.New("already registered for this event")

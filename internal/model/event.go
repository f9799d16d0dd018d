// Package model defines the core domain types for the event hosting platform.
package model

import "time"

// Event represents a hosted event owned by an organization.
type Event struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Location       string    `json:"location"`
	Date           time.Time `json:"date"`
	MinTeamSize    int       `json:"min_team_size"`
	MaxTeamSize    int       `json:"max_team_size"`
	Completed      bool      `json:"completed"`
	OrganizationID OrgID     `json:"organization_id"`
	OrganizerID    string    `json:"organizer_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// Closed reports whether the event no longer accepts registrations: it has
// been completed explicitly, or its date has passed.
func (e *Event) Closed(now time.Time) bool {
	return e.Completed || e.Date.Before(now)
}

// CreateEventRequest is the payload for creating a new event.
type CreateEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Date        time.Time `json:"date"`
	MinTeamSize int       `json:"min_team_size"`
	MaxTeamSize int       `json:"max_team_size"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

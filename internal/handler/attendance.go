package handler

import (
	"context"
	"net/http"

	"github.com/gatherhall/gatherhall/internal/middleware"
	"github.com/gatherhall/gatherhall/internal/model"
	"github.com/go-chi/chi/v5"
)

// AttendanceService is the surface of the attendance state machine the
// handlers need.
type AttendanceService interface {
	Apply(ctx context.Context, actor model.Actor, eventID, registrationID string, req model.AttendanceRequest) (*model.Participant, error)
}

// AttendanceHandler holds the HTTP handler for attendance transitions.
type AttendanceHandler struct {
	svc AttendanceService
}

// NewAttendanceHandler constructs an AttendanceHandler.
func NewAttendanceHandler(svc AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{svc: svc}
}

// Update handles PATCH /events/{id}/registrations/{regID}/attendance
func (h *AttendanceHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req model.AttendanceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	participant, err := h.svc.Apply(r.Context(), actor,
		chi.URLParam(r, "id"), chi.URLParam(r, "regID"), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.AttendanceResponse{
		Success:     true,
		Participant: *participant,
	})
}

package handler

import (
	"context"
	"net/http"

	"github.com/gatherhall/gatherhall/internal/middleware"
	"github.com/gatherhall/gatherhall/internal/model"
	"github.com/go-chi/chi/v5"
)

// RegistrationService is the surface of the registration engine the handlers
// need.
type RegistrationService interface {
	Create(ctx context.Context, actor model.Actor, eventID string, req model.RegisterRequest) (*model.Registration, error)
	Status(ctx context.Context, actor model.Actor, eventID string) (bool, error)
	Roster(ctx context.Context, actor model.Actor, eventID string) ([]model.Registration, error)
}

// RegistrationHandler holds the HTTP handlers for registration endpoints.
type RegistrationHandler struct {
	svc RegistrationService
}

// NewRegistrationHandler constructs a RegistrationHandler.
func NewRegistrationHandler(svc RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{svc: svc}
}

// Register handles POST /events/{id}/register
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req model.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	reg, err := h.svc.Create(r.Context(), actor, chi.URLParam(r, "id"), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, reg)
}

// Status handles GET /events/{id}/registration-status
func (h *RegistrationHandler) Status(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	registered, err := h.svc.Status(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.RegistrationStatusResponse{Registered: registered})
}

// Roster handles GET /events/{id}/roster
func (h *RegistrationHandler) Roster(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	regs, err := h.svc.Roster(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if regs == nil {
		regs = []model.Registration{}
	}
	writeJSON(w, http.StatusOK, regs)
}

// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gatherhall/gatherhall/internal/model"
	"github.com/gatherhall/gatherhall/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeDomainError maps a service-layer sentinel to its HTTP status with a
// stable message. Unknown errors become a 500 without leaking detail.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrRegistrationNotFound),
		errors.Is(err, service.ErrParticipantNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrAlreadyRegistered),
		errors.Is(err, service.ErrEventClosed):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrSelfRegistrationForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidStateTransition):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrTeamSizeOutOfRange),
		errors.Is(err, service.ErrUnexpectedParticipants),
		errors.Is(err, service.ErrIncompleteParticipantDetails),
		errors.Is(err, service.ErrInvalidParticipantEmail),
		errors.Is(err, service.ErrDuplicateParticipantEmail),
		errors.Is(err, service.ErrInvalidAttendanceInput),
		errors.Is(err, service.ErrTitleRequired),
		errors.Is(err, service.ErrDateNotFuture),
		errors.Is(err, service.ErrInvalidTeamBounds),
		errors.Is(err, service.ErrOrganizationNeeded):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

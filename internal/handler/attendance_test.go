package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gatherhall/gatherhall/internal/model"
	"github.com/gatherhall/gatherhall/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAttendanceService struct {
	applyFunc func(ctx context.Context, actor model.Actor, eventID, registrationID string, req model.AttendanceRequest) (*model.Participant, error)
}

func (m *mockAttendanceService) Apply(ctx context.Context, actor model.Actor, eventID, registrationID string, req model.AttendanceRequest) (*model.Participant, error) {
	return m.applyFunc(ctx, actor, eventID, registrationID, req)
}

func attendanceRouter(h *AttendanceHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Patch("/events/{id}/registrations/{regID}/attendance", h.Update)
	return r
}

func TestAttendanceHandler_OK(t *testing.T) {
	svc := &mockAttendanceService{
		applyFunc: func(ctx context.Context, actor model.Actor, eventID, registrationID string, req model.AttendanceRequest) (*model.Participant, error) {
			assert.Equal(t, "event-1", eventID)
			assert.Equal(t, "reg-1", registrationID)
			assert.Equal(t, model.ActionMarkPresent, req.Action)
			return &model.Participant{
				Name:       "Sam Ortega",
				Email:      req.ParticipantEmail,
				Attendance: model.Attendance{Status: model.AttendanceConfirmed},
			}, nil
		},
	}
	router := attendanceRouter(NewAttendanceHandler(svc))

	body := `{"participant_email":"sam@example.com","action":"mark-present"}`
	req := asActor(httptest.NewRequest(http.MethodPatch, "/events/event-1/registrations/reg-1/attendance", strings.NewReader(body)), testActor())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp model.AttendanceResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, model.AttendanceConfirmed, resp.Participant.Attendance.Status)
}

func TestAttendanceHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"forbidden", service.ErrForbidden, http.StatusForbidden},
		{"event not found", service.ErrEventNotFound, http.StatusNotFound},
		{"registration not found", service.ErrRegistrationNotFound, http.StatusNotFound},
		{"participant not found", service.ErrParticipantNotFound, http.StatusNotFound},
		{"invalid transition", service.ErrInvalidStateTransition, http.StatusConflict},
		{"invalid input", service.ErrInvalidAttendanceInput, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAttendanceService{
				applyFunc: func(ctx context.Context, actor model.Actor, eventID, registrationID string, req model.AttendanceRequest) (*model.Participant, error) {
					return nil, tt.err
				},
			}
			router := attendanceRouter(NewAttendanceHandler(svc))

			body := `{"participant_email":"sam@example.com","action":"mark-present"}`
			req := asActor(httptest.NewRequest(http.MethodPatch, "/events/event-1/registrations/reg-1/attendance", strings.NewReader(body)), testActor())
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestAttendanceHandler_Unauthenticated(t *testing.T) {
	router := attendanceRouter(NewAttendanceHandler(&mockAttendanceService{}))

	req := httptest.NewRequest(http.MethodPatch, "/events/event-1/registrations/reg-1/attendance", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"mentorhub/database/sessionstore"
	"mentorhub/models"
	"mentorhub/services/availability"
	"mentorhub/services/reference"
	"mentorhub/services/schedulerequest"
	"mentorhub/upstream"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRespondErrorStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "grid validation", err: &availability.ValidationError{Field: "data", Message: "x"}, want: http.StatusBadRequest},
		{name: "request validation", err: &schedulerequest.ValidationError{Field: "tanggal", Message: "x"}, want: http.StatusBadRequest},
		{name: "terminal request", err: &schedulerequest.ValidationError{Field: "id", Message: "final", Err: schedulerequest.ErrTerminal}, want: http.StatusBadRequest},
		{name: "forbidden grid", err: availability.ErrForbidden, want: http.StatusForbidden},
		{name: "forbidden request", err: schedulerequest.ErrForbidden, want: http.StatusForbidden},
		{name: "missing session", err: sessionstore.ErrNotFound, want: http.StatusNotFound},
		{name: "unknown collection", err: fmt.Errorf("%w: chat", reference.ErrUnknownCollection), want: http.StatusNotFound},
		{name: "busy", err: availability.ErrSessionBusy, want: http.StatusConflict},
		{name: "conflict save", err: &availability.SaveError{Kind: availability.SaveConflict, Status: 422}, want: http.StatusConflict},
		{name: "server save 4xx", err: &availability.SaveError{Kind: availability.SaveServer, Status: 422}, want: http.StatusUnprocessableEntity},
		{name: "server save 5xx", err: &availability.SaveError{Kind: availability.SaveServer, Status: 500}, want: http.StatusBadGateway},
		{name: "network save", err: &availability.SaveError{Kind: availability.SaveNetwork, Err: upstream.ErrTransport}, want: http.StatusServiceUnavailable},
		{name: "transport", err: fmt.Errorf("x: %w", upstream.ErrTransport), want: http.StatusServiceUnavailable},
		{name: "invalid response", err: upstream.ErrInvalidResponse, want: http.StatusBadGateway},
		{name: "platform 404", err: fmt.Errorf("x: %w", &upstream.APIError{Status: 404}), want: http.StatusNotFound},
		{name: "platform 401", err: &upstream.APIError{Status: 401}, want: http.StatusBadGateway},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			respondError(c, tt.err)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRespondErrorConflictBody(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	respondError(c, &availability.SaveError{
		Kind:      availability.SaveConflict,
		Conflicts: []models.ScheduleConflict{{Type: "same_class_twice", Tanggal: "2024-03-05", Sesi: "1"}},
		Lines:     []string{"Same class twice on the same day (2024-03-05)"},
	})

	var body saveErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "conflict", body.Kind)
	assert.Equal(t, []string{"Same class twice on the same day (2024-03-05)"}, body.Lines)
	assert.Len(t, body.Conflicts, 1)
}

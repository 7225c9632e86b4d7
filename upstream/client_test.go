package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentorhub/models"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(Options{BaseURL: srv.URL + "/", Timeout: 2 * time.Second, ServiceToken: "svc"})
}

func TestGetAvailabilityCoercesRows(t *testing.T) {
	var gotAuth, gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		assert.Equal(t, "/availability-mentor", r.URL.Path)
		_, _ = w.Write([]byte(`[{"hari":"Senin","sesi":1,"is_available":0,"reason":"rapat","kelas_id":null},
			{"hari":"Rabu","sesi":"3","is_available":"1"}]`))
	})

	ctx := WithToken(context.Background(), "user-token")
	slots, err := c.GetAvailability(ctx, 7, 10)
	require.NoError(t, err)
	require.Len(t, slots, 2)

	assert.Equal(t, "Bearer user-token", gotAuth)
	assert.Equal(t, "mentor_id=7&minggu_ke=10", gotQuery)
	assert.Equal(t, models.FlexString("1"), slots[0].Sesi)
	assert.False(t, bool(slots[0].IsAvailable))
	assert.Equal(t, "rapat", slots[0].Reason)
	assert.Nil(t, slots[0].KelasID)
	assert.True(t, bool(slots[1].IsAvailable))
}

func TestServiceTokenWhenContextHasNone(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	})
	kelas, err := c.ListKelas(context.Background())
	require.NoError(t, err)
	assert.Empty(t, kelas)
	assert.NotNil(t, kelas)
	assert.Equal(t, "Bearer svc", gotAuth)
}

func TestSaveAvailabilityErrors(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		wantConflicts int
		wantMessage   string
	}{
		{
			name:          "structured conflicts",
			status:        http.StatusConflict,
			body:          `{"conflicts":[{"type":"double_booking","tanggal":"2024-03-04","sesi":2}]}`,
			wantConflicts: 1,
		},
		{name: "error message", status: http.StatusBadRequest, body: `{"error":"minggu_ke tidak valid"}`, wantMessage: "minggu_ke tidak valid"},
		{name: "message field", status: http.StatusUnprocessableEntity, body: `{"message":"data wajib diisi"}`, wantMessage: "data wajib diisi"},
		{name: "no body", status: http.StatusInternalServerError, body: ``},
		{name: "html body", status: http.StatusBadGateway, body: `<html>bad gateway</html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				var req models.SaveAvailabilityRequest
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, int64(3), req.MentorID)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			err := c.SaveAvailability(context.Background(), models.SaveAvailabilityRequest{MentorID: 3, MingguKe: 10})
			apiErr, ok := AsAPIError(err)
			require.True(t, ok, "expected APIError, got %v", err)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Len(t, apiErr.Conflicts, tt.wantConflicts)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
		})
	}
}

func TestConflictSesiDecodesAsString(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"conflicts":[{"type":"double_booking","tanggal":"2024-03-04","sesi":2}]}`))
	})
	err := c.SaveAvailability(context.Background(), models.SaveAvailabilityRequest{})
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, models.FlexString("2"), apiErr.Conflicts[0].Sesi)
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(Options{BaseURL: url, Timeout: time.Second})
	_, err := c.ListMentors(context.Background())
	assert.True(t, errors.Is(err, ErrTransport))
	_, isAPI := AsAPIError(err)
	assert.False(t, isAPI)
}

func TestInvalidReferenceRowRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":0,"nama":"tanpa id"}]`))
	})
	_, err := c.ListMataPelajaran(context.Background())
	assert.True(t, errors.Is(err, ErrInvalidResponse))
}

func TestApproveScheduleRequest(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/permintaan-jadwal/42/approve", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"approved"}`))
	})
	update, err := c.ApproveScheduleRequest(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), update.ID)
	assert.Equal(t, models.RequestStatusApproved, update.Status)
}

func TestAvailableMentorsQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/mentors/available", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "4", q.Get("mapel_id"))
		assert.Equal(t, "2024-03-04", q.Get("tanggal"))
		assert.Equal(t, "2", q.Get("sesi"))
		assert.Equal(t, "9", q.Get("kelas_id"))
		_, _ = w.Write([]byte(`[{"id":11,"nama":"Bu Sari"}]`))
	})
	opts, err := c.AvailableMentors(context.Background(), models.MentorQuery{MapelID: 4, Tanggal: "2024-03-04", Sesi: "2", KelasID: 9})
	require.NoError(t, err)
	assert.Equal(t, []models.MentorOption{{ID: 11, Nama: "Bu Sari"}}, opts)
}

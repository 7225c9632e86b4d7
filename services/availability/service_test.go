package availability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	activityRepo "mentorhub/database/repository/activity"
	"mentorhub/database/sessionstore"
	"mentorhub/models"
	"mentorhub/services/activity"
	"mentorhub/upstream"
)

type fakeAPI struct {
	mu      sync.Mutex
	rows    []models.AvailabilitySlot
	loadErr error
	saveErr error
	saved   []models.SaveAvailabilityRequest
	// onSave runs while the service is in the saving state.
	onSave func()
	onLoad func()
}

func (f *fakeAPI) GetAvailability(ctx context.Context, mentorID int64, mingguKe int) ([]models.AvailabilitySlot, error) {
	if f.onLoad != nil {
		f.onLoad()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return append([]models.AvailabilitySlot(nil), f.rows...), nil
}

func (f *fakeAPI) SaveAvailability(ctx context.Context, req models.SaveAvailabilityRequest) error {
	if f.onSave != nil {
		f.onSave()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, req)
	return f.saveErr
}

var (
	mentorActor = models.Actor{UserID: 100, Role: "mentor", MentorID: 7}
	adminActor  = models.Actor{UserID: 1, Role: "admin"}
)

func newService(t *testing.T, api AvailabilityAPI) (*DefaultAvailabilityService, activityRepo.ActivityRepository) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := activityRepo.NewMemoryActivityRepo()
	store := sessionstore.New[models.GridSession](client, "grid:", time.Minute)
	svc := NewDefaultAvailabilityService(api, store, activity.NewRecorder(repo, nil))
	svc.now = func() time.Time { return time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC) }
	return svc, repo
}

func TestLoadAuthorization(t *testing.T) {
	svc, _ := newService(t, &fakeAPI{})
	ctx := context.Background()

	_, err := svc.Load(ctx, mentorActor, 8, 10)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Load(ctx, models.Actor{UserID: 5, Role: "student"}, 7, 10)
	assert.ErrorIs(t, err, ErrForbidden)

	grid, err := svc.Load(ctx, adminActor, 8, 10)
	require.NoError(t, err)
	assert.Len(t, grid, 35)

	_, err = svc.Load(ctx, mentorActor, 7, 0)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestSaveSubmitsWholeGrid(t *testing.T) {
	api := &fakeAPI{}
	svc, repo := newService(t, api)
	ctx := context.Background()

	grid := Toggle(BuildDefaultGrid(), "Kamis", "5", false)
	require.NoError(t, svc.Save(ctx, mentorActor, 7, 10, grid))

	require.Len(t, api.saved, 1)
	assert.Equal(t, int64(7), api.saved[0].MentorID)
	assert.Equal(t, 10, api.saved[0].MingguKe)
	assert.Equal(t, grid, api.saved[0].Data)

	feed, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, models.ActivityAvailabilitySaved, feed[0].Action)
}

func TestSaveRejectsPartialGridWithoutCalling(t *testing.T) {
	api := &fakeAPI{}
	svc, _ := newService(t, api)

	err := svc.Save(context.Background(), mentorActor, 7, 10, BuildDefaultGrid()[:10])
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Empty(t, api.saved)
}

func TestSaveErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		upstream error
		wantKind SaveErrorKind
		wantMsg  string
		wantLine string
	}{
		{
			name: "conflicts",
			upstream: &upstream.APIError{Status: 409, Conflicts: []models.ScheduleConflict{
				{Type: "double_booking", Tanggal: "2024-03-04", Sesi: "2"},
			}},
			wantKind: SaveConflict,
			wantLine: "Double booking at 2024-03-04 session 2",
		},
		{name: "server message", upstream: &upstream.APIError{Status: 400, Message: "minggu_ke tidak valid"}, wantKind: SaveServer, wantMsg: "minggu_ke tidak valid"},
		{name: "bare status", upstream: &upstream.APIError{Status: 500}, wantKind: SaveServer, wantMsg: genericSaveMessage},
		{name: "network", upstream: upstream.ErrTransport, wantKind: SaveNetwork, wantMsg: networkSaveMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService(t, &fakeAPI{saveErr: tt.upstream})
			err := svc.Save(context.Background(), mentorActor, 7, 10, BuildDefaultGrid())

			var se *SaveError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.wantKind, se.Kind)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, se.Message)
			}
			if tt.wantLine != "" {
				assert.Equal(t, []string{tt.wantLine}, se.Lines)
			}

			feed, _ := repo.ListRecent(context.Background(), 10)
			assert.Empty(t, feed)
		})
	}
}

func TestSessionLifecycle(t *testing.T) {
	api := &fakeAPI{rows: []models.AvailabilitySlot{{Hari: "Senin", Sesi: "1", IsAvailable: false}}}
	svc, _ := newService(t, api)
	ctx := context.Background()

	sess, err := svc.OpenSession(ctx, mentorActor, 7, 10)
	require.NoError(t, err)
	assert.Equal(t, models.GridReady, sess.State)
	assert.Len(t, sess.Grid, 35)
	assert.False(t, bool(sess.Grid[0].IsAvailable))

	no := false
	sess, err = svc.ToggleSlots(ctx, mentorActor, sess.SessionID, []models.SlotToggle{{Hari: "Selasa", Sesi: "3", IsAvailable: &no}})
	require.NoError(t, err)
	assert.True(t, sess.Dirty)
	assert.False(t, bool(sess.Grid[1*5+2].IsAvailable))

	sess, err = svc.SaveSession(ctx, mentorActor, sess.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.GridReady, sess.State)
	assert.Equal(t, models.SaveResultSuccess, sess.LastResult)
	assert.False(t, sess.Dirty)
	require.NotNil(t, sess.SavedAt)
	require.Len(t, api.saved, 1)
	assert.False(t, bool(api.saved[0].Data[1*5+2].IsAvailable))

	require.NoError(t, svc.CloseSession(ctx, mentorActor, sess.SessionID))
	_, err = svc.GetSession(ctx, mentorActor, sess.SessionID)
	assert.ErrorIs(t, err, sessionstore.ErrNotFound)
}

func TestSessionConflictKeepsEdits(t *testing.T) {
	api := &fakeAPI{saveErr: &upstream.APIError{Status: 409, Conflicts: []models.ScheduleConflict{
		{Type: "double_booking", Tanggal: "2024-03-04", Sesi: "2"},
	}}}
	svc, _ := newService(t, api)
	ctx := context.Background()

	sess, err := svc.OpenSession(ctx, mentorActor, 7, 10)
	require.NoError(t, err)
	no := false
	edited, err := svc.ToggleSlots(ctx, mentorActor, sess.SessionID, []models.SlotToggle{{Hari: "Senin", Sesi: "2", IsAvailable: &no}})
	require.NoError(t, err)

	after, err := svc.SaveSession(ctx, mentorActor, sess.SessionID)
	var se *SaveError
	require.ErrorAs(t, err, &se)
	require.NotNil(t, after)
	assert.Equal(t, models.GridReady, after.State)
	assert.Equal(t, models.SaveResultConflicts, after.LastResult)
	assert.Equal(t, []string{"Double booking at 2024-03-04 session 2"}, after.ConflictLines)
	assert.Equal(t, edited.Grid, after.Grid)
	assert.True(t, after.Dirty)
}

func TestSessionRefusesToggleWhileSaving(t *testing.T) {
	api := &fakeAPI{}
	svc, _ := newService(t, api)
	ctx := context.Background()

	sess, err := svc.OpenSession(ctx, mentorActor, 7, 10)
	require.NoError(t, err)

	no := false
	var toggleErr error
	api.onSave = func() {
		_, toggleErr = svc.ToggleSlots(ctx, mentorActor, sess.SessionID, []models.SlotToggle{{Hari: "Rabu", Sesi: "1", IsAvailable: &no}})
	}
	_, err = svc.SaveSession(ctx, mentorActor, sess.SessionID)
	require.NoError(t, err)
	assert.ErrorIs(t, toggleErr, ErrSessionBusy)

	after, err := svc.GetSession(ctx, mentorActor, sess.SessionID)
	require.NoError(t, err)
	assert.True(t, bool(after.Grid[2*5].IsAvailable))
}

func TestCancelledSaveReturnsSessionToReady(t *testing.T) {
	api := &fakeAPI{}
	svc, _ := newService(t, api)

	sess, err := svc.OpenSession(context.Background(), mentorActor, 7, 10)
	require.NoError(t, err)
	no := false
	edited, err := svc.ToggleSlots(context.Background(), mentorActor, sess.SessionID, []models.SlotToggle{{Hari: "Senin", Sesi: "1", IsAvailable: &no}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	api.onSave = cancel
	after, err := svc.SaveSession(ctx, mentorActor, sess.SessionID)
	require.Error(t, err)
	require.NotNil(t, after)
	assert.Equal(t, models.GridReady, after.State)
	assert.Equal(t, models.SaveResultError, after.LastResult)
	assert.Equal(t, edited.Grid, after.Grid)
	assert.True(t, after.Dirty)

	api.onSave = nil
	_, err = svc.ToggleSlots(context.Background(), mentorActor, sess.SessionID, []models.SlotToggle{{Hari: "Senin", Sesi: "2", IsAvailable: &no}})
	assert.NoError(t, err)
}

func TestCancelledReloadReturnsSessionToReady(t *testing.T) {
	api := &fakeAPI{}
	svc, _ := newService(t, api)

	sess, err := svc.OpenSession(context.Background(), mentorActor, 7, 10)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	api.onLoad = cancel
	_, err = svc.ReloadSession(ctx, mentorActor, sess.SessionID)
	assert.ErrorIs(t, err, context.Canceled)

	api.onLoad = nil
	after, err := svc.GetSession(context.Background(), mentorActor, sess.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.GridReady, after.State)
}

func TestOpenSessionRequiresMentor(t *testing.T) {
	svc, _ := newService(t, &fakeAPI{})
	_, err := svc.OpenSession(context.Background(), adminActor, 0, 10)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "mentor_id", verr.Field)
}

func TestSessionOwnership(t *testing.T) {
	svc, _ := newService(t, &fakeAPI{})
	ctx := context.Background()

	sess, err := svc.OpenSession(ctx, adminActor, 7, 10)
	require.NoError(t, err)

	_, err = svc.GetSession(ctx, mentorActor, sess.SessionID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.SaveSession(ctx, mentorActor, sess.SessionID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestToggleValidation(t *testing.T) {
	svc, _ := newService(t, &fakeAPI{})
	ctx := context.Background()
	sess, err := svc.OpenSession(ctx, mentorActor, 7, 10)
	require.NoError(t, err)

	no := false
	_, err = svc.ToggleSlots(ctx, mentorActor, sess.SessionID, []models.SlotToggle{{Hari: "Senin", Sesi: "6", IsAvailable: &no}})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = svc.ToggleSlots(ctx, mentorActor, sess.SessionID, nil)
	assert.ErrorAs(t, err, &verr)
}

func TestOpenSessionLoadFailureLeavesNothing(t *testing.T) {
	svc, _ := newService(t, &fakeAPI{loadErr: upstream.ErrTransport})
	_, err := svc.OpenSession(context.Background(), mentorActor, 7, 10)
	assert.True(t, errors.Is(err, upstream.ErrTransport))
}

func TestReloadDiscardsEdits(t *testing.T) {
	api := &fakeAPI{}
	svc, _ := newService(t, api)
	ctx := context.Background()

	sess, err := svc.OpenSession(ctx, mentorActor, 7, 10)
	require.NoError(t, err)
	no := false
	_, err = svc.ToggleSlots(ctx, mentorActor, sess.SessionID, []models.SlotToggle{{Hari: "Senin", Sesi: "1", IsAvailable: &no}})
	require.NoError(t, err)

	api.rows = []models.AvailabilitySlot{{Hari: "Minggu", Sesi: "5", IsAvailable: false}}
	reloaded, err := svc.ReloadSession(ctx, mentorActor, sess.SessionID)
	require.NoError(t, err)
	assert.False(t, reloaded.Dirty)
	assert.True(t, bool(reloaded.Grid[0].IsAvailable))
	assert.False(t, bool(reloaded.Grid[34].IsAvailable))
}

func TestSaveAgainstHTTPUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"conflicts":[{"type":"same_class_twice","tanggal":"2024-03-05","sesi":"1"},{"type":"double_booking","tanggal":"2024-03-04","sesi":2}]}`))
	}))
	defer srv.Close()

	client := upstream.NewClient(upstream.Options{BaseURL: srv.URL, Timeout: time.Second})
	svc, _ := newService(t, client)

	err := svc.Save(context.Background(), adminActor, 7, 10, BuildDefaultGrid())
	var se *SaveError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, SaveConflict, se.Kind)
	assert.Equal(t, []string{
		"Same class twice on the same day (2024-03-05)",
		"Double booking at 2024-03-04 session 2",
	}, se.Lines)
}

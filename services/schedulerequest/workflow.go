package schedulerequest

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"mentorhub/database/sessionstore"
	"mentorhub/models"
)

const dateLayout = "2006-01-02"

func snapshotKey(actor models.Actor) string {
	return strconv.FormatInt(actor.UserID, 10)
}

// Submit sends a new request as pending. Only presence of the fields is checked
// here; the date is left to the platform.
func (s *DefaultScheduleRequestService) Submit(ctx context.Context, actor models.Actor, in models.ScheduleRequestInput) (*models.ScheduleRequest, error) {
	if in.UserID == 0 {
		in.UserID = actor.UserID
	}
	if !actor.IsAdmin() && in.UserID != actor.UserID {
		return nil, ErrForbidden
	}
	switch {
	case in.UserID == 0:
		return nil, required("user_id")
	case in.MentorID == 0:
		return nil, required("mentor_id")
	case in.KelasID == 0:
		return nil, required("kelas_id")
	case in.MataPelajaranID == 0:
		return nil, required("mata_pelajaran_id")
	case strings.TrimSpace(in.Tanggal) == "":
		return nil, required("tanggal")
	case strings.TrimSpace(in.Sesi) == "":
		return nil, required("sesi")
	}

	created, err := s.API.CreateScheduleRequest(ctx, models.CreateScheduleRequestBody{
		UserID:          in.UserID,
		MentorID:        in.MentorID,
		KelasID:         in.KelasID,
		MataPelajaranID: in.MataPelajaranID,
		Tanggal:         in.Tanggal,
		Sesi:            in.Sesi,
		Status:          models.RequestStatusPending,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to submit schedule request: %w", err)
	}
	s.Activity.Record(ctx, actor, models.ActivityRequestSubmitted, strconv.FormatInt(created.ID, 10),
		fmt.Sprintf("mentor_id=%d tanggal=%s sesi=%s", in.MentorID, in.Tanggal, in.Sesi))
	return created, nil
}

// AddSchedule schedules a session directly. Unlike Submit, past dates are
// refused before anything is sent.
func (s *DefaultScheduleRequestService) AddSchedule(ctx context.Context, actor models.Actor, in models.DirectScheduleInput) (*models.JadwalSesi, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	switch {
	case in.MentorID == 0:
		return nil, required("mentor_id")
	case in.KelasID == 0:
		return nil, required("kelas_id")
	case in.MataPelajaranID == 0:
		return nil, required("mata_pelajaran_id")
	case strings.TrimSpace(in.Tanggal) == "":
		return nil, required("tanggal")
	case strings.TrimSpace(in.Sesi) == "":
		return nil, required("sesi")
	}

	day, err := time.ParseInLocation(dateLayout, in.Tanggal, s.loc)
	if err != nil {
		return nil, &ValidationError{Field: "tanggal", Message: "must be a YYYY-MM-DD date", Err: err}
	}
	now := s.now().In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	if day.Before(today) {
		return nil, &ValidationError{Field: "tanggal", Message: "cannot be in the past"}
	}

	created, err := s.API.CreateJadwalSesi(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to add schedule: %w", err)
	}
	s.Activity.Record(ctx, actor, models.ActivityScheduleAdded, strconv.FormatInt(created.ID, 10),
		fmt.Sprintf("mentor_id=%d tanggal=%s sesi=%s", in.MentorID, in.Tanggal, in.Sesi))
	return created, nil
}

// List fetches the requests and keeps them as the actor's snapshot.
func (s *DefaultScheduleRequestService) List(ctx context.Context, actor models.Actor) (*models.RequestSnapshot, error) {
	items, err := s.API.ListScheduleRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule requests: %w", err)
	}
	snap := &models.RequestSnapshot{Items: items, FetchedAt: s.now()}
	if err := s.Snapshots.Put(ctx, snapshotKey(actor), snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// Snapshot returns the actor's last fetched list without calling the platform.
func (s *DefaultScheduleRequestService) Snapshot(ctx context.Context, actor models.Actor) (*models.RequestSnapshot, error) {
	return s.Snapshots.Get(ctx, snapshotKey(actor))
}

func (s *DefaultScheduleRequestService) Approve(ctx context.Context, actor models.Actor, id int64) (*models.StatusUpdate, error) {
	return s.transition(ctx, actor, id, s.API.ApproveScheduleRequest, models.ActivityRequestApproved)
}

func (s *DefaultScheduleRequestService) Reject(ctx context.Context, actor models.Actor, id int64) (*models.StatusUpdate, error) {
	return s.transition(ctx, actor, id, s.API.RejectScheduleRequest, models.ActivityRequestRejected)
}

func (s *DefaultScheduleRequestService) transition(
	ctx context.Context,
	actor models.Actor,
	id int64,
	call func(context.Context, int64) (*models.StatusUpdate, error),
	action string,
) (*models.StatusUpdate, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if id <= 0 {
		return nil, required("id")
	}

	snap, err := s.Snapshots.Get(ctx, snapshotKey(actor))
	if err != nil && !errors.Is(err, sessionstore.ErrNotFound) {
		return nil, err
	}
	if snap != nil {
		for _, r := range snap.Items {
			if r.ID == id && r.IsTerminal() {
				return nil, &ValidationError{Field: "id", Message: fmt.Sprintf("request %d is already %s", id, r.Status), Err: ErrTerminal}
			}
		}
	}

	update, err := call(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to %s schedule request %d: %w", strings.TrimPrefix(action, "request."), id, err)
	}

	_, err = s.Snapshots.Update(ctx, snapshotKey(actor), func(cur *models.RequestSnapshot) error {
		cur.Items = ApplyStatus(cur.Items, *update)
		return nil
	})
	if err != nil && !errors.Is(err, sessionstore.ErrNotFound) {
		return nil, err
	}

	s.Activity.Record(ctx, actor, action, strconv.FormatInt(id, 10), "")
	return update, nil
}

// ApplyStatus returns a copy of items with the entry matching update.ID given
// the new status. An id that is not in the list leaves it unchanged.
func ApplyStatus(items []models.ScheduleRequest, update models.StatusUpdate) []models.ScheduleRequest {
	out := make([]models.ScheduleRequest, len(items))
	copy(out, items)
	for i := range out {
		if out[i].ID == update.ID {
			out[i].Status = update.Status
		}
	}
	return out
}

package availability

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"mentorhub/models"
	"mentorhub/services/week"

	"github.com/google/uuid"
)

func checkWeek(mingguKe int) error {
	if !week.ValidWeek(mingguKe) {
		return &ValidationError{Field: "minggu_ke", Message: fmt.Sprintf("week must be between 1 and %d", week.MaxWeek)}
	}
	return nil
}

// Load materializes the full grid for a mentor week.
func (s *DefaultAvailabilityService) Load(ctx context.Context, actor models.Actor, mentorID int64, mingguKe int) ([]models.AvailabilitySlot, error) {
	if !actor.CanManageMentor(mentorID) {
		return nil, ErrForbidden
	}
	if err := checkWeek(mingguKe); err != nil {
		return nil, err
	}
	return s.load(ctx, mentorID, mingguKe)
}

func (s *DefaultAvailabilityService) load(ctx context.Context, mentorID int64, mingguKe int) ([]models.AvailabilitySlot, error) {
	rows, err := s.API.GetAvailability(ctx, mentorID, mingguKe)
	if err != nil {
		return nil, fmt.Errorf("failed to load availability: %w", err)
	}
	return MergeGrid(rows), nil
}

// Save submits a complete grid in one call. A failure comes back as *SaveError
// (or *ValidationError when the grid never left the service).
func (s *DefaultAvailabilityService) Save(ctx context.Context, actor models.Actor, mentorID int64, mingguKe int, grid []models.AvailabilitySlot) error {
	if !actor.CanManageMentor(mentorID) {
		return ErrForbidden
	}
	if err := checkWeek(mingguKe); err != nil {
		return err
	}
	if err := ValidateGrid(grid); err != nil {
		return err
	}
	return s.save(ctx, actor, mentorID, mingguKe, grid)
}

func (s *DefaultAvailabilityService) save(ctx context.Context, actor models.Actor, mentorID int64, mingguKe int, grid []models.AvailabilitySlot) error {
	req := models.SaveAvailabilityRequest{
		MentorID: mentorID,
		MingguKe: mingguKe,
		Data:     SortGrid(grid),
	}
	if err := s.API.SaveAvailability(ctx, req); err != nil {
		return classifySaveError(err)
	}
	s.Activity.Record(ctx, actor, models.ActivityAvailabilitySaved,
		strconv.FormatInt(mentorID, 10), fmt.Sprintf("minggu_ke=%d", mingguKe))
	return nil
}

// OpenSession starts an editing session: loading -> ready. A failed load
// leaves no session behind.
func (s *DefaultAvailabilityService) OpenSession(ctx context.Context, actor models.Actor, mentorID int64, mingguKe int) (*models.GridSession, error) {
	if mentorID <= 0 {
		return nil, &ValidationError{Field: "mentor_id", Message: "is required"}
	}
	if !actor.CanManageMentor(mentorID) {
		return nil, ErrForbidden
	}
	if err := checkWeek(mingguKe); err != nil {
		return nil, err
	}

	sess := &models.GridSession{
		SessionID: uuid.New().String(),
		OwnerID:   actor.UserID,
		MentorID:  mentorID,
		MingguKe:  mingguKe,
		State:     models.GridLoading,
	}
	if err := s.Sessions.Put(ctx, sess.SessionID, sess); err != nil {
		return nil, fmt.Errorf("failed to store grid session: %w", err)
	}

	grid, err := s.load(ctx, mentorID, mingguKe)
	if err != nil {
		_ = s.Sessions.Delete(context.WithoutCancel(ctx), sess.SessionID)
		return nil, err
	}

	return s.Sessions.Update(ctx, sess.SessionID, func(cur *models.GridSession) error {
		cur.Grid = grid
		cur.State = models.GridReady
		cur.LoadedAt = s.now()
		return nil
	})
}

// GetSession returns the session as last written.
func (s *DefaultAvailabilityService) GetSession(ctx context.Context, actor models.Actor, sessionID string) (*models.GridSession, error) {
	sess, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.OwnerID != actor.UserID {
		return nil, ErrForbidden
	}
	return sess, nil
}

// ToggleSlots applies local edits. Only ready sessions accept edits; every
// toggle must name a grid cell or none are applied.
func (s *DefaultAvailabilityService) ToggleSlots(ctx context.Context, actor models.Actor, sessionID string, toggles []models.SlotToggle) (*models.GridSession, error) {
	if len(toggles) == 0 {
		return nil, &ValidationError{Field: "toggles", Message: "at least one toggle is required"}
	}
	for i, t := range toggles {
		if !IsCell(t.Hari, t.Sesi) {
			return nil, &ValidationError{Field: fmt.Sprintf("toggles[%d]", i), Message: fmt.Sprintf("unknown slot %s/%s", t.Hari, t.Sesi)}
		}
		if t.IsAvailable == nil {
			return nil, &ValidationError{Field: fmt.Sprintf("toggles[%d].is_available", i), Message: "is required"}
		}
	}

	return s.Sessions.Update(ctx, sessionID, func(cur *models.GridSession) error {
		if cur.OwnerID != actor.UserID {
			return ErrForbidden
		}
		if cur.State != models.GridReady {
			return ErrSessionBusy
		}
		for _, t := range toggles {
			cur.Grid = Toggle(cur.Grid, t.Hari, t.Sesi, *t.IsAvailable)
		}
		cur.Dirty = true
		return nil
	})
}

// SaveSession submits the session's grid: ready -> saving -> ready. The edited
// grid is kept whatever the outcome; the outcome is recorded on the session. A
// failed save returns the updated session together with its *SaveError.
func (s *DefaultAvailabilityService) SaveSession(ctx context.Context, actor models.Actor, sessionID string) (*models.GridSession, error) {
	sess, err := s.Sessions.Update(ctx, sessionID, func(cur *models.GridSession) error {
		if cur.OwnerID != actor.UserID {
			return ErrForbidden
		}
		if cur.State != models.GridReady {
			return ErrSessionBusy
		}
		cur.State = models.GridSaving
		return nil
	})
	if err != nil {
		return nil, err
	}

	saveErr := s.save(ctx, actor, sess.MentorID, sess.MingguKe, sess.Grid)

	// The session must leave saving even when the request is gone.
	updated, err := s.Sessions.Update(context.WithoutCancel(ctx), sessionID, func(cur *models.GridSession) error {
		cur.State = models.GridReady
		cur.Conflicts = nil
		cur.ConflictLines = nil
		cur.Message = ""

		var se *SaveError
		switch {
		case saveErr == nil:
			now := s.now()
			cur.LastResult = models.SaveResultSuccess
			cur.SavedAt = &now
			cur.Dirty = false
		case errors.As(saveErr, &se) && se.Kind == SaveConflict:
			cur.LastResult = models.SaveResultConflicts
			cur.Conflicts = se.Conflicts
			cur.ConflictLines = se.Lines
		default:
			cur.LastResult = models.SaveResultError
			cur.Message = saveErr.Error()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, saveErr
}

// ReloadSession replaces the grid with a fresh load, discarding local edits.
func (s *DefaultAvailabilityService) ReloadSession(ctx context.Context, actor models.Actor, sessionID string) (*models.GridSession, error) {
	sess, err := s.Sessions.Update(ctx, sessionID, func(cur *models.GridSession) error {
		if cur.OwnerID != actor.UserID {
			return ErrForbidden
		}
		if cur.State != models.GridReady {
			return ErrSessionBusy
		}
		cur.State = models.GridLoading
		return nil
	})
	if err != nil {
		return nil, err
	}

	grid, loadErr := s.load(ctx, sess.MentorID, sess.MingguKe)

	updated, err := s.Sessions.Update(context.WithoutCancel(ctx), sessionID, func(cur *models.GridSession) error {
		cur.State = models.GridReady
		if loadErr != nil {
			return nil
		}
		cur.Grid = grid
		cur.Dirty = false
		cur.LastResult = ""
		cur.Conflicts = nil
		cur.ConflictLines = nil
		cur.Message = ""
		cur.LoadedAt = s.now()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if loadErr != nil {
		return updated, loadErr
	}
	return updated, nil
}

// CloseSession discards the session.
func (s *DefaultAvailabilityService) CloseSession(ctx context.Context, actor models.Actor, sessionID string) error {
	if _, err := s.GetSession(ctx, actor, sessionID); err != nil {
		return err
	}
	return s.Sessions.Delete(ctx, sessionID)
}

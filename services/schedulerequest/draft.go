package schedulerequest

import (
	"context"
	"fmt"

	"mentorhub/models"

	"github.com/google/uuid"
)

func (s *DefaultScheduleRequestService) CreateDraft(ctx context.Context, actor models.Actor) (*models.RequestDraft, error) {
	draft := &models.RequestDraft{
		DraftID:   uuid.New().String(),
		OwnerID:   actor.UserID,
		Options:   []models.MentorOption{},
		UpdatedAt: s.now(),
	}
	if err := s.Drafts.Put(ctx, draft.DraftID, draft); err != nil {
		return nil, fmt.Errorf("failed to store draft: %w", err)
	}
	return draft, nil
}

func (s *DefaultScheduleRequestService) GetDraft(ctx context.Context, actor models.Actor, draftID string) (*models.RequestDraft, error) {
	draft, err := s.Drafts.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.OwnerID != actor.UserID {
		return nil, ErrForbidden
	}
	return draft, nil
}

// UpdateDraft applies a form edit. Changing any query input starts a new
// generation and re-runs the mentor lookup; the lookup result is kept only if
// no newer edit arrived while it was in flight. A selected mentor missing from
// the new options is cleared.
func (s *DefaultScheduleRequestService) UpdateDraft(ctx context.Context, actor models.Actor, draftID string, change models.DraftChange) (*models.RequestDraft, error) {
	var (
		generation   int64
		query        models.MentorQuery
		queryChanged bool
	)

	draft, err := s.Drafts.Update(ctx, draftID, func(cur *models.RequestDraft) error {
		if cur.OwnerID != actor.UserID {
			return ErrForbidden
		}
		next := applyQueryChange(cur.Query, change)
		queryChanged = next != cur.Query
		if queryChanged {
			cur.Query = next
			cur.Generation++
			cur.Options = []models.MentorOption{}
			if !next.Complete() {
				cur.MentorID = 0
			}
		} else if change.MentorID != nil {
			if *change.MentorID != 0 && !hasOption(cur.Options, *change.MentorID) {
				return &ValidationError{Field: "mentor_id", Message: fmt.Sprintf("mentor %d is not available for this selection", *change.MentorID)}
			}
			cur.MentorID = *change.MentorID
		}
		cur.UpdatedAt = s.now()
		generation = cur.Generation
		query = cur.Query
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !queryChanged || !query.Complete() {
		return draft, nil
	}

	options, err := s.API.AvailableMentors(ctx, query)
	if err != nil {
		return draft, fmt.Errorf("failed to look up available mentors: %w", err)
	}

	return s.Drafts.Update(ctx, draftID, func(cur *models.RequestDraft) error {
		if cur.Generation != generation {
			return nil
		}
		cur.Options = options
		if change.MentorID != nil {
			cur.MentorID = *change.MentorID
		}
		if cur.MentorID != 0 && !hasOption(options, cur.MentorID) {
			cur.MentorID = 0
		}
		cur.UpdatedAt = s.now()
		return nil
	})
}

// SubmitDraft sends a complete draft as a schedule request and discards it.
func (s *DefaultScheduleRequestService) SubmitDraft(ctx context.Context, actor models.Actor, draftID string) (*models.ScheduleRequest, error) {
	draft, err := s.GetDraft(ctx, actor, draftID)
	if err != nil {
		return nil, err
	}
	if draft.MentorID == 0 {
		return nil, required("mentor_id")
	}
	if !hasOption(draft.Options, draft.MentorID) {
		return nil, &ValidationError{Field: "mentor_id", Message: fmt.Sprintf("mentor %d is not available for this selection", draft.MentorID)}
	}
	created, err := s.Submit(ctx, actor, models.ScheduleRequestInput{
		UserID:          actor.UserID,
		MentorID:        draft.MentorID,
		KelasID:         draft.Query.KelasID,
		MataPelajaranID: draft.Query.MapelID,
		Tanggal:         draft.Query.Tanggal,
		Sesi:            draft.Query.Sesi,
	})
	if err != nil {
		return nil, err
	}
	_ = s.Drafts.Delete(ctx, draftID)
	return created, nil
}

func applyQueryChange(q models.MentorQuery, change models.DraftChange) models.MentorQuery {
	if change.MapelID != nil {
		q.MapelID = *change.MapelID
	}
	if change.Tanggal != nil {
		q.Tanggal = *change.Tanggal
	}
	if change.Sesi != nil {
		q.Sesi = *change.Sesi
	}
	if change.KelasID != nil {
		q.KelasID = *change.KelasID
	}
	return q
}

func hasOption(options []models.MentorOption, mentorID int64) bool {
	for _, o := range options {
		if o.ID == mentorID {
			return true
		}
	}
	return false
}

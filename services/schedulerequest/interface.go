// Package schedulerequest submits schedule requests, moves them through admin
// approval and keeps students' mentor-selection drafts.
package schedulerequest

import (
	"context"
	"time"

	"mentorhub/models"
	"mentorhub/services/activity"
)

// RequestsAPI is the part of the platform client the workflow needs.
type RequestsAPI interface {
	ListScheduleRequests(ctx context.Context) ([]models.ScheduleRequest, error)
	CreateScheduleRequest(ctx context.Context, body models.CreateScheduleRequestBody) (*models.ScheduleRequest, error)
	ApproveScheduleRequest(ctx context.Context, id int64) (*models.StatusUpdate, error)
	RejectScheduleRequest(ctx context.Context, id int64) (*models.StatusUpdate, error)
	CreateJadwalSesi(ctx context.Context, in models.DirectScheduleInput) (*models.JadwalSesi, error)
	AvailableMentors(ctx context.Context, q models.MentorQuery) ([]models.MentorOption, error)
}

// Store is a JSON document store keyed by id.
type Store[T any] interface {
	Get(ctx context.Context, id string) (*T, error)
	Put(ctx context.Context, id string, v *T) error
	Update(ctx context.Context, id string, fn func(*T) error) (*T, error)
	Delete(ctx context.Context, id string) error
}

type ScheduleRequestService interface {
	Submit(ctx context.Context, actor models.Actor, in models.ScheduleRequestInput) (*models.ScheduleRequest, error)
	AddSchedule(ctx context.Context, actor models.Actor, in models.DirectScheduleInput) (*models.JadwalSesi, error)
	List(ctx context.Context, actor models.Actor) (*models.RequestSnapshot, error)
	Snapshot(ctx context.Context, actor models.Actor) (*models.RequestSnapshot, error)
	Approve(ctx context.Context, actor models.Actor, id int64) (*models.StatusUpdate, error)
	Reject(ctx context.Context, actor models.Actor, id int64) (*models.StatusUpdate, error)

	CreateDraft(ctx context.Context, actor models.Actor) (*models.RequestDraft, error)
	GetDraft(ctx context.Context, actor models.Actor, draftID string) (*models.RequestDraft, error)
	UpdateDraft(ctx context.Context, actor models.Actor, draftID string, change models.DraftChange) (*models.RequestDraft, error)
	SubmitDraft(ctx context.Context, actor models.Actor, draftID string) (*models.ScheduleRequest, error)
}

type DefaultScheduleRequestService struct {
	API       RequestsAPI
	Snapshots Store[models.RequestSnapshot]
	Drafts    Store[models.RequestDraft]
	Activity  *activity.Recorder
	loc       *time.Location
	now       func() time.Time
}

func NewDefaultScheduleRequestService(api RequestsAPI, snapshots Store[models.RequestSnapshot], drafts Store[models.RequestDraft], recorder *activity.Recorder, loc *time.Location) *DefaultScheduleRequestService {
	if loc == nil {
		loc = time.Local
	}
	return &DefaultScheduleRequestService{
		API:       api,
		Snapshots: snapshots,
		Drafts:    drafts,
		Activity:  recorder,
		loc:       loc,
		now:       time.Now,
	}
}

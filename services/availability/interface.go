package availability

import (
	"context"
	"time"

	"mentorhub/models"
	"mentorhub/services/activity"
)

// AvailabilityAPI is the part of the platform client the grid needs.
type AvailabilityAPI interface {
	GetAvailability(ctx context.Context, mentorID int64, mingguKe int) ([]models.AvailabilitySlot, error)
	SaveAvailability(ctx context.Context, req models.SaveAvailabilityRequest) error
}

// SessionStore persists grid editing sessions.
type SessionStore interface {
	Get(ctx context.Context, id string) (*models.GridSession, error)
	Put(ctx context.Context, id string, s *models.GridSession) error
	Update(ctx context.Context, id string, fn func(*models.GridSession) error) (*models.GridSession, error)
	Delete(ctx context.Context, id string) error
}

// AvailabilityService loads, edits and saves mentor availability grids.
type AvailabilityService interface {
	Load(ctx context.Context, actor models.Actor, mentorID int64, mingguKe int) ([]models.AvailabilitySlot, error)
	Save(ctx context.Context, actor models.Actor, mentorID int64, mingguKe int, grid []models.AvailabilitySlot) error

	OpenSession(ctx context.Context, actor models.Actor, mentorID int64, mingguKe int) (*models.GridSession, error)
	GetSession(ctx context.Context, actor models.Actor, sessionID string) (*models.GridSession, error)
	ToggleSlots(ctx context.Context, actor models.Actor, sessionID string, toggles []models.SlotToggle) (*models.GridSession, error)
	SaveSession(ctx context.Context, actor models.Actor, sessionID string) (*models.GridSession, error)
	ReloadSession(ctx context.Context, actor models.Actor, sessionID string) (*models.GridSession, error)
	CloseSession(ctx context.Context, actor models.Actor, sessionID string) error
}

// DefaultAvailabilityService is the production implementation.
type DefaultAvailabilityService struct {
	API      AvailabilityAPI
	Sessions SessionStore
	Activity *activity.Recorder
	now      func() time.Time
}

func NewDefaultAvailabilityService(api AvailabilityAPI, sessions SessionStore, recorder *activity.Recorder) *DefaultAvailabilityService {
	return &DefaultAvailabilityService{
		API:      api,
		Sessions: sessions,
		Activity: recorder,
		now:      time.Now,
	}
}

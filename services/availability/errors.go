package availability

import (
	"errors"
	"fmt"

	"mentorhub/models"
	"mentorhub/services/conflict"
	"mentorhub/upstream"
)

var (
	// ErrForbidden is returned when the actor may not touch the mentor's grid or
	// the session belongs to someone else.
	ErrForbidden = errors.New("not allowed to manage this availability")
	// ErrSessionBusy is returned for edits attempted while a save is in flight.
	ErrSessionBusy = errors.New("grid session is not ready")
)

// ValidationError is a local check that failed before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// SaveErrorKind classifies a failed grid save.
type SaveErrorKind string

const (
	SaveConflict SaveErrorKind = "conflict"
	SaveServer   SaveErrorKind = "server"
	SaveNetwork  SaveErrorKind = "network"
)

// Messages shown when the platform gives nothing more specific.
const (
	genericSaveMessage = "Failed to save availability"
	networkSaveMessage = "Failed to save availability. Please try again."
)

// SaveError is a failed wholesale grid save. Exactly one of Conflicts or
// Message carries the detail.
type SaveError struct {
	Kind      SaveErrorKind
	Status    int
	Message   string
	Conflicts []models.ScheduleConflict
	Lines     []string
	Err       error
}

func (e *SaveError) Error() string {
	if e.Kind == SaveConflict {
		return fmt.Sprintf("availability save rejected with %d conflict(s)", len(e.Conflicts))
	}
	return e.Message
}

func (e *SaveError) Unwrap() error { return e.Err }

// classifySaveError maps an upstream failure onto the three save outcomes.
func classifySaveError(err error) *SaveError {
	apiErr, ok := upstream.AsAPIError(err)
	if !ok {
		return &SaveError{Kind: SaveNetwork, Message: networkSaveMessage, Err: err}
	}
	if apiErr.HasConflicts() {
		return &SaveError{
			Kind:      SaveConflict,
			Status:    apiErr.Status,
			Conflicts: apiErr.Conflicts,
			Lines:     conflict.Report(apiErr.Conflicts),
			Err:       err,
		}
	}
	msg := apiErr.Message
	if msg == "" {
		msg = genericSaveMessage
	}
	return &SaveError{Kind: SaveServer, Status: apiErr.Status, Message: msg, Err: err}
}

package upstream

import (
	"errors"
	"fmt"

	"mentorhub/models"
)

// ErrTransport marks failures that never produced an HTTP response.
var ErrTransport = errors.New("upstream unreachable")

// ErrInvalidResponse marks a response body that failed to decode or validate.
var ErrInvalidResponse = errors.New("upstream returned an invalid response")

// APIError is a non-2xx response from the platform API.
type APIError struct {
	Status    int
	Message   string
	Conflicts []models.ScheduleConflict
}

func (e *APIError) Error() string {
	if len(e.Conflicts) > 0 {
		return fmt.Sprintf("upstream status %d: %d schedule conflict(s)", e.Status, len(e.Conflicts))
	}
	if e.Message != "" {
		return fmt.Sprintf("upstream status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("upstream status %d", e.Status)
}

// HasConflicts reports whether the platform returned a structured conflict list.
func (e *APIError) HasConflicts() bool {
	return len(e.Conflicts) > 0
}

// AsAPIError unwraps err into an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// errorBody is every error shape the platform is known to return.
type errorBody struct {
	Conflicts []models.ScheduleConflict `json:"conflicts"`
	Error     string                    `json:"error"`
	Message   string                    `json:"message"`
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"mentorhub/database/sessionstore"
	"mentorhub/middleware"
	"mentorhub/models"
	"mentorhub/services/availability"
	"mentorhub/services/reference"
	"mentorhub/services/schedulerequest"
	"mentorhub/upstream"
	"mentorhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// saveErrorResponse is the body of a failed grid save.
type saveErrorResponse struct {
	Error     string                    `json:"error"`
	Kind      string                    `json:"kind"`
	Message   string                    `json:"message,omitempty"`
	Conflicts []models.ScheduleConflict `json:"conflicts,omitempty"`
	Lines     []string                  `json:"lines,omitempty"`
	Session   *models.GridSession       `json:"session,omitempty"`
}

// actor returns the authenticated caller, aborting with 401 when absent.
func actor(c *gin.Context) (models.Actor, bool) {
	a, ok := middleware.ActorFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Insufficient authorization", "")
	}
	return a, ok
}

func int64Param(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || v <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid "+name, "must be a positive integer")
		return 0, false
	}
	return v, true
}

// upstreamStatus maps a platform failure onto our response status: client
// errors pass through, everything else is a bad gateway.
func upstreamStatus(status int) int {
	if status >= 400 && status < 500 && status != http.StatusUnauthorized {
		return status
	}
	return http.StatusBadGateway
}

func saveFailure(se *availability.SaveError, sess *models.GridSession) (int, saveErrorResponse) {
	resp := saveErrorResponse{
		Error:     "Failed to save availability",
		Kind:      string(se.Kind),
		Message:   se.Message,
		Conflicts: se.Conflicts,
		Lines:     se.Lines,
		Session:   sess,
	}
	switch se.Kind {
	case availability.SaveConflict:
		return http.StatusConflict, resp
	case availability.SaveNetwork:
		return http.StatusServiceUnavailable, resp
	default:
		return upstreamStatus(se.Status), resp
	}
}

// respondError writes the response for a service error.
func respondError(c *gin.Context, err error) {
	var (
		gridValidation *availability.ValidationError
		reqValidation  *schedulerequest.ValidationError
		saveErr        *availability.SaveError
	)
	switch {
	case errors.As(err, &gridValidation):
		utils.JSONError(c, http.StatusBadRequest, "Validation failed", gridValidation.Error())
	case errors.As(err, &reqValidation):
		utils.JSONError(c, http.StatusBadRequest, "Validation failed", reqValidation.Error())
	case errors.As(err, &saveErr):
		status, body := saveFailure(saveErr, nil)
		utils.RequestLogger(c).Warn("Availability save failed", zap.String("kind", body.Kind), zap.Error(err))
		c.AbortWithStatusJSON(status, body)
	case errors.Is(err, availability.ErrForbidden), errors.Is(err, schedulerequest.ErrForbidden):
		utils.JSONError(c, http.StatusForbidden, "Forbidden", err.Error())
	case errors.Is(err, sessionstore.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())
	case errors.Is(err, reference.ErrUnknownCollection):
		utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())
	case errors.Is(err, availability.ErrSessionBusy):
		utils.JSONError(c, http.StatusConflict, "Session busy", err.Error())
	case errors.Is(err, upstream.ErrTransport):
		utils.JSONError(c, http.StatusServiceUnavailable, "Platform unavailable", err.Error())
	case errors.Is(err, upstream.ErrInvalidResponse):
		utils.JSONError(c, http.StatusBadGateway, "Unexpected platform response", err.Error())
	default:
		if apiErr, ok := upstream.AsAPIError(err); ok {
			utils.JSONError(c, upstreamStatus(apiErr.Status), "Platform rejected the request", apiErr.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
	}
}

package handlers

import (
	"net/http"
	"strconv"

	"mentorhub/services/activity"
	"mentorhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler encapsulates admin-only read endpoints.
type AdminHandler struct {
	Activity *activity.Recorder
}

func NewAdminHandler(recorder *activity.Recorder) *AdminHandler {
	return &AdminHandler{Activity: recorder}
}

// ActivityFeedHandler lists recent dashboard actions, optionally for one actor
// (?actor_id=) and capped by ?limit=.
func (ah *AdminHandler) ActivityFeedHandler(c *gin.Context) {
	var actorID, limit int64
	if v := c.Query("actor_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid actor_id", "must be an integer")
			return
		}
		actorID = id
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			utils.JSONError(c, http.StatusBadRequest, "Invalid limit", "must be a non-negative integer")
			return
		}
		limit = n
	}

	records, err := ah.Activity.Feed(c.Request.Context(), actorID, limit)
	if err != nil {
		utils.RequestLogger(c).Error("Failed to fetch activity feed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch activity", "")
		return
	}
	c.JSON(http.StatusOK, records)
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"mentorhub/models"
	"mentorhub/services/availability"
	"mentorhub/services/week"
	"mentorhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AvailabilityHandler serves mentor availability grids and editing sessions.
type AvailabilityHandler struct {
	Service availability.AvailabilityService
	Weeks   *week.Calculator
}

func NewAvailabilityHandler(svc availability.AvailabilityService, weeks *week.Calculator) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc, Weeks: weeks}
}

type gridResponse struct {
	MentorID int64                     `json:"mentor_id"`
	MingguKe int                       `json:"minggu_ke"`
	Week     week.WeekRange            `json:"week"`
	Data     []models.AvailabilitySlot `json:"data"`
}

type saveGridRequest struct {
	MingguKe int                       `json:"minggu_ke"`
	Data     []models.AvailabilitySlot `json:"data" binding:"required"`
}

type openSessionRequest struct {
	MentorID int64 `json:"mentor_id"`
	MingguKe int   `json:"minggu_ke"`
}

type toggleRequest struct {
	Toggles []models.SlotToggle `json:"toggles" binding:"required,dive"`
}

// weekOrCurrent reads minggu_ke from the query string, defaulting to the
// current week.
func (h *AvailabilityHandler) weekOrCurrent(c *gin.Context) (int, bool) {
	raw := c.Query("minggu_ke")
	if raw == "" {
		return h.Weeks.CurrentWeekNumber(), true
	}
	w, err := strconv.Atoi(raw)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid minggu_ke", "must be an integer")
		return 0, false
	}
	return w, true
}

// rangeYear reads the optional year query, defaulting to the year nearest
// today that has mingguKe.
func (h *AvailabilityHandler) rangeYear(c *gin.Context, mingguKe int) (int, bool) {
	raw := c.Query("year")
	if raw == "" {
		return h.Weeks.NearestYear(mingguKe), true
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < 1 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid year", "must be a positive integer")
		return 0, false
	}
	return year, true
}

func (h *AvailabilityHandler) respondGrid(c *gin.Context, mentorID int64, mingguKe, year int, grid []models.AvailabilitySlot) {
	c.JSON(http.StatusOK, gridResponse{
		MentorID: mentorID,
		MingguKe: mingguKe,
		Week:     h.Weeks.WeekRangeOf(mingguKe, year),
		Data:     grid,
	})
}

// GetMyAvailabilityHandler returns the calling mentor's grid.
func (h *AvailabilityHandler) GetMyAvailabilityHandler(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	mingguKe, ok := h.weekOrCurrent(c)
	if !ok {
		return
	}
	year, ok := h.rangeYear(c, mingguKe)
	if !ok {
		return
	}
	grid, err := h.Service.Load(c.Request.Context(), a, a.MentorID, mingguKe)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondGrid(c, a.MentorID, mingguKe, year, grid)
}

// SaveMyAvailabilityHandler replaces the calling mentor's grid wholesale.
func (h *AvailabilityHandler) SaveMyAvailabilityHandler(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req saveGridRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if req.MingguKe == 0 {
		req.MingguKe = h.Weeks.CurrentWeekNumber()
	}
	if err := h.Service.Save(c.Request.Context(), a, a.MentorID, req.MingguKe, req.Data); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Availability saved", "minggu_ke": req.MingguKe})
}

// GetMentorAvailabilityHandler returns any mentor's grid (admin).
func (h *AvailabilityHandler) GetMentorAvailabilityHandler(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	mentorID, ok := int64Param(c, "mentorID")
	if !ok {
		return
	}
	mingguKe, err := strconv.Atoi(c.Param("week"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid week", "must be an integer")
		return
	}
	year, ok := h.rangeYear(c, mingguKe)
	if !ok {
		return
	}
	grid, err := h.Service.Load(c.Request.Context(), a, mentorID, mingguKe)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondGrid(c, mentorID, mingguKe, year, grid)
}

// OpenSessionHandler starts a grid editing session. Mentors always edit their
// own grid.
func (h *AvailabilityHandler) OpenSessionHandler(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req openSessionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
			return
		}
	}
	if req.MentorID == 0 {
		req.MentorID = a.MentorID
	}
	if req.MingguKe == 0 {
		req.MingguKe = h.Weeks.CurrentWeekNumber()
	}
	sess, err := h.Service.OpenSession(c.Request.Context(), a, req.MentorID, req.MingguKe)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess)
}

func (h *AvailabilityHandler) GetSessionHandler(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	sess, err := h.Service.GetSession(c.Request.Context(), a, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *AvailabilityHandler) ToggleSlotsHandler(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	sess, err := h.Service.ToggleSlots(c.Request.Context(), a, c.Param("id"), req.Toggles)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// SaveSessionHandler submits the session grid. A failed save still returns the
// session so the caller keeps its edits.
func (h *AvailabilityHandler) SaveSessionHandler(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	sess, err := h.Service.SaveSession(c.Request.Context(), a, c.Param("id"))
	var se *availability.SaveError
	switch {
	case err == nil:
		c.JSON(http.StatusOK, sess)
	case errors.As(err, &se) && sess != nil:
		status, body := saveFailure(se, sess)
		utils.RequestLogger(c).Warn("Availability save failed",
			zap.String("session", sess.SessionID), zap.String("kind", body.Kind), zap.Error(err))
		c.JSON(status, body)
	default:
		respondError(c, err)
	}
}

// ReloadSessionHandler discards local edits and reloads from the platform.
func (h *AvailabilityHandler) ReloadSessionHandler(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	sess, err := h.Service.ReloadSession(c.Request.Context(), a, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *AvailabilityHandler) CloseSessionHandler(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	if err := h.Service.CloseSession(c.Request.Context(), a, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

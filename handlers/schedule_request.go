package handlers

import (
	"context"
	"net/http"

	"mentorhub/models"
	"mentorhub/services/schedulerequest"
	"mentorhub/utils"

	"github.com/gin-gonic/gin"
)

// ScheduleRequestHandler serves schedule requests, admin approval and student
// request drafts.
type ScheduleRequestHandler struct {
	Service schedulerequest.ScheduleRequestService
}

func NewScheduleRequestHandler(svc schedulerequest.ScheduleRequestService) *ScheduleRequestHandler {
	return &ScheduleRequestHandler{Service: svc}
}

// ListHandler fetches the request list and stores it as the caller's snapshot.
func (h *ScheduleRequestHandler) ListHandler(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	snap, err := h.Service.List(c.Request.Context(), a)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *ScheduleRequestHandler) ApproveHandler(c *gin.Context) {
	h.transition(c, h.Service.Approve)
}

func (h *ScheduleRequestHandler) RejectHandler(c *gin.Context) {
	h.transition(c, h.Service.Reject)
}

func (h *ScheduleRequestHandler) transition(c *gin.Context, fn func(ctx context.Context, a models.Actor, id int64) (*models.StatusUpdate, error)) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	update, err := fn(c.Request.Context(), a, id)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := gin.H{"update": update}
	if snap, err := h.Service.Snapshot(c.Request.Context(), a); err == nil {
		resp["requests"] = snap.Items
	}
	c.JSON(http.StatusOK, resp)
}

// AddScheduleHandler schedules a session directly (admin).
func (h *ScheduleRequestHandler) AddScheduleHandler(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var in models.DirectScheduleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	created, err := h.Service.AddSchedule(c.Request.Context(), a, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// SubmitHandler creates a pending schedule request.
func (h *ScheduleRequestHandler) SubmitHandler(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var in models.ScheduleRequestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	created, err := h.Service.Submit(c.Request.Context(), a, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ScheduleRequestHandler) CreateDraftHandler(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	draft, err := h.Service.CreateDraft(c.Request.Context(), a)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, draft)
}

func (h *ScheduleRequestHandler) GetDraftHandler(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	draft, err := h.Service.GetDraft(c.Request.Context(), a, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// UpdateDraftHandler applies a form edit and returns the draft with the mentor
// options for the current selection.
func (h *ScheduleRequestHandler) UpdateDraftHandler(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var change models.DraftChange
	if err := c.ShouldBindJSON(&change); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	draft, err := h.Service.UpdateDraft(c.Request.Context(), a, c.Param("id"), change)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *ScheduleRequestHandler) SubmitDraftHandler(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	created, err := h.Service.SubmitDraft(c.Request.Context(), a, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

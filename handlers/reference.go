package handlers

import (
	"net/http"

	"mentorhub/services/reference"

	"github.com/gin-gonic/gin"
)

// ReferenceHandler serves read-only reference collections.
type ReferenceHandler struct {
	Service reference.ReferenceService
}

func NewReferenceHandler(svc reference.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{Service: svc}
}

// DashboardHandler returns every reference collection in one response.
func (h *ReferenceHandler) DashboardHandler(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	ref, err := h.Service.LoadDashboard(c.Request.Context(), a.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ref)
}

func (h *ReferenceHandler) CollectionHandler(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	raw, err := h.Service.Collection(c.Request.Context(), a.Role, c.Param("collection"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

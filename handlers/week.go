package handlers

import (
	"net/http"
	"strconv"

	"mentorhub/services/week"
	"mentorhub/utils"

	"github.com/gin-gonic/gin"
)

type WeekHandler struct {
	Calc *week.Calculator
}

func NewWeekHandler(calc *week.Calculator) *WeekHandler {
	return &WeekHandler{Calc: calc}
}

// CurrentWeekHandler returns today's week number and its Monday-Sunday range.
func (h *WeekHandler) CurrentWeekHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.Calc.CurrentWeekRange())
}

func (h *WeekHandler) WeekRangeHandler(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid year", "must be a positive integer")
		return
	}
	w, err := strconv.Atoi(c.Param("week"))
	if err != nil || !week.ValidWeek(w) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid week", "must be between 1 and 53")
		return
	}
	c.JSON(http.StatusOK, h.Calc.WeekRangeOf(w, year))
}

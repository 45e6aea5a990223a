package handlers

import (
	"net/http"
	"strconv"
	"time"

	"agendly/models"
	"agendly/utils"

	"github.com/gin-gonic/gin"
)

// GetAvailability returns the free/busy breakdown for a professional on a
// single calendar day. Date is "2006-01-02" in the business timezone.
func (h *SchedulingHandler) GetAvailability(c *gin.Context) {
	professionalID := c.Param("professionalID")
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "date query parameter is required")
		return
	}

	result, err := h.Svc.GetAvailability(c.Request.Context(), professionalID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetWorkingHours returns the configured slots for one weekday.
func (h *SchedulingHandler) GetWorkingHours(c *gin.Context) {
	professionalID := c.Param("professionalID")
	day, err := strconv.Atoi(c.Query("weekday"))
	if err != nil || day < 0 || day > 6 {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "weekday must be 0 (Sunday) through 6 (Saturday)")
		return
	}
	weekday := time.Weekday(day)

	slots, err := h.Svc.GetWorkingHours(c.Request.Context(), professionalID, weekday)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"weekday": weekday.String(), "slots": slots})
}

// SetWorkingHours replaces the slots for one weekday.
func (h *SchedulingHandler) SetWorkingHours(c *gin.Context) {
	professionalID := c.Param("professionalID")

	var req models.SetWorkingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Svc.SetWorkingHours(c.Request.Context(), professionalID, time.Weekday(req.Weekday), req.Slots); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "working hours updated"})
}

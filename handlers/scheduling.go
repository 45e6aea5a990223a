package handlers

import (
	"net/http"
	"time"

	"agendly/models"
	"agendly/services/scheduling"
	"agendly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SchedulingHandler exposes the scheduling engine over HTTP.
type SchedulingHandler struct {
	Svc    scheduling.SchedulingService
	Logger *zap.Logger
}

func NewSchedulingHandler(svc scheduling.SchedulingService, logger *zap.Logger) *SchedulingHandler {
	return &SchedulingHandler{Svc: svc, Logger: logger}
}

// CreateAppointment books a single appointment.
func (h *SchedulingHandler) CreateAppointment(c *gin.Context) {
	var req models.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	appt, err := h.Svc.CreateAppointment(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// GetAppointment fetches one appointment by id.
func (h *SchedulingHandler) GetAppointment(c *gin.Context) {
	appt, err := h.Svc.GetAppointment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// UpdateAppointment reschedules or annotates an appointment.
func (h *SchedulingHandler) UpdateAppointment(c *gin.Context) {
	var req models.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	appt, err := h.Svc.UpdateAppointment(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// DeleteAppointment removes an appointment record outright. Cancellation is
// the normal path; this one is for administrative cleanup.
func (h *SchedulingHandler) DeleteAppointment(c *gin.Context) {
	if err := h.Svc.DeleteAppointment(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "appointment deleted"})
}

// ListAppointments returns a professional's appointments inside [from, to).
func (h *SchedulingHandler) ListAppointments(c *gin.Context) {
	professionalID := c.Param("professionalID")
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "from must be RFC3339")
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "to must be RFC3339")
		return
	}

	appts, err := h.Svc.ListAppointments(c.Request.Context(), professionalID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts, "count": len(appts)})
}

// TransitionStatus drives the appointment status state machine.
func (h *SchedulingHandler) TransitionStatus(c *gin.Context) {
	var input struct {
		Status          models.AppointmentStatus `json:"status" binding:"required"`
		Reason          string                   `json:"reason"`
		CancellationFee float64                  `json:"cancellationFee"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	appt, err := h.Svc.TransitionStatus(c.Request.Context(), c.Param("id"), input.Status, input.Reason, input.CancellationFee)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// TransitionPayment drives the payment state machine.
func (h *SchedulingHandler) TransitionPayment(c *gin.Context) {
	var input struct {
		PaymentStatus models.PaymentStatus `json:"paymentStatus" binding:"required"`
		Method        string               `json:"method"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	appt, err := h.Svc.TransitionPayment(c.Request.Context(), c.Param("id"), input.PaymentStatus, input.Method)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// CancelAppointment is the dedicated cancellation endpoint.
func (h *SchedulingHandler) CancelAppointment(c *gin.Context) {
	var input struct {
		Reason          string  `json:"reason" binding:"required"`
		CancellationFee float64 `json:"cancellationFee"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	appt, err := h.Svc.Cancel(c.Request.Context(), c.Param("id"), input.Reason, input.CancellationFee)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// CreateRecurring expands a recurrence rule and books each occurrence.
// Partial success is a valid outcome; the per-occurrence report says which
// slots were skipped over conflicts.
func (h *SchedulingHandler) CreateRecurring(c *gin.Context) {
	var req models.CreateRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	result, err := h.Svc.CreateRecurring(c.Request.Context(), req)
	if err != nil {
		if result != nil {
			h.Logger.Warn("recurring series aborted mid-expansion",
				zap.Int("created", result.Created),
				zap.Int("requested", result.Requested),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "series partially created before a storage failure",
				"result":  result,
			})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

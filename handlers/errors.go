package handlers

import (
	"errors"
	"net/http"

	"agendly/services/payment"
	"agendly/services/scheduling"
	"agendly/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps the scheduling error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var vErr *scheduling.ValidationError
	var cErr *scheduling.ConflictError
	var tErr *scheduling.InvalidTransitionError
	var nErr *scheduling.NotFoundError

	switch {
	case errors.As(err, &vErr):
		utils.JSONError(c, http.StatusBadRequest, "invalid request", vErr.Error())
	case errors.As(err, &cErr):
		c.JSON(http.StatusConflict, gin.H{
			"message":   "scheduling conflict",
			"conflicts": cErr.Conflicts,
		})
	case errors.As(err, &tErr):
		utils.JSONError(c, http.StatusUnprocessableEntity, "invalid transition", tErr.Error())
	case errors.As(err, &nErr):
		utils.JSONError(c, http.StatusNotFound, "not found", nErr.Error())
	case errors.Is(err, payment.ErrDeclined):
		utils.JSONError(c, http.StatusPaymentRequired, "payment declined", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
	}
}

package handlers

import (
	"net/http"

	"agendly/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last stored mongo/redis health snapshot.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Mongo {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}

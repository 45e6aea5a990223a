package routes

import (
	"time"

	"agendly/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires global middleware and every endpoint group.
func RegisterRoutes(r *gin.Engine, h *handlers.SchedulingHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterSchedulingRoutes(r, h)
	RegisterProfessionalRoutes(r, h)
	RegisterHealthRoutes(r)
}

// RegisterSchedulingRoutes registers the appointment engine endpoints.
func RegisterSchedulingRoutes(r *gin.Engine, h *handlers.SchedulingHandler) {
	api := r.Group("/api/appointments")
	{
		api.POST("", h.CreateAppointment)
		api.POST("/recurring", h.CreateRecurring)
		api.GET("/:id", h.GetAppointment)
		api.PATCH("/:id", h.UpdateAppointment)
		api.DELETE("/:id", h.DeleteAppointment)

		api.POST("/:id/status", h.TransitionStatus)
		api.POST("/:id/payment", h.TransitionPayment)
		api.POST("/:id/cancel", h.CancelAppointment)
	}
}

// RegisterProfessionalRoutes registers the per-professional calendar views.
func RegisterProfessionalRoutes(r *gin.Engine, h *handlers.SchedulingHandler) {
	api := r.Group("/api/professionals/:professionalID")
	{
		api.GET("/appointments", h.ListAppointments)
		api.GET("/availability", h.GetAvailability)
		api.GET("/working-hours", h.GetWorkingHours)
		api.PUT("/working-hours", h.SetWorkingHours)
	}
}

// RegisterHealthRoutes registers the liveness endpoint.
func RegisterHealthRoutes(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

package scheduling

import (
	"context"
	"time"

	"agendly/models"
)

// SchedulingService is the engine's caller-facing surface.
type SchedulingService interface {
	CreateAppointment(ctx context.Context, req models.CreateAppointmentRequest) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, id string, req models.UpdateAppointmentRequest) (*models.Appointment, error)
	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)
	// DeleteAppointment is the administrative removal, distinct from cancellation.
	DeleteAppointment(ctx context.Context, id string) error
	ListAppointments(ctx context.Context, professionalID string, from, to time.Time) ([]models.Appointment, error)

	TransitionStatus(ctx context.Context, id string, to models.AppointmentStatus, reason string, fee float64) (*models.Appointment, error)
	TransitionPayment(ctx context.Context, id string, to models.PaymentStatus, method string) (*models.Appointment, error)
	Cancel(ctx context.Context, id, reason string, fee float64) (*models.Appointment, error)

	GetAvailability(ctx context.Context, professionalID, date string) (*models.AvailabilityResult, error)
	CreateRecurring(ctx context.Context, req models.CreateRecurringRequest) (*models.RecurrenceResult, error)

	GetWorkingHours(ctx context.Context, professionalID string, weekday time.Weekday) ([]models.TimeSlot, error)
	SetWorkingHours(ctx context.Context, professionalID string, weekday time.Weekday, slots []models.TimeSlot) error
}

// ReminderScheduler queues a reminder for an upcoming appointment. The asynq
// enqueuer in cron implements it; tests use a stub.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, appt *models.Appointment) error
}

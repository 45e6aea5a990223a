package schedulerRepo

import (
	"context"
	"errors"
	"time"

	"agendly/models"

	"go.mongodb.org/mongo-driver/bson"
)

var (
	// ErrNotFound is returned when a referenced document does not exist.
	ErrNotFound = errors.New("not found")
	// ErrSlotTaken is returned by the transactional insert/reschedule when the
	// in-transaction overlap re-check finds a live booking in the window.
	ErrSlotTaken = errors.New("slot already taken")
)

// SchedulerRepository defines the data access methods used by the scheduling engine.
type SchedulerRepository interface {
	// Insert persists a new appointment without any conflict guarantee.
	// The scheduling service uses CreateAppointmentTransactionally instead;
	// this exists for migrations and administrative tooling.
	Insert(ctx context.Context, appt *models.Appointment) error
	// CreateAppointmentTransactionally re-checks the professional's window for
	// live overlaps and inserts the appointment in one transaction, serialized
	// per (professional, date). Returns ErrSlotTaken on a lost race.
	CreateAppointmentTransactionally(ctx context.Context, appt *models.Appointment) error
	// RescheduleAppointmentTransactionally moves an appointment to a new
	// window under the same transactional guard, ignoring the appointment's
	// own interval during the re-check.
	RescheduleAppointmentTransactionally(ctx context.Context, id string, start, end time.Time, fields bson.M) (*models.Appointment, error)
	// UpdateFields applies a partial update and returns the updated document.
	UpdateFields(ctx context.Context, id string, fields bson.M) (*models.Appointment, error)
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	// Delete removes an appointment outright. Administrative operation,
	// distinct from cancellation.
	Delete(ctx context.Context, id string) error

	// QueryByProfessionalAndRange returns the professional's appointments
	// whose [start, end) interval intersects [start, end), filtered by status.
	QueryByProfessionalAndRange(ctx context.Context, professionalID string, start, end time.Time, statuses []models.AppointmentStatus) ([]models.Appointment, error)
	QueryByClientAndRange(ctx context.Context, clientID string, start, end time.Time, statuses []models.AppointmentStatus) ([]models.Appointment, error)
	QueryByServiceAndRange(ctx context.Context, serviceID string, start, end time.Time, statuses []models.AppointmentStatus) ([]models.Appointment, error)

	GetWorkingHours(ctx context.Context, professionalID string, weekday time.Weekday) ([]models.TimeSlot, error)
	SetWorkingHours(ctx context.Context, professionalID string, weekday time.Weekday, slots []models.TimeSlot) error

	GetServiceByID(ctx context.Context, serviceID string) (*models.Service, error)
}

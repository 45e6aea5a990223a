package models

import "time"

// AppointmentStatus is the booking lifecycle axis.
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

// PaymentStatus is the payment lifecycle axis, independent of AppointmentStatus.
type PaymentStatus string

const (
	PaymentPending       PaymentStatus = "pending"
	PaymentPaid          PaymentStatus = "paid"
	PaymentPartiallyPaid PaymentStatus = "partially_paid"
	PaymentRefunded      PaymentStatus = "refunded"
)

// LiveStatuses are the statuses that count toward conflicts.
var LiveStatuses = []AppointmentStatus{StatusScheduled, StatusConfirmed}

// Appointment is a confirmed or pending booking for a professional.
// All timestamps are in the business's canonical time zone.
type Appointment struct {
	ID                 string            `bson:"id" json:"id"`
	BusinessID         string            `bson:"business_id" json:"business_id"`
	ClientID           string            `bson:"client_id" json:"client_id"`
	ProfessionalID     string            `bson:"professional_id" json:"professional_id"`
	ServiceID          string            `bson:"service_id" json:"service_id"`
	StartTime          time.Time         `bson:"start_time" json:"start_time"`
	EndTime            time.Time         `bson:"end_time" json:"end_time"`
	Status             AppointmentStatus `bson:"status" json:"status"`
	PaymentStatus      PaymentStatus     `bson:"payment_status" json:"payment_status"`
	PaymentMethod      string            `bson:"payment_method,omitempty" json:"payment_method,omitempty"`
	Price              float64           `bson:"price" json:"price"` // snapshot of the service price at booking time
	CancellationReason string            `bson:"cancellation_reason,omitempty" json:"cancellation_reason,omitempty"`
	CancellationFee    float64           `bson:"cancellation_fee,omitempty" json:"cancellation_fee,omitempty"`
	Notes              string            `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt          time.Time         `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time         `bson:"updated_at" json:"updated_at"`
}

// IsLive reports whether the appointment counts toward conflicts.
func (a *Appointment) IsLive() bool {
	return a.Status == StatusScheduled || a.Status == StatusConfirmed
}

// IsTerminal reports whether the status admits no further transitions.
func (a *Appointment) IsTerminal() bool {
	switch a.Status {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Service is the bookable service catalogue entry. Only the price is read by
// the scheduling core (snapshotted onto the appointment at creation).
type Service struct {
	ID              string  `bson:"id" json:"id"`
	BusinessID      string  `bson:"business_id" json:"business_id"`
	Name            string  `bson:"name" json:"name"`
	Price           float64 `bson:"price" json:"price"`
	DurationMinutes int     `bson:"duration_minutes" json:"duration_minutes"`
}

// CreateAppointmentRequest is the payload accepted by the scheduling service.
type CreateAppointmentRequest struct {
	BusinessID     string    `json:"business_id"`
	ClientID       string    `json:"client_id" binding:"required"`
	ProfessionalID string    `json:"professional_id" binding:"required"`
	ServiceID      string    `json:"service_id" binding:"required"`
	StartTime      time.Time `json:"start_time" binding:"required"`
	EndTime        time.Time `json:"end_time" binding:"required"`
	Notes          string    `json:"notes,omitempty"`
}

// UpdateAppointmentRequest carries a partial update; nil fields are untouched.
type UpdateAppointmentRequest struct {
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
}

// MovesWindow reports whether the update changes the booked time window.
func (r *UpdateAppointmentRequest) MovesWindow() bool {
	return r.StartTime != nil || r.EndTime != nil
}

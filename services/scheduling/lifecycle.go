package scheduling

import (
	"time"

	"agendly/models"

	"go.mongodb.org/mongo-driver/bson"
)

// statusTransitions is the booking state machine. Missing keys are terminal.
var statusTransitions = map[models.AppointmentStatus][]models.AppointmentStatus{
	models.StatusScheduled: {models.StatusConfirmed, models.StatusCancelled, models.StatusNoShow},
	models.StatusConfirmed: {models.StatusCompleted, models.StatusCancelled, models.StatusNoShow},
}

// paymentTransitions is the payment state machine, independent of status.
var paymentTransitions = map[models.PaymentStatus][]models.PaymentStatus{
	models.PaymentPending:       {models.PaymentPaid, models.PaymentPartiallyPaid},
	models.PaymentPaid:          {models.PaymentRefunded},
	models.PaymentPartiallyPaid: {models.PaymentPaid, models.PaymentRefunded},
}

func allows[S comparable](table map[S][]S, from, to S) bool {
	for _, next := range table[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AppointmentLifecycle validates and applies status and payment transitions.
// Apply methods return the field updates to persist; on error the appointment
// is untouched.
type AppointmentLifecycle struct{}

// CanTransitionStatus reports whether the status edge exists.
func (AppointmentLifecycle) CanTransitionStatus(from, to models.AppointmentStatus) bool {
	return allows(statusTransitions, from, to)
}

// CanTransitionPayment reports whether the payment edge exists.
func (AppointmentLifecycle) CanTransitionPayment(from, to models.PaymentStatus) bool {
	return allows(paymentTransitions, from, to)
}

// ApplyStatus validates the transition against the appointment at the given
// operation time and returns the fields to persist.
func (l AppointmentLifecycle) ApplyStatus(appt *models.Appointment, to models.AppointmentStatus, reason string, fee float64, now time.Time) (bson.M, error) {
	if !l.CanTransitionStatus(appt.Status, to) {
		return nil, &InvalidTransitionError{Axis: "status", From: string(appt.Status), To: string(to)}
	}

	fields := bson.M{"status": to}
	switch to {
	case models.StatusCancelled:
		if reason == "" {
			return nil, NewValidationError("cancellation requires a reason")
		}
		if fee < 0 {
			return nil, NewValidationError("cancellation fee cannot be negative")
		}
		fields["cancellation_reason"] = reason
		fields["cancellation_fee"] = fee
	case models.StatusCompleted, models.StatusNoShow:
		if appt.EndTime.After(now) {
			return nil, &InvalidTransitionError{
				Axis: "status", From: string(appt.Status), To: string(to),
				Reason: "appointment has not ended yet",
			}
		}
	}
	return fields, nil
}

// ApplyPayment validates the payment transition and returns the fields to
// persist. The single cross-axis constraint: a refund is only legal once the
// booking itself is completed or cancelled.
func (l AppointmentLifecycle) ApplyPayment(appt *models.Appointment, to models.PaymentStatus, method string) (bson.M, error) {
	if !l.CanTransitionPayment(appt.PaymentStatus, to) {
		return nil, &InvalidTransitionError{Axis: "payment", From: string(appt.PaymentStatus), To: string(to)}
	}
	if to == models.PaymentRefunded && appt.Status != models.StatusCompleted && appt.Status != models.StatusCancelled {
		return nil, &InvalidTransitionError{
			Axis: "payment", From: string(appt.PaymentStatus), To: string(to),
			Reason: "refund requires a completed or cancelled appointment",
		}
	}

	fields := bson.M{"payment_status": to}
	if method != "" {
		fields["payment_method"] = method
	} else if appt.PaymentMethod == "" && to != models.PaymentPending {
		return nil, NewValidationError("payment method is required when leaving pending")
	}
	return fields, nil
}

package notification

import (
	"context"

	"agendly/models"
	"agendly/utils"

	"go.uber.org/zap"
)

// NotificationService is the delivery collaborator. Delivery transports live
// outside this engine; the core only hands over what to say and about which
// appointment.
type NotificationService interface {
	SendAppointmentReminder(ctx context.Context, appt *models.Appointment) error
	SendBookingConfirmation(ctx context.Context, appt *models.Appointment) error
}

// LogNotificationService is the default collaborator when no delivery
// transport is configured; it records what would have been sent.
type LogNotificationService struct{}

func (LogNotificationService) SendAppointmentReminder(ctx context.Context, appt *models.Appointment) error {
	utils.GetLogger().Info("appointment reminder",
		zap.String("appointmentID", appt.ID),
		zap.String("clientID", appt.ClientID),
		zap.Time("startTime", appt.StartTime))
	return nil
}

func (LogNotificationService) SendBookingConfirmation(ctx context.Context, appt *models.Appointment) error {
	utils.GetLogger().Info("booking confirmation",
		zap.String("appointmentID", appt.ID),
		zap.String("clientID", appt.ClientID),
		zap.Time("startTime", appt.StartTime))
	return nil
}

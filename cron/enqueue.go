package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"agendly/config"
	"agendly/models"

	"github.com/hibiken/asynq"
)

// ReminderEnqueuer schedules reminder tasks; it implements
// scheduling.ReminderScheduler.
type ReminderEnqueuer struct {
	client *asynq.Client
	lead   time.Duration
}

func NewReminderEnqueuer(lead time.Duration) *ReminderEnqueuer {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	return &ReminderEnqueuer{client: client, lead: lead}
}

// ScheduleReminder queues one reminder task due lead time before the
// appointment starts. Appointments starting inside the lead window get no
// reminder rather than an immediate one.
func (e *ReminderEnqueuer) ScheduleReminder(ctx context.Context, appt *models.Appointment) error {
	fireAt := appt.StartTime.Add(-e.lead)
	if fireAt.Before(time.Now()) {
		return nil
	}

	payload, err := json.Marshal(ReminderPayload{AppointmentID: appt.ID})
	if err != nil {
		return fmt.Errorf("failed to marshal reminder payload: %w", err)
	}
	task := asynq.NewTask(TypeReminderSend, payload)
	if _, err := e.client.EnqueueContext(ctx, task, asynq.ProcessAt(fireAt)); err != nil {
		return fmt.Errorf("failed to enqueue reminder for %s: %w", appt.ID, err)
	}
	return nil
}

// Close releases the underlying asynq client.
func (e *ReminderEnqueuer) Close() error {
	return e.client.Close()
}

package scheduling

import (
	"context"
	"errors"
	"time"

	schedulerRepo "agendly/database/repository/scheduler"
	"agendly/models"
	"agendly/services/payment"
	"agendly/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// DefaultSchedulingService orchestrates conflict detection, the lifecycle
// machines and recurrence expansion over the storage collaborator.
type DefaultSchedulingService struct {
	Repo         schedulerRepo.SchedulerRepository
	Detector     *ConflictDetector
	Availability *AvailabilityCalculator
	Expander     RecurrenceExpander
	Lifecycle    AppointmentLifecycle
	// Payments is optional; when set, a transition to paid charges the
	// appointment's price snapshot through the external capability.
	Payments payment.Processor
	// Reminders is optional; creation failures to enqueue are logged, never fatal.
	Reminders ReminderScheduler
	// GraceWindow is how far in the past a start time may still be accepted.
	GraceWindow time.Duration
	Location    *time.Location
}

func (s *DefaultSchedulingService) location() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return time.UTC
}

func (s *DefaultSchedulingService) validateWindow(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return NewValidationError("start and end time are required")
	}
	if !end.After(start) {
		return NewValidationError("end time must be after start time")
	}
	if start.Before(time.Now().Add(-s.GraceWindow)) {
		return NewValidationError("start time is in the past")
	}
	return nil
}

// CreateAppointment validates, checks conflicts, snapshots the service price
// and persists through the transactional insert. Either a fully created
// appointment or a typed error; never a partial write.
func (s *DefaultSchedulingService) CreateAppointment(ctx context.Context, req models.CreateAppointmentRequest) (*models.Appointment, error) {
	logger := utils.GetLogger()

	if req.ProfessionalID == "" || req.ClientID == "" || req.ServiceID == "" {
		return nil, NewValidationError("professional, client and service are required")
	}
	if err := s.validateWindow(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	candidate := &models.Appointment{
		BusinessID:     req.BusinessID,
		ClientID:       req.ClientID,
		ProfessionalID: req.ProfessionalID,
		ServiceID:      req.ServiceID,
		StartTime:      req.StartTime.In(s.location()),
		EndTime:        req.EndTime.In(s.location()),
	}

	// UX-facing guard; the transactional insert below is the correctness guarantee.
	conflicts, err := s.Detector.FindConflicts(ctx, candidate, "")
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, &ConflictError{Conflicts: conflicts}
	}

	svc, err := s.Repo.GetServiceByID(ctx, req.ServiceID)
	if errors.Is(err, schedulerRepo.ErrNotFound) {
		return nil, &NotFoundError{Resource: "service", ID: req.ServiceID}
	}
	if err != nil {
		return nil, &InfrastructureError{Op: "fetch service", Err: err}
	}
	if svc.Price < 0 {
		return nil, NewValidationError("service %s has a negative price", svc.ID)
	}

	now := time.Now()
	appt := candidate
	appt.ID = uuid.New().String()
	appt.Status = models.StatusScheduled
	appt.PaymentStatus = models.PaymentPending
	appt.Price = svc.Price // snapshot: later catalogue changes must not touch this booking
	appt.Notes = req.Notes
	appt.CreatedAt = now
	appt.UpdatedAt = now

	if err := s.Repo.CreateAppointmentTransactionally(ctx, appt); err != nil {
		if errors.Is(err, schedulerRepo.ErrSlotTaken) {
			// Lost the race after the pre-check passed; enumerate the winner(s).
			conflicts, cerr := s.Detector.FindConflicts(ctx, candidate, "")
			if cerr == nil && len(conflicts) > 0 {
				return nil, &ConflictError{Conflicts: conflicts}
			}
			return nil, &ConflictError{Conflicts: []models.ConflictRecord{{
				Dimension: models.ConflictProfessional,
				Detail:    "window was taken by a concurrent booking",
			}}}
		}
		return nil, &InfrastructureError{Op: "create appointment", Err: err}
	}

	s.afterWrite(ctx, appt)
	if s.Reminders != nil {
		if err := s.Reminders.ScheduleReminder(ctx, appt); err != nil {
			logger.Warn("failed to schedule reminder", zap.String("appointmentID", appt.ID), zap.Error(err))
		}
	}
	logger.Info("appointment created",
		zap.String("appointmentID", appt.ID),
		zap.String("professionalID", appt.ProfessionalID),
		zap.Time("startTime", appt.StartTime))
	return appt, nil
}

// UpdateAppointment applies a partial update. A change to the time window
// re-runs conflict detection excluding the appointment itself, then moves it
// under the transactional guard.
func (s *DefaultSchedulingService) UpdateAppointment(ctx context.Context, id string, req models.UpdateAppointmentRequest) (*models.Appointment, error) {
	current, err := s.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := bson.M{}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}

	if !req.MovesWindow() {
		if len(fields) == 0 {
			return current, nil
		}
		updated, err := s.Repo.UpdateFields(ctx, id, fields)
		if err != nil {
			return nil, &InfrastructureError{Op: "update appointment", Err: err}
		}
		return updated, nil
	}

	if !current.IsLive() {
		return nil, NewValidationError("cannot reschedule a %s appointment", current.Status)
	}

	newStart := current.StartTime
	newEnd := current.EndTime
	if req.StartTime != nil {
		newStart = req.StartTime.In(s.location())
	}
	if req.EndTime != nil {
		newEnd = req.EndTime.In(s.location())
	}
	if err := s.validateWindow(newStart, newEnd); err != nil {
		return nil, err
	}

	candidate := &models.Appointment{
		ClientID:       current.ClientID,
		ProfessionalID: current.ProfessionalID,
		ServiceID:      current.ServiceID,
		StartTime:      newStart,
		EndTime:        newEnd,
	}
	conflicts, err := s.Detector.FindConflicts(ctx, candidate, id)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, &ConflictError{Conflicts: conflicts}
	}

	updated, err := s.Repo.RescheduleAppointmentTransactionally(ctx, id, newStart, newEnd, fields)
	if errors.Is(err, schedulerRepo.ErrNotFound) {
		return nil, &NotFoundError{Resource: "appointment", ID: id}
	}
	if errors.Is(err, schedulerRepo.ErrSlotTaken) {
		conflicts, cerr := s.Detector.FindConflicts(ctx, candidate, id)
		if cerr == nil && len(conflicts) > 0 {
			return nil, &ConflictError{Conflicts: conflicts}
		}
		return nil, &ConflictError{Conflicts: []models.ConflictRecord{{
			Dimension: models.ConflictProfessional,
			Detail:    "window was taken by a concurrent booking",
		}}}
	}
	if err != nil {
		return nil, &InfrastructureError{Op: "reschedule appointment", Err: err}
	}

	s.afterWrite(ctx, current)
	s.afterWrite(ctx, updated)
	return updated, nil
}

func (s *DefaultSchedulingService) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	appt, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, schedulerRepo.ErrNotFound) {
		return nil, &NotFoundError{Resource: "appointment", ID: id}
	}
	if err != nil {
		return nil, &InfrastructureError{Op: "fetch appointment", Err: err}
	}
	return appt, nil
}

// DeleteAppointment removes the record outright; cancellation is the normal path.
func (s *DefaultSchedulingService) DeleteAppointment(ctx context.Context, id string) error {
	appt, err := s.GetAppointment(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, schedulerRepo.ErrNotFound) {
			return &NotFoundError{Resource: "appointment", ID: id}
		}
		return &InfrastructureError{Op: "delete appointment", Err: err}
	}
	s.afterWrite(ctx, appt)
	utils.GetLogger().Info("appointment deleted", zap.String("appointmentID", id))
	return nil
}

func (s *DefaultSchedulingService) ListAppointments(ctx context.Context, professionalID string, from, to time.Time) ([]models.Appointment, error) {
	appts, err := s.Repo.QueryByProfessionalAndRange(ctx, professionalID, from, to, nil)
	if err != nil {
		return nil, &InfrastructureError{Op: "list appointments", Err: err}
	}
	return appts, nil
}

// TransitionStatus drives the booking state machine and persists the result.
func (s *DefaultSchedulingService) TransitionStatus(ctx context.Context, id string, to models.AppointmentStatus, reason string, fee float64) (*models.Appointment, error) {
	appt, err := s.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	fields, err := s.Lifecycle.ApplyStatus(appt, to, reason, fee, time.Now())
	if err != nil {
		return nil, err
	}

	updated, err := s.Repo.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, &InfrastructureError{Op: "persist status transition", Err: err}
	}

	if to == models.StatusCancelled || to == models.StatusNoShow {
		// The window just became bookable again.
		s.afterWrite(ctx, updated)
	}
	utils.GetLogger().Info("status transition",
		zap.String("appointmentID", id), zap.String("from", string(appt.Status)), zap.String("to", string(to)))
	return updated, nil
}

// Cancel is the reason-carrying shorthand for the cancelled transition.
func (s *DefaultSchedulingService) Cancel(ctx context.Context, id, reason string, fee float64) (*models.Appointment, error) {
	return s.TransitionStatus(ctx, id, models.StatusCancelled, reason, fee)
}

// TransitionPayment drives the payment state machine. A transition to paid
// runs the external charge first when a processor is configured; a declined
// charge leaves the appointment unchanged.
func (s *DefaultSchedulingService) TransitionPayment(ctx context.Context, id string, to models.PaymentStatus, method string) (*models.Appointment, error) {
	appt, err := s.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	fields, err := s.Lifecycle.ApplyPayment(appt, to, method)
	if err != nil {
		return nil, err
	}

	if to == models.PaymentPaid && s.Payments != nil && appt.Price > 0 {
		if _, err := s.Payments.Charge(ctx, payment.ChargeRequest{
			AppointmentID: appt.ID,
			Amount:        appt.Price,
			Method:        method,
		}); err != nil {
			return nil, err
		}
	}

	updated, err := s.Repo.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, &InfrastructureError{Op: "persist payment transition", Err: err}
	}
	utils.GetLogger().Info("payment transition",
		zap.String("appointmentID", id), zap.String("from", string(appt.PaymentStatus)), zap.String("to", string(to)))
	return updated, nil
}

func (s *DefaultSchedulingService) GetAvailability(ctx context.Context, professionalID, date string) (*models.AvailabilityResult, error) {
	return s.Availability.Availability(ctx, professionalID, date)
}

// CreateRecurring expands the rule and submits each occurrence through
// CreateAppointment, sequentially and in date order so partial failures are
// deterministic. Conflicting or invalid occurrences are reported and skipped;
// an infrastructure failure stops the run, leaving earlier occurrences booked.
func (s *DefaultSchedulingService) CreateRecurring(ctx context.Context, req models.CreateRecurringRequest) (*models.RecurrenceResult, error) {
	occurrences, err := s.Expander.Expand(req.Template.StartTime, req.Rule)
	if err != nil {
		return nil, err
	}
	duration := req.Template.EndTime.Sub(req.Template.StartTime)
	if duration <= 0 {
		return nil, NewValidationError("end time must be after start time")
	}

	result := &models.RecurrenceResult{Requested: len(occurrences)}
	for _, occ := range occurrences {
		occReq := req.Template
		occReq.StartTime = occ
		occReq.EndTime = occ.Add(duration)
		date := occ.In(s.location()).Format("2006-01-02")

		appt, err := s.CreateAppointment(ctx, occReq)
		switch {
		case err == nil:
			result.Created++
			result.Occurrences = append(result.Occurrences, models.OccurrenceResult{
				Date: date, Outcome: models.OccurrenceCreated, Appointment: appt,
			})
		case isBusinessRuleError(err):
			result.Occurrences = append(result.Occurrences, models.OccurrenceResult{
				Date: date, Outcome: models.OccurrenceSkipped, Reason: err.Error(),
			})
		default:
			// Storage failure: stop here; already-created occurrences stand.
			result.Occurrences = append(result.Occurrences, models.OccurrenceResult{
				Date: date, Outcome: models.OccurrenceFailed, Reason: err.Error(),
			})
			return result, nil
		}
	}
	return result, nil
}

func isBusinessRuleError(err error) bool {
	var vErr *ValidationError
	var cErr *ConflictError
	var nfErr *NotFoundError
	return errors.As(err, &vErr) || errors.As(err, &cErr) || errors.As(err, &nfErr)
}

func (s *DefaultSchedulingService) GetWorkingHours(ctx context.Context, professionalID string, weekday time.Weekday) ([]models.TimeSlot, error) {
	slots, err := s.Repo.GetWorkingHours(ctx, professionalID, weekday)
	if err != nil {
		return nil, &InfrastructureError{Op: "fetch working hours", Err: err}
	}
	return slots, nil
}

func (s *DefaultSchedulingService) SetWorkingHours(ctx context.Context, professionalID string, weekday time.Weekday, slots []models.TimeSlot) error {
	if err := models.ValidateSlots(slots); err != nil {
		return NewValidationError("invalid working hours: %v", err)
	}
	if err := s.Repo.SetWorkingHours(ctx, professionalID, weekday, slots); err != nil {
		return &InfrastructureError{Op: "set working hours", Err: err}
	}
	// Cached day results for this weekday are now stale; the short TTL ages
	// them out without a per-professional flush.
	utils.GetLogger().Info("working hours updated",
		zap.String("professionalID", professionalID), zap.String("weekday", weekday.String()))
	return nil
}

// afterWrite invalidates cached availability for every date the appointment touches.
func (s *DefaultSchedulingService) afterWrite(ctx context.Context, appt *models.Appointment) {
	if s.Availability == nil {
		return
	}
	s.Availability.Invalidate(ctx, appt.ProfessionalID, appt.StartTime, appt.EndTime)
}

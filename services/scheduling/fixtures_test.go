package scheduling

import (
	"context"
	"fmt"
	"sync"
	"time"

	schedulerRepo "agendly/database/repository/scheduler"
	"agendly/models"
	"agendly/services/payment"

	"go.mongodb.org/mongo-driver/bson"
)

// memRepo is an in-memory SchedulerRepository with the same overlap semantics
// as the Mongo implementation.
type memRepo struct {
	mu       sync.Mutex
	appts    map[string]*models.Appointment
	hours    map[string][]models.TimeSlot
	services map[string]*models.Service

	// failCreates forces CreateAppointmentTransactionally to fail with a
	// storage error once the appointment count reaches the threshold.
	failCreates int
	createCalls int
}

func newMemRepo() *memRepo {
	return &memRepo{
		appts:       make(map[string]*models.Appointment),
		hours:       make(map[string][]models.TimeSlot),
		services:    make(map[string]*models.Service),
		failCreates: -1,
	}
}

func hoursKey(professionalID string, weekday time.Weekday) string {
	return fmt.Sprintf("%s|%d", professionalID, weekday)
}

func statusMatches(a *models.Appointment, statuses []models.AppointmentStatus) bool {
	if statuses == nil {
		return true
	}
	for _, s := range statuses {
		if a.Status == s {
			return true
		}
	}
	return false
}

func (r *memRepo) Insert(ctx context.Context, appt *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *appt
	r.appts[appt.ID] = &cp
	return nil
}

func (r *memRepo) CreateAppointmentTransactionally(ctx context.Context, appt *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.createCalls++
	if r.failCreates >= 0 && r.createCalls > r.failCreates {
		return fmt.Errorf("storage unavailable")
	}

	for _, existing := range r.appts {
		if existing.ProfessionalID == appt.ProfessionalID && existing.IsLive() &&
			Overlaps(appt.StartTime, appt.EndTime, existing.StartTime, existing.EndTime) {
			return schedulerRepo.ErrSlotTaken
		}
	}
	cp := *appt
	r.appts[appt.ID] = &cp
	return nil
}

func (r *memRepo) RescheduleAppointmentTransactionally(ctx context.Context, id string, start, end time.Time, fields bson.M) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appt, ok := r.appts[id]
	if !ok {
		return nil, schedulerRepo.ErrNotFound
	}
	for _, existing := range r.appts {
		if existing.ID == id {
			continue
		}
		if existing.ProfessionalID == appt.ProfessionalID && existing.IsLive() &&
			Overlaps(start, end, existing.StartTime, existing.EndTime) {
			return nil, schedulerRepo.ErrSlotTaken
		}
	}
	appt.StartTime = start
	appt.EndTime = end
	applyFields(appt, fields)
	appt.UpdatedAt = time.Now()
	cp := *appt
	return &cp, nil
}

func (r *memRepo) UpdateFields(ctx context.Context, id string, fields bson.M) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appt, ok := r.appts[id]
	if !ok {
		return nil, schedulerRepo.ErrNotFound
	}
	applyFields(appt, fields)
	appt.UpdatedAt = time.Now()
	cp := *appt
	return &cp, nil
}

func applyFields(appt *models.Appointment, fields bson.M) {
	for k, v := range fields {
		switch k {
		case "status":
			appt.Status = v.(models.AppointmentStatus)
		case "payment_status":
			appt.PaymentStatus = v.(models.PaymentStatus)
		case "payment_method":
			appt.PaymentMethod = v.(string)
		case "cancellation_reason":
			appt.CancellationReason = v.(string)
		case "cancellation_fee":
			appt.CancellationFee = v.(float64)
		case "notes":
			appt.Notes = v.(string)
		}
	}
}

func (r *memRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appt, ok := r.appts[id]
	if !ok {
		return nil, schedulerRepo.ErrNotFound
	}
	cp := *appt
	return &cp, nil
}

func (r *memRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appts[id]; !ok {
		return schedulerRepo.ErrNotFound
	}
	delete(r.appts, id)
	return nil
}

func (r *memRepo) queryByRange(match func(*models.Appointment) bool, start, end time.Time, statuses []models.AppointmentStatus) []models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, a := range r.appts {
		if match(a) && statusMatches(a, statuses) && Overlaps(start, end, a.StartTime, a.EndTime) {
			out = append(out, *a)
		}
	}
	return out
}

func (r *memRepo) QueryByProfessionalAndRange(ctx context.Context, professionalID string, start, end time.Time, statuses []models.AppointmentStatus) ([]models.Appointment, error) {
	return r.queryByRange(func(a *models.Appointment) bool { return a.ProfessionalID == professionalID }, start, end, statuses), nil
}

func (r *memRepo) QueryByClientAndRange(ctx context.Context, clientID string, start, end time.Time, statuses []models.AppointmentStatus) ([]models.Appointment, error) {
	return r.queryByRange(func(a *models.Appointment) bool { return a.ClientID == clientID }, start, end, statuses), nil
}

func (r *memRepo) QueryByServiceAndRange(ctx context.Context, serviceID string, start, end time.Time, statuses []models.AppointmentStatus) ([]models.Appointment, error) {
	return r.queryByRange(func(a *models.Appointment) bool { return a.ServiceID == serviceID }, start, end, statuses), nil
}

func (r *memRepo) GetWorkingHours(ctx context.Context, professionalID string, weekday time.Weekday) ([]models.TimeSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hours[hoursKey(professionalID, weekday)], nil
}

func (r *memRepo) SetWorkingHours(ctx context.Context, professionalID string, weekday time.Weekday, slots []models.TimeSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hours[hoursKey(professionalID, weekday)] = slots
	return nil
}

func (r *memRepo) GetServiceByID(ctx context.Context, serviceID string) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	svc, ok := r.services[serviceID]
	if !ok {
		return nil, schedulerRepo.ErrNotFound
	}
	cp := *svc
	return &cp, nil
}

// stubProcessor records charges and can be told to decline them.
type stubProcessor struct {
	decline bool
	charges []payment.ChargeRequest
}

func (p *stubProcessor) Charge(ctx context.Context, req payment.ChargeRequest) (*models.Invoice, error) {
	p.charges = append(p.charges, req)
	if p.decline {
		return nil, payment.ErrDeclined
	}
	return &models.Invoice{AppointmentID: req.AppointmentID, Amount: req.Amount, Status: "paid"}, nil
}

// stubReminders records scheduled reminders.
type stubReminders struct {
	scheduled []string
}

func (s *stubReminders) ScheduleReminder(ctx context.Context, appt *models.Appointment) error {
	s.scheduled = append(s.scheduled, appt.ID)
	return nil
}

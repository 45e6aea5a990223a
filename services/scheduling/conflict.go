package scheduling

import (
	"context"
	"fmt"
	"time"

	schedulerRepo "agendly/database/repository/scheduler"
	"agendly/models"
)

// Overlaps is the half-open interval overlap primitive: [aStart, aEnd) and
// [bStart, bEnd) intersect iff aStart < bEnd && bStart < aEnd. Back-to-back
// windows sharing a boundary instant do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// ConflictPolicy selects which dimensions beyond the mandatory professional
// check are enforced.
type ConflictPolicy struct {
	// EnforceClientOverlap forbids one client holding two overlapping
	// bookings across different professionals.
	EnforceClientOverlap bool
	// ExclusiveServiceIDs lists services backed by a single physical
	// resource; two overlapping bookings of such a service conflict even
	// across professionals.
	ExclusiveServiceIDs map[string]struct{}
}

// ConflictDetector finds live appointments overlapping a candidate booking.
// Read-only; it never mutates anything.
type ConflictDetector struct {
	Repo   schedulerRepo.SchedulerRepository
	Policy ConflictPolicy
}

// FindConflicts returns every live appointment overlapping the candidate's
// window, one record per (appointment, dimension). excludeID lets an update
// ignore the appointment being modified. An empty result means the candidate
// is bookable.
func (d *ConflictDetector) FindConflicts(ctx context.Context, cand *models.Appointment, excludeID string) ([]models.ConflictRecord, error) {
	var records []models.ConflictRecord

	byProfessional, err := d.Repo.QueryByProfessionalAndRange(ctx, cand.ProfessionalID, cand.StartTime, cand.EndTime, models.LiveStatuses)
	if err != nil {
		return nil, &InfrastructureError{Op: "conflict query (professional)", Err: err}
	}
	records = appendConflicts(records, byProfessional, cand, excludeID, models.ConflictProfessional,
		func(a models.Appointment) string {
			return fmt.Sprintf("professional %s is booked %s to %s", a.ProfessionalID, a.StartTime.Format(time.RFC3339), a.EndTime.Format(time.RFC3339))
		})

	if d.Policy.EnforceClientOverlap && cand.ClientID != "" {
		byClient, err := d.Repo.QueryByClientAndRange(ctx, cand.ClientID, cand.StartTime, cand.EndTime, models.LiveStatuses)
		if err != nil {
			return nil, &InfrastructureError{Op: "conflict query (client)", Err: err}
		}
		// The professional dimension already reported overlaps with the same
		// professional; only cross-professional holds are new information.
		var crossProfessional []models.Appointment
		for _, a := range byClient {
			if a.ProfessionalID != cand.ProfessionalID {
				crossProfessional = append(crossProfessional, a)
			}
		}
		records = appendConflicts(records, crossProfessional, cand, excludeID, models.ConflictClient,
			func(a models.Appointment) string {
				return fmt.Sprintf("client %s already holds an overlapping booking with professional %s", a.ClientID, a.ProfessionalID)
			})
	}

	if _, exclusive := d.Policy.ExclusiveServiceIDs[cand.ServiceID]; exclusive {
		byService, err := d.Repo.QueryByServiceAndRange(ctx, cand.ServiceID, cand.StartTime, cand.EndTime, models.LiveStatuses)
		if err != nil {
			return nil, &InfrastructureError{Op: "conflict query (service)", Err: err}
		}
		var crossProfessional []models.Appointment
		for _, a := range byService {
			if a.ProfessionalID != cand.ProfessionalID {
				crossProfessional = append(crossProfessional, a)
			}
		}
		records = appendConflicts(records, crossProfessional, cand, excludeID, models.ConflictService,
			func(a models.Appointment) string {
				return fmt.Sprintf("exclusive service %s is in use %s to %s", a.ServiceID, a.StartTime.Format(time.RFC3339), a.EndTime.Format(time.RFC3339))
			})
	}

	return records, nil
}

func appendConflicts(records []models.ConflictRecord, appts []models.Appointment, cand *models.Appointment, excludeID string, dim models.ConflictDimension, detail func(models.Appointment) string) []models.ConflictRecord {
	for _, a := range appts {
		if excludeID != "" && a.ID == excludeID {
			continue
		}
		// The range query is interval-based already; re-assert the half-open
		// overlap so the predicate lives in exactly one place.
		if !Overlaps(cand.StartTime, cand.EndTime, a.StartTime, a.EndTime) {
			continue
		}
		records = append(records, models.ConflictRecord{
			AppointmentID: a.ID,
			Dimension:     dim,
			Detail:        detail(a),
		})
	}
	return records
}

package models

import (
	"fmt"
	"time"
)

// RecurrenceFrequency enumerates the supported repeat periods.
type RecurrenceFrequency string

const (
	FrequencyDaily   RecurrenceFrequency = "daily"
	FrequencyWeekly  RecurrenceFrequency = "weekly"
	FrequencyMonthly RecurrenceFrequency = "monthly"
)

// RecurrenceRule describes how a base appointment repeats. Exactly one
// termination bound must be set: Count > 0 or a non-zero Until date.
type RecurrenceRule struct {
	Frequency RecurrenceFrequency `json:"frequency"`
	Interval  int                 `json:"interval"` // every N periods; defaults to 1
	Count     int                 `json:"count,omitempty"`
	Until     time.Time           `json:"until,omitempty"` // inclusive end date
}

// Validate rejects unknown frequencies, non-positive intervals and rules
// without exactly one termination bound.
func (r RecurrenceRule) Validate() error {
	switch r.Frequency {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
	default:
		return fmt.Errorf("unknown recurrence frequency %q", r.Frequency)
	}
	if r.Interval < 0 {
		return fmt.Errorf("recurrence interval must be positive, got %d", r.Interval)
	}
	hasCount := r.Count > 0
	hasUntil := !r.Until.IsZero()
	if hasCount == hasUntil {
		return fmt.Errorf("recurrence rule requires exactly one bound: occurrence count or end date")
	}
	return nil
}

// EffectiveInterval treats an unset interval as 1.
func (r RecurrenceRule) EffectiveInterval() int {
	if r.Interval == 0 {
		return 1
	}
	return r.Interval
}

// CreateRecurringRequest couples a base appointment template with its rule.
type CreateRecurringRequest struct {
	Template CreateAppointmentRequest `json:"template" binding:"required"`
	Rule     RecurrenceRule           `json:"rule" binding:"required"`
}

// OccurrenceOutcome tags the result of one expanded occurrence.
type OccurrenceOutcome string

const (
	OccurrenceCreated OccurrenceOutcome = "created"
	OccurrenceSkipped OccurrenceOutcome = "skipped" // conflict or validation failure, reported and passed over
	OccurrenceFailed  OccurrenceOutcome = "failed"  // infrastructure failure; later occurrences were not attempted
)

// OccurrenceResult reports one occurrence of a recurring creation.
type OccurrenceResult struct {
	Date        string            `json:"date"` // YYYY-MM-DD
	Outcome     OccurrenceOutcome `json:"outcome"`
	Appointment *Appointment      `json:"appointment,omitempty"`
	Reason      string            `json:"reason,omitempty"`
}

// RecurrenceResult is the aggregate, order-preserving outcome of a recurring
// creation. Created counts successes; the caller can tell "3 of 10 booked"
// from total failure.
type RecurrenceResult struct {
	Requested   int                `json:"requested"`
	Created     int                `json:"created"`
	Occurrences []OccurrenceResult `json:"occurrences"`
}

package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecurrenceRuleValidate(t *testing.T) {
	until := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		rule    RecurrenceRule
		wantErr bool
	}{
		{name: "count bound", rule: RecurrenceRule{Frequency: FrequencyWeekly, Count: 4}},
		{name: "until bound", rule: RecurrenceRule{Frequency: FrequencyDaily, Until: until}},
		{name: "explicit interval", rule: RecurrenceRule{Frequency: FrequencyMonthly, Interval: 2, Count: 6}},
		{name: "no bound", rule: RecurrenceRule{Frequency: FrequencyWeekly}, wantErr: true},
		{name: "both bounds", rule: RecurrenceRule{Frequency: FrequencyWeekly, Count: 4, Until: until}, wantErr: true},
		{name: "negative interval", rule: RecurrenceRule{Frequency: FrequencyDaily, Interval: -1, Count: 3}, wantErr: true},
		{name: "unknown frequency", rule: RecurrenceRule{Frequency: "yearly", Count: 2}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.rule.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEffectiveInterval(t *testing.T) {
	assert.Equal(t, 1, RecurrenceRule{}.EffectiveInterval())
	assert.Equal(t, 3, RecurrenceRule{Interval: 3}.EffectiveInterval())
}

func TestAppointmentIsLive(t *testing.T) {
	assert.True(t, (&Appointment{Status: StatusScheduled}).IsLive())
	assert.True(t, (&Appointment{Status: StatusConfirmed}).IsLive())
	assert.False(t, (&Appointment{Status: StatusCompleted}).IsLive())
	assert.False(t, (&Appointment{Status: StatusCancelled}).IsLive())
	assert.False(t, (&Appointment{Status: StatusNoShow}).IsLive())
}
